package service

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go-blog-backend/auth"
	"go-blog-backend/config"
	"go-blog-backend/database"
	"go-blog-backend/media"
	"go-blog-backend/repository"

	"github.com/stretchr/testify/require"
)

type event struct {
	topic   string
	payload any
}

// recordingPublisher keeps every published event for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	events []event
}

func (r *recordingPublisher) Publish(topic string, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{topic: topic, payload: payload})
	return nil
}

func (r *recordingPublisher) topics() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.topic)
	}
	return out
}

type fixture struct {
	users    *UserService
	posts    *PostService
	likes    *LikeService
	comments *CommentService
	store    *media.LocalStore
	events   *recordingPublisher
}

// setupServices connects a fresh SQLite database and wires every service to it.
func setupServices(t *testing.T) *fixture {
	t.Helper()

	dir := t.TempDir()
	cfg := config.Load()
	cfg.DBDriver = "sqlite"
	cfg.DBPath = filepath.Join(dir, "test.db")
	cfg.CreateAdmin = false
	require.NoError(t, database.Connect(cfg))
	t.Cleanup(func() {
		if sqlDB, err := database.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store, err := media.NewLocalStore(filepath.Join(dir, "uploads"), "http://localhost/uploads")
	require.NoError(t, err)

	users := repository.NewUserRepository(database.DB)
	posts := repository.NewPostRepository(database.DB)
	likes := repository.NewLikeRepository(database.DB)
	comments := repository.NewCommentRepository(database.DB)
	events := &recordingPublisher{}

	return &fixture{
		users:    NewUserService(users, store, auth.NewTokens("test-secret", time.Hour), events),
		posts:    NewPostService(users, posts, store, events),
		likes:    NewLikeService(users, posts, likes),
		comments: NewCommentService(users, posts, comments, events),
		store:    store,
		events:   events,
	}
}

// failingUploads is a media store whose uploads always fail.
type failingUploads struct {
	media.Store
}

func (failingUploads) Upload(context.Context, string, media.File) (string, error) {
	return "", errors.New("storage offline")
}

func ptr[T any](v T) *T { return &v }
