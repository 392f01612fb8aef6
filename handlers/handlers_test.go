// handlers_test.go - Shared setup for the HTTP handler tests
// Run with: go test ./...

package handlers

import (
	"bytes"             // For building request bodies
	"encoding/json"     // For encoding/decoding JSON
	"fmt"               // Formatting paths
	"mime/multipart"    // Multipart form bodies
	"net/http"          // HTTP status codes
	"net/http/httptest" // HTTP test helpers
	"path/filepath"     // Temp paths
	"testing"           // Go's testing package
	"time"              // Token lifetime

	"go-blog-backend/auth"       // Bearer tokens
	"go-blog-backend/config"     // Project config
	"go-blog-backend/database"   // Database connection
	"go-blog-backend/media"      // Local image store
	"go-blog-backend/middleware" // Identity middleware
	"go-blog-backend/mqtt"       // No-op publisher
	"go-blog-backend/repository" // Persistence
	"go-blog-backend/service"    // Blog workflows

	"github.com/gin-gonic/gin"            // Gin web framework
	"github.com/stretchr/testify/require" // For fatal assertions
)

type testServer struct {
	router *gin.Engine
	tokens *auth.Tokens
}

// setupServer connects a fresh SQLite database in a temp dir and returns a
// router with every API route mounted.
func setupServer(t *testing.T, authRequired bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	cfg := config.Load()                       // Load config
	cfg.DBDriver = "sqlite"                    // Always SQLite in tests
	cfg.DBPath = filepath.Join(dir, "test.db") // Use a separate test DB
	cfg.CreateAdmin = false
	require.NoError(t, database.Connect(cfg)) // Connect and migrate
	t.Cleanup(func() {
		if sqlDB, err := database.DB.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store, err := media.NewLocalStore(filepath.Join(dir, "uploads"), "http://localhost/uploads")
	require.NoError(t, err)

	tokens := auth.NewTokens("test-secret", time.Hour)
	users := repository.NewUserRepository(database.DB)
	posts := repository.NewPostRepository(database.DB)
	likes := repository.NewLikeRepository(database.DB)
	comments := repository.NewCommentRepository(database.DB)
	events := mqtt.Nop{}

	h := &Handler{
		Users:        service.NewUserService(users, store, tokens, events),
		Posts:        service.NewPostService(users, posts, store, events),
		Likes:        service.NewLikeService(users, posts, likes),
		Comments:     service.NewCommentService(users, posts, comments, events),
		UserRepo:     users,
		AuthRequired: authRequired,
	}

	r := gin.New()
	r.Use(middleware.Identity(tokens))
	h.RegisterRoutes(r)
	return &testServer{router: r, tokens: tokens}
}

// do sends a request with an optional JSON body and bearer token.
func (s *testServer) do(method, path string, body any, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// doMultipart sends fields (and an optional file part) as multipart/form-data.
func (s *testServer) doMultipart(method, path string, fields map[string]string, fileField, fileName string, data []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		_ = mw.WriteField(k, v)
	}
	if fileField != "" {
		part, _ := mw.CreateFormFile(fileField, fileName)
		_, _ = part.Write(data)
	}
	_ = mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns its id.
func (s *testServer) register(t *testing.T, name, email string) uint {
	t.Helper()
	w := s.do(http.MethodPost, "/api/users/register", RegisterInput{
		Name:     name,
		Email:    email,
		Password: "secret123",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.ID
}

// createPost creates a post authored by userID and returns its id.
func (s *testServer) createPost(t *testing.T, userID uint, title string) uint {
	t.Helper()
	w := s.doMultipart(http.MethodPost, "/api/posts", map[string]string{
		"userId":  fmt.Sprint(userID),
		"title":   title,
		"content": "Body of " + title,
	}, "", "", nil, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var out struct {
		ID uint `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.ID
}

// decode unmarshals a response body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
