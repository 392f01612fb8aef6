package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"go-blog-backend/apperrors"
	"go-blog-backend/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedUserAndPost registers n users and one post written by the first.
func seedUserAndPost(t *testing.T, f *fixture, n int) ([]uint, uint) {
	t.Helper()
	ctx := context.Background()

	ids := make([]uint, 0, n)
	for i := 0; i < n; i++ {
		u, err := f.users.Register(ctx, RegisterInput{
			Name:     fmt.Sprintf("User %d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: "password",
		})
		require.NoError(t, err)
		ids = append(ids, u.ID)
	}

	post, err := f.posts.Create(ctx, ids[0], PostInput{Title: "Hello", Content: "World"})
	require.NoError(t, err)
	return ids, post.ID
}

func TestLikeThenStateThenDuplicate(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	users, postID := seedUserAndPost(t, f, 1)

	like, err := f.likes.Like(ctx, &users[0], postID)
	require.NoError(t, err)
	assert.NotZero(t, like.ID)
	assert.Equal(t, users[0], like.UserID)
	assert.Equal(t, postID, like.PostID)

	state, err := f.likes.GetLikeState(ctx, postID, &users[0])
	require.NoError(t, err)
	assert.True(t, state.LikedByUser)
	assert.Equal(t, int64(1), state.LikeCount)

	_, err = f.likes.Like(ctx, &users[0], postID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))
	assert.Equal(t, "User already liked this post.", err.Error())
}

func TestLikeRequiresCallerUserAndPost(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	users, postID := seedUserAndPost(t, f, 1)

	_, err := f.likes.Like(ctx, nil, postID)
	assert.True(t, apperrors.Is(err, apperrors.KindBadRequest))

	_, err = f.likes.Like(ctx, ptr(uint(999)), postID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "User not found.", err.Error())

	_, err = f.likes.Like(ctx, &users[0], 999)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Post not found.", err.Error())
}

func TestUnlikeIsNotIdempotent(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	users, postID := seedUserAndPost(t, f, 1)

	err := f.likes.Unlike(ctx, users[0], postID)
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Like not found", err.Error())

	_, err = f.likes.Like(ctx, &users[0], postID)
	require.NoError(t, err)
	require.NoError(t, f.likes.Unlike(ctx, users[0], postID))

	state, err := f.likes.GetLikeState(ctx, postID, &users[0])
	require.NoError(t, err)
	assert.False(t, state.LikedByUser)
	assert.Zero(t, state.LikeCount)

	err = f.likes.Unlike(ctx, users[0], postID)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	// Liking again after an unlike is a fresh NotLiked -> Liked transition.
	_, err = f.likes.Like(ctx, &users[0], postID)
	assert.NoError(t, err)
}

func TestGetLikeStateWithoutCaller(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	users, postID := seedUserAndPost(t, f, 3)

	for _, id := range users {
		_, err := f.likes.Like(ctx, &id, postID)
		require.NoError(t, err)
	}

	state, err := f.likes.GetLikeState(ctx, postID, nil)
	require.NoError(t, err)
	assert.Equal(t, postID, state.PostID)
	assert.Equal(t, int64(3), state.LikeCount)
	assert.False(t, state.LikedByUser)

	_, err = f.likes.GetLikeState(ctx, 999, nil)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
	assert.Equal(t, "Post not found.", err.Error())
}

func TestLikeOperationsAreCounted(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	users, postID := seedUserAndPost(t, f, 1)

	counter := func(op, result string) float64 {
		return testutil.ToFloat64(metrics.LikeOperations.WithLabelValues(op, result))
	}
	before := map[[2]string]float64{}
	keys := [][2]string{
		{"like", "ok"}, {"like", "rejected"}, {"like", "not_found"},
		{"unlike", "ok"}, {"unlike", "not_found"}, {"state", "ok"},
	}
	for _, k := range keys {
		before[k] = counter(k[0], k[1])
	}

	_, err := f.likes.Like(ctx, &users[0], postID)
	require.NoError(t, err)
	_, err = f.likes.Like(ctx, &users[0], postID) // conflict
	require.Error(t, err)
	_, err = f.likes.Like(ctx, &users[0], 999)
	require.Error(t, err)
	require.NoError(t, f.likes.Unlike(ctx, users[0], postID))
	require.Error(t, f.likes.Unlike(ctx, users[0], postID))
	_, err = f.likes.GetLikeState(ctx, postID, nil)
	require.NoError(t, err)

	for _, k := range keys {
		assert.Equal(t, before[k]+1, counter(k[0], k[1]), "%s/%s", k[0], k[1])
	}
}

func TestConcurrentLikesInsertExactlyOnce(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	users, postID := seedUserAndPost(t, f, 1)

	const callers = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.likes.Like(ctx, &users[0], postID)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case apperrors.Is(err, apperrors.KindBadRequest):
				conflicts++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, callers-1, conflicts)

	state, err := f.likes.GetLikeState(ctx, postID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), state.LikeCount)
}

func TestCountSettlesToDistinctLikers(t *testing.T) {
	f := setupServices(t)
	ctx := context.Background()
	users, postID := seedUserAndPost(t, f, 5)

	var wg sync.WaitGroup
	for i, id := range users {
		wg.Add(1)
		go func(i int, id uint) {
			defer wg.Done()
			if _, err := f.likes.Like(ctx, &id, postID); err != nil {
				t.Errorf("like %d: %v", id, err)
				return
			}
			if i%2 == 1 {
				if err := f.likes.Unlike(ctx, id, postID); err != nil {
					t.Errorf("unlike %d: %v", id, err)
				}
			}
		}(i, id)
	}
	wg.Wait()

	state, err := f.likes.GetLikeState(ctx, postID, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), state.LikeCount)
}
