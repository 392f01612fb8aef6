package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAndGetPost(t *testing.T) {
	s := setupServer(t, false)
	alice := s.register(t, "Alice", "alice@example.com")

	w := s.doMultipart(http.MethodPost, "/api/posts", map[string]string{
		"userId":  fmt.Sprint(alice),
		"title":   "With image",
		"content": "Has a picture",
	}, "image", "cover.JPG", []byte("jpeg-bytes"), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Alice", body["name"])
	assert.EqualValues(t, alice, body["userId"])
	imgURL, _ := body["imgUrl"].(string)
	assert.True(t, strings.HasSuffix(imgURL, ".jpg"), imgURL)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/posts/%v", body["id"]), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "With image", decode(t, w)["title"])

	w = s.do(http.MethodGet, "/api/posts/999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Post not found", decode(t, w)["message"])
}

func TestCreatePostValidation(t *testing.T) {
	s := setupServer(t, false)
	alice := s.register(t, "Alice", "alice@example.com")

	w := s.doMultipart(http.MethodPost, "/api/posts", map[string]string{
		"userId": fmt.Sprint(alice),
		"title":  "No content",
	}, "", "", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	body := decode(t, w)
	assert.Equal(t, "Validation Error", body["error"])
	assert.Contains(t, body["fieldErrors"], "content")

	w = s.doMultipart(http.MethodPost, "/api/posts", map[string]string{
		"title":   "No author",
		"content": "Anonymous",
	}, "", "", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.doMultipart(http.MethodPost, "/api/posts", map[string]string{
		"userId":  "999",
		"title":   "Ghost",
		"content": "Unknown author",
	}, "", "", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decode(t, w)["message"])
}

func TestListPostsPaging(t *testing.T) {
	s := setupServer(t, false)
	alice := s.register(t, "Alice", "alice@example.com")
	bob := s.register(t, "Bob", "bob@example.com")
	for i := 0; i < 7; i++ {
		s.createPost(t, alice, fmt.Sprintf("Alice %d", i))
	}
	s.createPost(t, bob, "Bob 0")

	w := s.do(http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	page := decode(t, w)
	assert.EqualValues(t, 8, page["totalElements"])
	assert.EqualValues(t, 2, page["totalPages"])
	assert.EqualValues(t, 6, page["size"])
	assert.Equal(t, true, page["first"])
	assert.Equal(t, false, page["last"])
	content := page["content"].([]any)
	require.Len(t, content, 6)
	assert.Equal(t, "Bob 0", content[0].(map[string]any)["title"]) // newest first

	w = s.do(http.MethodGet, "/api/posts?page=1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	page = decode(t, w)
	assert.Len(t, page["content"], 2)
	assert.Equal(t, true, page["last"])

	w = s.do(http.MethodGet, fmt.Sprintf("/api/posts/my-blogs?userId=%d&size=100", bob), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["totalElements"])

	w = s.do(http.MethodGet, "/api/posts?size=0", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdatePostOnlyByAuthor(t *testing.T) {
	s := setupServer(t, false)
	alice := s.register(t, "Alice", "alice@example.com")
	bob := s.register(t, "Bob", "bob@example.com")
	postID := s.createPost(t, alice, "Draft")
	path := fmt.Sprintf("/api/posts/%d", postID)

	w := s.doMultipart(http.MethodPatch, path, map[string]string{
		"userId": fmt.Sprint(bob),
		"title":  "Hijacked",
	}, "", "", nil, "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "You are not authorized to update this post", decode(t, w)["message"])

	w = s.doMultipart(http.MethodPatch, path, map[string]string{
		"userId": fmt.Sprint(alice),
		"title":  "Final",
	}, "", "", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Final", body["title"])
	assert.Equal(t, "Body of Draft", body["content"]) // blank field keeps the old value
}

func TestDeletePostRemovesEngagement(t *testing.T) {
	s := setupServer(t, false)
	alice := s.register(t, "Alice", "alice@example.com")
	postID := s.createPost(t, alice, "Short lived")

	require.Equal(t, http.StatusOK, s.do(http.MethodPost, likePath(postID, alice), nil, "").Code)
	w := s.do(http.MethodPost, fmt.Sprintf("/api/posts/%d/comments?userId=%d", postID, alice), CommentInput{Content: "first"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(http.MethodGet, fmt.Sprintf("/api/posts/%d/like", postID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(http.MethodDelete, fmt.Sprintf("/api/posts/%d", postID), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
