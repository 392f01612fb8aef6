// post.go - Post CRUD endpoints (multipart for create and update)

package handlers

import (
	"net/http"

	"go-blog-backend/middleware"
	"go-blog-backend/service"

	"github.com/gin-gonic/gin"
)

type CreatePostInput struct {
	Title   string `form:"title" binding:"required"`
	Content string `form:"content" binding:"required"`
}

type UpdatePostInput struct {
	Title   string `form:"title"`
	Content string `form:"content"`
}

// CreatePost - POST /api/posts (multipart: userId, title, content, image?)
func (h *Handler) CreatePost(c *gin.Context) {
	var input CreatePostInput
	if err := c.ShouldBind(&input); err != nil {
		middleware.AbortWithBindError(c, err)
		return
	}
	userID, err := requireCaller(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	image, err := formImage(c, imageFormField)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	post, err := h.Posts.Create(c.Request.Context(), userID, service.PostInput{
		Title:   input.Title,
		Content: input.Content,
		Image:   image,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, post)
}

// ListPosts - GET /api/posts?page=&size=
func (h *Handler) ListPosts(c *gin.Context) {
	page, err := pageRequest(c, defaultPostPage)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	posts, err := h.Posts.List(c.Request.Context(), page)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// ListMyPosts - GET /api/posts/my-blogs?userId=&page=&size=
func (h *Handler) ListMyPosts(c *gin.Context) {
	userID, err := requireCaller(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	page, err := pageRequest(c, defaultPostPage)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	posts, err := h.Posts.ListByAuthor(c.Request.Context(), userID, page)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost - GET /api/posts/:postId
func (h *Handler) GetPost(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	post, err := h.Posts.Get(c.Request.Context(), postID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// UpdatePost - PATCH /api/posts/:postId (multipart: userId, title?, content?, image?)
func (h *Handler) UpdatePost(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	var input UpdatePostInput
	if err := c.ShouldBind(&input); err != nil {
		middleware.AbortWithBindError(c, err)
		return
	}
	userID, err := requireCaller(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	image, err := formImage(c, imageFormField)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	post, err := h.Posts.Update(c.Request.Context(), userID, postID, service.PostInput{
		Title:   input.Title,
		Content: input.Content,
		Image:   image,
	})
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, post)
}

// DeletePost - DELETE /api/posts/:postId
func (h *Handler) DeletePost(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	if err := h.Posts.Delete(c.Request.Context(), postID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
