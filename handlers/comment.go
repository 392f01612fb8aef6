package handlers

import (
	"net/http"

	"go-blog-backend/middleware"

	"github.com/gin-gonic/gin"
)

type CommentInput struct {
	Content string `json:"content" binding:"required"`
}

// AddComment - POST /api/posts/:postId/comments?userId=
func (h *Handler) AddComment(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	userID, err := requireCaller(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	var input CommentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.AbortWithBindError(c, err)
		return
	}

	comment, err := h.Comments.Add(c.Request.Context(), userID, postID, input.Content)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ListComments - GET /api/posts/:postId/comments?page=&size=
func (h *Handler) ListComments(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	page, err := pageRequest(c, defaultCommPage)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	comments, err := h.Comments.ListByPost(c.Request.Context(), postID, page)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
