// like.go - Like, unlike and like-state endpoints

package handlers

import (
	"net/http"

	"go-blog-backend/middleware"

	"github.com/gin-gonic/gin"
)

// LikePost - POST /api/posts/:postId/like?userId=
func (h *Handler) LikePost(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	userID, err := middleware.CallerID(c) // nil is reported by the service
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	like, err := h.Likes.Like(c.Request.Context(), userID, postID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, like)
}

// GetLikeState - GET /api/posts/:postId/like?userId= (userId optional)
func (h *Handler) GetLikeState(c *gin.Context) {
	postID, err := pathID(c, "postId")
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	userID, err := middleware.CallerID(c)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}

	state, err := h.Likes.GetLikeState(c.Request.Context(), postID, userID)
	if err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// UnlikePost - DELETE /api/posts/:postId/like?userId=
func (h *Handler) UnlikePost(c *gin.Context) {
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

	if err := h.Likes.Unlike(c.Request.Context(), userID, postID); err != nil {
		middleware.AbortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
