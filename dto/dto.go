// Package dto holds the JSON transfer shapes and one explicit conversion per
// (model, shape) pair.
package dto

import (
	"time"

	"go-blog-backend/models"
)

type UserDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Bio          string    `json:"bio"`
	ProfileImage *string   `json:"profileImage"`
	Roles        []string  `json:"roles"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserResponse is returned by login and profile updates. Token is only set on login.
type UserResponse struct {
	ID           uint     `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	Bio          string   `json:"bio"`
	ProfileImage *string  `json:"profileImage"`
	Roles        []string `json:"roles"`
	Token        string   `json:"token,omitempty"`
}

type PostDTO struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImgURL    *string   `json:"imgUrl"`
	UserID    uint      `json:"userId"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

type LikeDTO struct {
	ID     uint `json:"id"`
	UserID uint `json:"userId"`
	PostID uint `json:"postId"`
}

type LikeState struct {
	PostID      uint  `json:"postId"`
	LikeCount   int64 `json:"likeCount"`
	LikedByUser bool  `json:"likedByUser"`
}

type CommentDTO struct {
	ID        uint      `json:"id"`
	Content   string    `json:"content"`
	UserID    uint      `json:"userId"`
	PostID    uint      `json:"postId"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromUser(u *models.User) UserDTO {
	return UserDTO{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImageURL,
		Roles:        u.Roles,
		CreatedAt:    u.CreatedAt,
	}
}

func FromUserWithToken(u *models.User, token string) UserResponse {
	return UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Name:         u.Name,
		Bio:          u.Bio,
		ProfileImage: u.ProfileImageURL,
		Roles:        u.Roles,
		Token:        token,
	}
}

// FromPost expects p.User to be loaded; the author name is empty otherwise.
func FromPost(p *models.Post) PostDTO {
	return PostDTO{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		ImgURL:    p.ImgURL,
		UserID:    p.UserID,
		Name:      p.User.Name,
		CreatedAt: p.CreatedAt,
	}
}

func FromLike(l *models.Like) LikeDTO {
	return LikeDTO{ID: l.ID, UserID: l.UserID, PostID: l.PostID}
}

func NewLikeState(postID uint, count int64, likedByUser bool) LikeState {
	return LikeState{PostID: postID, LikeCount: count, LikedByUser: likedByUser}
}

func FromComment(c *models.Comment) CommentDTO {
	return CommentDTO{
		ID:        c.ID,
		Content:   c.Content,
		UserID:    c.UserID,
		PostID:    c.PostID,
		UserName:  c.User.Name,
		CreatedAt: c.CreatedAt,
	}
}
