package service

import (
	"context"
	"errors"

	"go-blog-backend/apperrors"
	"go-blog-backend/dto"
	"go-blog-backend/metrics"
	"go-blog-backend/models"
	"go-blog-backend/repository"
)

const (
	msgLoginToLike  = "You must be logged in to like a post"
	msgUserNotFound = "User not found."
	msgPostNotFound = "Post not found."
	msgAlreadyLiked = "User already liked this post."
	msgLikeNotFound = "Like not found"
)

// LikeService keeps at most one like per (user, post) and derives counts from
// the stored likes on every read.
type LikeService struct {
	users repository.UserRepository
	posts repository.PostRepository
	likes repository.LikeRepository
}

func NewLikeService(users repository.UserRepository, posts repository.PostRepository, likes repository.LikeRepository) *LikeService {
	return &LikeService{users: users, posts: posts, likes: likes}
}

// Like records that userID likes postID. The existence check is only a fast
// path: a concurrent duplicate insert is rejected by the unique index and
// reported as the same conflict.
func (s *LikeService) Like(ctx context.Context, userID *uint, postID uint) (res dto.LikeDTO, err error) {
	defer func() { observe("like", err) }()

	if userID == nil {
		return dto.LikeDTO{}, apperrors.BadRequest(msgLoginToLike)
	}
	if err := s.requireUser(ctx, *userID); err != nil {
		return dto.LikeDTO{}, err
	}
	if err := s.requirePost(ctx, postID); err != nil {
		return dto.LikeDTO{}, err
	}

	liked, err := s.likes.Exists(ctx, *userID, postID)
	if err != nil {
		return dto.LikeDTO{}, err
	}
	if liked {
		return dto.LikeDTO{}, apperrors.Conflict(msgAlreadyLiked)
	}

	like := &models.Like{UserID: *userID, PostID: postID}
	if err := s.likes.Create(ctx, like); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.LikeDTO{}, apperrors.Conflict(msgAlreadyLiked)
		}
		return dto.LikeDTO{}, err
	}
	return dto.FromLike(like), nil
}

// Unlike deletes the like for (userID, postID). It is not idempotent: a
// delete that matches no row fails with NotFound.
func (s *LikeService) Unlike(ctx context.Context, userID, postID uint) (err error) {
	defer func() { observe("unlike", err) }()

	n, err := s.likes.Delete(ctx, userID, postID)
	if err != nil {
		return err
	}
	if n == 0 {
		return apperrors.NotFound(msgLikeNotFound)
	}
	return nil
}

// GetLikeState counts the likes on postID and reports whether userID is
// among them. A nil userID is never "liked".
func (s *LikeService) GetLikeState(ctx context.Context, postID uint, userID *uint) (res dto.LikeState, err error) {
	defer func() { observe("state", err) }()

	if err := s.requirePost(ctx, postID); err != nil {
		return dto.LikeState{}, err
	}

	likedByUser := false
	if userID != nil {
		if likedByUser, err = s.likes.Exists(ctx, *userID, postID); err != nil {
			return dto.LikeState{}, err
		}
	}

	total, err := s.likes.CountByPost(ctx, postID)
	if err != nil {
		return dto.LikeState{}, err
	}
	return dto.NewLikeState(postID, total, likedByUser), nil
}

func (s *LikeService) requireUser(ctx context.Context, id uint) error {
	ok, err := s.users.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound(msgUserNotFound)
	}
	return nil
}

func (s *LikeService) requirePost(ctx context.Context, id uint) error {
	ok, err := s.posts.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return apperrors.NotFound(msgPostNotFound)
	}
	return nil
}

func observe(op string, err error) {
	result := "ok"
	if err != nil {
		switch apperrors.KindOf(err) {
		case apperrors.KindNotFound:
			result = "not_found"
		case apperrors.KindBadRequest:
			result = "rejected"
		default:
			result = "error"
		}
	}
	metrics.LikeOperations.WithLabelValues(op, result).Inc()
}
