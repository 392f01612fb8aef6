package service

import (
	"context"
	"strings"

	"go-blog-backend/apperrors"
	"go-blog-backend/dto"
	"go-blog-backend/models"
	"go-blog-backend/mqtt"
	"go-blog-backend/repository"
)

type CommentService struct {
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	events   mqtt.Publisher
}

func NewCommentService(users repository.UserRepository, posts repository.PostRepository, comments repository.CommentRepository, events mqtt.Publisher) *CommentService {
	return &CommentService{users: users, posts: posts, comments: comments, events: events}
}

func (s *CommentService) Add(ctx context.Context, userID, postID uint, content string) (dto.CommentDTO, error) {
	if strings.TrimSpace(content) == "" {
		return dto.CommentDTO{}, apperrors.BadRequest("Comment content must not be blank")
	}

	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return dto.CommentDTO{}, err
	}
	if !ok {
		return dto.CommentDTO{}, apperrors.NotFound(msgUserNotFound)
	}
	if ok, err = s.posts.Exists(ctx, postID); err != nil {
		return dto.CommentDTO{}, err
	}
	if !ok {
		return dto.CommentDTO{}, apperrors.NotFound(msgPostNotFound)
	}

	comment := &models.Comment{Content: content, UserID: userID, PostID: postID}
	if err := s.comments.Create(ctx, comment); err != nil {
		return dto.CommentDTO{}, err
	}

	out := dto.FromComment(comment)
	publish(s.events, mqtt.TopicCommentCreated, out)
	return out, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID uint, page repository.PageRequest) (dto.Page[dto.CommentDTO], error) {
	ok, err := s.posts.Exists(ctx, postID)
	if err != nil {
		return dto.Page[dto.CommentDTO]{}, err
	}
	if !ok {
		return dto.Page[dto.CommentDTO]{}, apperrors.NotFound(msgPostNotFound)
	}

	comments, total, err := s.comments.ListByPost(ctx, postID, page)
	if err != nil {
		return dto.Page[dto.CommentDTO]{}, err
	}
	return dto.NewPage(comments, dto.FromComment, page.Page, page.Size, total), nil
}
