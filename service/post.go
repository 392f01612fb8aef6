package service

import (
	"context"
	"errors"
	"strings"

	"go-blog-backend/apperrors"
	"go-blog-backend/dto"
	"go-blog-backend/media"
	"go-blog-backend/models"
	"go-blog-backend/mqtt"
	"go-blog-backend/repository"
)

const (
	msgPostNotFoundPlain = "Post not found"
	msgUserNotFoundPlain = "User not found"
	msgNotPostAuthor     = "You are not authorized to update this post"
)

type PostInput struct {
	Title   string
	Content string
	Image   *media.File
}

type PostService struct {
	users  repository.UserRepository
	posts  repository.PostRepository
	media  media.Store
	events mqtt.Publisher
}

func NewPostService(users repository.UserRepository, posts repository.PostRepository, store media.Store, events mqtt.Publisher) *PostService {
	return &PostService{users: users, posts: posts, media: store, events: events}
}

func (s *PostService) Create(ctx context.Context, userID uint, in PostInput) (dto.PostDTO, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return dto.PostDTO{}, err
	}
	if !ok {
		return dto.PostDTO{}, apperrors.NotFound(msgUserNotFoundPlain)
	}

	post := &models.Post{Title: in.Title, Content: in.Content, UserID: userID}
	if in.Image != nil && len(in.Image.Data) > 0 {
		url, err := s.media.Upload(ctx, media.PostFolder, *in.Image)
		if err != nil {
			return dto.PostDTO{}, apperrors.Wrap(err, "Image upload failed")
		}
		post.ImgURL = &url
	}

	if err := s.posts.Create(ctx, post); err != nil {
		removeImage(ctx, s.media, media.PostFolder, post.ImgURL)
		return dto.PostDTO{}, err
	}

	out := dto.FromPost(post)
	publish(s.events, mqtt.TopicPostCreated, out)
	return out, nil
}

func (s *PostService) Get(ctx context.Context, id uint) (dto.PostDTO, error) {
	post, err := s.find(ctx, id)
	if err != nil {
		return dto.PostDTO{}, err
	}
	return dto.FromPost(post), nil
}

func (s *PostService) List(ctx context.Context, page repository.PageRequest) (dto.Page[dto.PostDTO], error) {
	posts, total, err := s.posts.List(ctx, page)
	if err != nil {
		return dto.Page[dto.PostDTO]{}, err
	}
	return dto.NewPage(posts, dto.FromPost, page.Page, page.Size, total), nil
}

// ListByAuthor pages through the posts written by userID.
func (s *PostService) ListByAuthor(ctx context.Context, userID uint, page repository.PageRequest) (dto.Page[dto.PostDTO], error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return dto.Page[dto.PostDTO]{}, err
	}
	if !ok {
		return dto.Page[dto.PostDTO]{}, apperrors.NotFound(msgUserNotFoundPlain)
	}

	posts, total, err := s.posts.ListByAuthor(ctx, userID, page)
	if err != nil {
		return dto.Page[dto.PostDTO]{}, err
	}
	return dto.NewPage(posts, dto.FromPost, page.Page, page.Size, total), nil
}

// Update lets the author change title, content and image. Blank title or
// content keep the stored value; a new image replaces the old one.
func (s *PostService) Update(ctx context.Context, userID, postID uint, in PostInput) (dto.PostDTO, error) {
	ok, err := s.users.Exists(ctx, userID)
	if err != nil {
		return dto.PostDTO{}, err
	}
	if !ok {
		return dto.PostDTO{}, apperrors.NotFound(msgUserNotFoundPlain)
	}
	post, err := s.find(ctx, postID)
	if err != nil {
		return dto.PostDTO{}, err
	}
	if post.UserID != userID {
		return dto.PostDTO{}, apperrors.Forbidden(msgNotPostAuthor)
	}

	oldImage := post.ImgURL
	if in.Image != nil && len(in.Image.Data) > 0 {
		url, err := s.media.Upload(ctx, media.PostFolder, *in.Image)
		if err != nil {
			return dto.PostDTO{}, apperrors.Wrap(err, "Image upload failed")
		}
		post.ImgURL = &url
	}
	if strings.TrimSpace(in.Title) != "" {
		post.Title = in.Title
	}
	if strings.TrimSpace(in.Content) != "" {
		post.Content = in.Content
	}

	if err := s.posts.Save(ctx, post); err != nil {
		if post.ImgURL != oldImage {
			removeImage(ctx, s.media, media.PostFolder, post.ImgURL)
		}
		return dto.PostDTO{}, err
	}
	// The old image goes only once the post points at its replacement.
	if post.ImgURL != oldImage {
		removeImage(ctx, s.media, media.PostFolder, oldImage)
	}
	return dto.FromPost(post), nil
}

// Delete removes the post with its likes and comments, then its image.
func (s *PostService) Delete(ctx context.Context, id uint) error {
	post, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(msgPostNotFoundPlain)
		}
		return err
	}
	removeImage(ctx, s.media, media.PostFolder, post.ImgURL)
	publish(s.events, mqtt.TopicPostDeleted, map[string]uint{"id": id})
	return nil
}

func (s *PostService) find(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound(msgPostNotFoundPlain)
	}
	return post, err
}
