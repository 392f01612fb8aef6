package service

import (
	"context"
	"errors"
	"strings"

	"go-blog-backend/apperrors"
	"go-blog-backend/auth"
	"go-blog-backend/dto"
	"go-blog-backend/media"
	"go-blog-backend/models"
	"go-blog-backend/mqtt"
	"go-blog-backend/repository"

	"golang.org/x/crypto/bcrypt" // Password hashing
)

const (
	msgEmailTaken         = "Email already exists!"
	msgInvalidCredentials = "Invalid Credentials."
	msgNameBlank          = "Name must not be blank"
	msgEmailBlank         = "Email must not be blank"
)

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Bio      string
	Roles    []string
}

// ProfileUpdate carries the editable profile fields. Nil fields are left as they are.
type ProfileUpdate struct {
	Name  *string
	Bio   *string
	Email *string
	Image *media.File
}

type UserService struct {
	users  repository.UserRepository
	media  media.Store
	tokens *auth.Tokens
	events mqtt.Publisher
}

func NewUserService(users repository.UserRepository, store media.Store, tokens *auth.Tokens, events mqtt.Publisher) *UserService {
	return &UserService{users: users, media: store, tokens: tokens, events: events}
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (dto.UserDTO, error) {
	email := strings.TrimSpace(in.Email)
	taken, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return dto.UserDTO{}, err
	}
	if taken {
		return dto.UserDTO{}, apperrors.Conflict(msgEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return dto.UserDTO{}, err
	}

	roles := in.Roles
	if len(roles) == 0 {
		roles = []string{models.RoleUser}
	}
	user := &models.User{
		Name:     in.Name,
		Email:    email,
		Bio:      in.Bio,
		Password: string(hash),
		Roles:    roles,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) { // lost a race on the unique email index
			return dto.UserDTO{}, apperrors.Conflict(msgEmailTaken)
		}
		return dto.UserDTO{}, err
	}

	out := dto.FromUser(user)
	publish(s.events, mqtt.TopicUserRegistered, out)
	return out, nil
}

// Login checks the password and returns the profile with a fresh bearer token.
func (s *UserService) Login(ctx context.Context, email, password string) (dto.UserResponse, error) {
	user, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if errors.Is(err, repository.ErrNotFound) {
		return dto.UserResponse{}, apperrors.BadRequest(msgInvalidCredentials)
	}
	if err != nil {
		return dto.UserResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return dto.UserResponse{}, apperrors.BadRequest(msgInvalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return dto.UserResponse{}, err
	}
	return dto.FromUserWithToken(user, token), nil
}

func (s *UserService) Get(ctx context.Context, id uint) (dto.UserDTO, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return dto.UserDTO{}, err
	}
	return dto.FromUser(user), nil
}

func (s *UserService) List(ctx context.Context, page repository.PageRequest) (dto.Page[dto.UserDTO], error) {
	users, total, err := s.users.List(ctx, page)
	if err != nil {
		return dto.Page[dto.UserDTO]{}, err
	}
	return dto.NewPage(users, dto.FromUser, page.Page, page.Size, total), nil
}

// UpdateProfile applies the non-nil fields of upd. A new image replaces the
// previous one, which is removed from the media store first.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, upd ProfileUpdate) (dto.UserResponse, error) {
	user, err := s.find(ctx, id)
	if err != nil {
		return dto.UserResponse{}, err
	}

	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return dto.UserResponse{}, apperrors.BadRequest(msgNameBlank)
	}
	if upd.Email != nil {
		email := strings.TrimSpace(*upd.Email)
		if email == "" {
			return dto.UserResponse{}, apperrors.BadRequest(msgEmailBlank)
		}
		if email != user.Email {
			taken, err := s.users.ExistsByEmail(ctx, email)
			if err != nil {
				return dto.UserResponse{}, err
			}
			if taken {
				return dto.UserResponse{}, apperrors.Conflict(msgEmailTaken)
			}
			user.Email = email
		}
	}
	if upd.Name != nil {
		user.Name = *upd.Name
	}
	if upd.Bio != nil {
		user.Bio = *upd.Bio
	}

	oldImage := user.ProfileImageURL
	if upd.Image != nil && len(upd.Image.Data) > 0 {
		url, err := s.media.Upload(ctx, media.UserFolder, *upd.Image)
		if err != nil {
			return dto.UserResponse{}, apperrors.Wrap(err, "Image upload failed")
		}
		user.ProfileImageURL = &url
	}

	if err := s.users.Save(ctx, user); err != nil {
		if user.ProfileImageURL != oldImage {
			removeImage(ctx, s.media, media.UserFolder, user.ProfileImageURL)
		}
		if errors.Is(err, repository.ErrDuplicate) {
			return dto.UserResponse{}, apperrors.Conflict(msgEmailTaken)
		}
		return dto.UserResponse{}, err
	}
	if user.ProfileImageURL != oldImage {
		removeImage(ctx, s.media, media.UserFolder, oldImage)
	}
	return dto.FromUserWithToken(user, ""), nil
}

// Delete removes the user and everything they authored.
func (s *UserService) Delete(ctx context.Context, id uint) error {
	user, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound(msgUserNotFound)
		}
		return err
	}
	removeImage(ctx, s.media, media.UserFolder, user.ProfileImageURL)
	return nil
}

func (s *UserService) find(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.NotFound(msgUserNotFound)
	}
	return user, err
}
