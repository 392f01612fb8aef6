package repository

import (
	"context"

	"go-blog-backend/models"

	"gorm.io/gorm"
)

type PostRepository interface {
	// FindByID loads the post with its author.
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	Exists(ctx context.Context, id uint) (bool, error)
	Create(ctx context.Context, post *models.Post) error
	Save(ctx context.Context, post *models.Post) error
	// Delete removes the post and every like and comment that references it.
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page PageRequest) ([]models.Post, int64, error)
	ListByAuthor(ctx context.Context, userID uint, page PageRequest) ([]models.Post, int64, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).Preload("User").First(&post, id).Error; err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(post).Error; err != nil {
		return translate(err)
	}
	return r.db.WithContext(ctx).Preload("User").First(post, post.ID).Error
}

func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	return translate(r.db.WithContext(ctx).Omit("User").Save(post).Error)
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Post{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

func (r *postRepository) List(ctx context.Context, page PageRequest) ([]models.Post, int64, error) {
	return r.list(ctx, nil, page)
}

func (r *postRepository) ListByAuthor(ctx context.Context, userID uint, page PageRequest) ([]models.Post, int64, error) {
	return r.list(ctx, &userID, page)
}

func (r *postRepository) list(ctx context.Context, userID *uint, page PageRequest) ([]models.Post, int64, error) {
	scope := func(db *gorm.DB) *gorm.DB {
		if userID != nil {
			return db.Where("user_id = ?", *userID)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Post{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.db.WithContext(ctx).Scopes(scope).Preload("User").
		Order("created_at DESC").Order("id DESC").
		Offset(page.offset()).Limit(page.Size).
		Find(&posts).Error
	return posts, total, err
}
