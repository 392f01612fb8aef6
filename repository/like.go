package repository

import (
	"context"

	"go-blog-backend/models"

	"gorm.io/gorm"
)

type LikeRepository interface {
	Exists(ctx context.Context, userID, postID uint) (bool, error)
	CountByPost(ctx context.Context, postID uint) (int64, error)
	Create(ctx context.Context, like *models.Like) error
	// Delete removes the like for (userID, postID) and returns the number of
	// rows it matched.
	Delete(ctx context.Context, userID, postID uint) (int64, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Exists(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Limit(1).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CountByPost(ctx context.Context, postID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error
	return count, err
}

// Create inserts like. A second like for the same pair fails with ErrDuplicate.
func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	db := r.db.Session(&gorm.Session{Logger: quietDuplicates{r.db.Logger}})
	return translate(db.WithContext(ctx).Omit("User", "Post").Create(like).Error)
}

func (r *likeRepository) Delete(ctx context.Context, userID, postID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{})
	return res.RowsAffected, res.Error
}
