package models

import "time"

// Post is owned by its author; UserID never changes after creation.
type Post struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"not null"`
	Content   string    `gorm:"type:text;not null"`
	ImgURL    *string   `gorm:"column:img_url"`
	UserID    uint      `gorm:"not null;index"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt time.Time `gorm:"index"`
}
