package models

// Like asserts that a user endorsed a post. The (UserID, PostID) pair is
// unique: the index is the final arbiter when two inserts race.
type Like struct {
	ID     uint `gorm:"primaryKey"`
	UserID uint `gorm:"not null;uniqueIndex:idx_like_user_post"`
	PostID uint `gorm:"not null;uniqueIndex:idx_like_user_post;index"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE;"`
}
