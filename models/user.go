// user.go - Defines the User model for the database

package models // Declares the package name

import "time"

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents a registered author or reader. Password holds a bcrypt hash,
// ProfileImageURL is nil until a profile image is uploaded, and Roles is never
// empty once the user is stored.
type User struct {
	ID              uint      `gorm:"primaryKey"`
	Email           string    `gorm:"uniqueIndex;not null"`
	Name            string    `gorm:"not null"`
	Bio             string    `gorm:"type:text"`
	Password        string    `gorm:"not null"`
	ProfileImageURL *string   `gorm:"column:profile_image_url"`
	Roles           []string  `gorm:"serializer:json;not null"`
	CreatedAt       time.Time `gorm:"index"`
}

// HasRole reports whether the user carries role.
func (u *User) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}
