// Package models contains data structures for the application's domain models.
package models

import "time"

// Defaults applied at signup when the user has not customised their profile.
const (
	DefaultBio          = "No bio yet."
	DefaultProfileImage = "https://placehold.co/100x100/slate-700/white?text=Profile"
)

// User represents a registered author in the blog service.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;size:20;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Bio          string    `gorm:"type:text" json:"bio"`
	ProfileImage string    `gorm:"size:200" json:"profile_image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	Posts        []Post    `gorm:"foreignKey:UserID" json:"posts,omitempty"`
}

// NewUser returns a User with profile defaults filled in.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Bio:          DefaultBio,
		ProfileImage: DefaultProfileImage,
	}
}
