// Package models contains data structures for the application's domain models.
package models

import "time"

// DefaultThumbnail is substituted when a post is created without one.
const DefaultThumbnail = "https://placehold.co/600x400/slate-700/white?text=Thumbnail"

// Post represents a blog post. DatePosted is set once, at creation, in UTC;
// posts are always listed newest first. Deleting a post removes the row
// permanently.
type Post struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:100;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	DatePosted time.Time `gorm:"not null" json:"date_posted"`
	Tags       string    `gorm:"size:100" json:"tags"`
	Thumbnail  string    `gorm:"size:200" json:"thumbnail"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
}
