package models

import (
	"time"
)

// UnknownAuthor is substituted when a post's author record cannot be joined.
const UnknownAuthor = "Unknown"

// PostDB represents a blog post row in the database
type PostDB struct {
	ID        int64     `json:"id" db:"id"`                 // Primary key
	Title     string    `json:"title" db:"title"`           // Post title, stored trimmed
	Content   string    `json:"content" db:"content"`       // Post body, stored trimmed
	ImageURL  *string   `json:"image_url" db:"image_url"`   // Optional image URL
	UserID    int64     `json:"user_id" db:"user_id"`       // Owning user, immutable
	CreatedAt time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"` // Refreshed on every mutation
}

// PostView is a post denormalized with its author's username.
type PostView struct {
	ID             int64     `json:"id" db:"id"`
	Title          string    `json:"title" db:"title"`
	Content        string    `json:"content" db:"content"`
	ImageURL       *string   `json:"image_url" db:"image_url"`
	UserID         int64     `json:"user_id" db:"user_id"`
	AuthorUsername string    `json:"author_username" db:"author_username"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// PaginatedPosts bundles a page of posts with pagination metadata.
type PaginatedPosts struct {
	Items []PostView `json:"items"`
	Total int64      `json:"total"`
	Page  int        `json:"page"`
	Size  int        `json:"size"`
	Pages int        `json:"pages"`
}
