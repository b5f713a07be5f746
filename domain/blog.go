package domain

import (
	"context"
	"time"
)

// Blog is a post authored by a user. A blog owns its comments and likes:
// deleting the blog cascades to both. AuthorID never changes after creation.
type Blog struct {
	ID       int    `json:"id"`
	Title    string `json:"title" gorm:"not null"`
	Content  string `json:"content" gorm:"type:text"`
	ImageURL string `json:"image_url"`
	AuthorID int    `json:"author_id" gorm:"not null;index"`
	Author   User   `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BlogFields carries the author-editable fields of a blog, both for
// publishing and for updates.
type BlogFields struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	ImageURL string `json:"image_url"`
}

// Author is the slice of a user embedded in a blog response.
type Author struct {
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	ProfilePicture string `json:"profile_picture"`
}

// BlogResponse is the outward projection of a blog, including its author
// and the current like and comment counts.
type BlogResponse struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Content      string    `json:"content"`
	ImageURL     string    `json:"image_url"`
	Author       Author    `json:"author"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
	LikeCount    int64     `json:"like_count"`
	CommentCount int64     `json:"comment_count"`
}

// BlogPage is one page of blogs plus pagination metadata.
type BlogPage struct {
	Content       []BlogResponse `json:"content"`
	TotalPages    int            `json:"total_pages"`
	TotalElements int64          `json:"total_elements"`
	Size          int            `json:"size"`
	Number        int            `json:"number"`
}

// BlogService is a set of methods to manage blogs and their projections.
type BlogService interface {
	Publish(ctx context.Context, actor *User, fields BlogFields) (*BlogResponse, error)
	Update(ctx context.Context, id int, actor *User, fields BlogFields) (*BlogResponse, error)
	Delete(ctx context.Context, id int, actor *User) error
	ByID(ctx context.Context, id int) (*BlogResponse, error)
	All(ctx context.Context, page, size int) (*BlogPage, error)
	ByAuthor(ctx context.Context, username string) ([]BlogResponse, error)
}
