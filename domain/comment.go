package domain

import (
	"context"
	"time"
)

// Comment belongs to a blog and to the user who wrote it. Both references
// are fixed at creation.
type Comment struct {
	ID       int    `json:"id"`
	Content  string `json:"content" gorm:"type:text;not null"`
	AuthorID int    `json:"author_id" gorm:"not null;index"`
	Author   User   `json:"-"`
	BlogID   int    `json:"blog_id" gorm:"not null;index"`

	CreatedAt time.Time `json:"created_at"`
}

// CommentResponse is the outward projection of a comment.
type CommentResponse struct {
	ID             int       `json:"id"`
	Content        string    `json:"content"`
	AuthorUsername string    `json:"author_username"`
	CreatedAt      time.Time `json:"created_at"`
	BlogID         int       `json:"blog_id"`
}

// CommentService is a set of methods to manage comments on blogs.
type CommentService interface {
	Add(ctx context.Context, blogID int, actor *User, content string) (*CommentResponse, error)
	Delete(ctx context.Context, commentID int, actor *User) error
	ByBlog(ctx context.Context, blogID int) ([]CommentResponse, error)
	ByAuthor(ctx context.Context, actor *User) ([]CommentResponse, error)
}
