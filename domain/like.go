package domain

import (
	"context"
	"time"
)

// Like is a present/absent edge between a user and a blog. The composite
// unique index keeps the pair unique even under concurrent inserts.
type Like struct {
	ID     int `json:"id"`
	UserID int `json:"user_id" gorm:"not null;uniqueIndex:idx_likes_user_blog"`
	BlogID int `json:"blog_id" gorm:"not null;uniqueIndex:idx_likes_user_blog"`

	CreatedAt time.Time `json:"created_at"`
}

// LikeService is a set of methods to manage likes. Liking twice and
// unliking a blog that was never liked are idempotent no-ops.
type LikeService interface {
	Like(ctx context.Context, blogID int, actor *User) error
	Unlike(ctx context.Context, blogID int, actor *User) error
	Count(ctx context.Context, blogID int) (int64, error)
	IsLikedBy(ctx context.Context, blogID int, actor *User) (bool, error)
	LikedBlogs(ctx context.Context, actor *User) ([]BlogResponse, error)
}
