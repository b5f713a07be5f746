package domain

import (
	"context"
	"time"
)

// Follow is one directed edge of the follower/following relation: the
// follower is following the followed. Storing the relation as edge rows
// keyed by the id pair makes adding and removing a follower a single
// transactional upsert or delete instead of rewriting a whole collection.
type Follow struct {
	ID         int `json:"id"`
	FollowerID int `json:"follower_id" gorm:"not null;uniqueIndex:idx_follows_pair"`
	FollowedID int `json:"followed_id" gorm:"not null;uniqueIndex:idx_follows_pair"`

	CreatedAt time.Time `json:"created_at"`
}

// FollowService is a set of methods to manage the follow relation.
// Self-follows are silently ignored; repeated follows and unfollows of an
// absent edge are idempotent no-ops.
type FollowService interface {
	Follow(ctx context.Context, actor *User, targetUsername string) error
	Unfollow(ctx context.Context, actor *User, targetUsername string) error
	Followers(ctx context.Context, username string) ([]PublicProfile, error)
	Following(ctx context.Context, username string) ([]PublicProfile, error)
	FollowerCount(ctx context.Context, username string) (int64, error)
	FollowingCount(ctx context.Context, username string) (int64, error)
	IsFollowing(ctx context.Context, actor *User, username string) (bool, error)
}
