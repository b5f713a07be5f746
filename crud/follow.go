package crud

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
)

// FollowService manages the directed follow edges between users.
// It implements the domain.FollowService interface.
type FollowService struct {
	followGorm
}

// followGorm runs CRUD operations on the follows table.
type followGorm struct {
	db *gorm.DB
}

// NewFollowService returns an instance of FollowService.
func NewFollowService(db *gorm.DB) *FollowService {
	return &FollowService{
		followGorm{
			db: db,
		},
	}
}

// Ensure the FollowService struct properly implements the domain.FollowService interface.
var _ domain.FollowService = &FollowService{}

// Follow adds the actor to the target's followers. Following yourself is
// silently ignored; following someone twice is a no-op. The edge upsert
// is keyed by the (follower_id, followed_id) pair inside a transaction,
// so two concurrent follows of the same target cannot lose each other.
func (fg *followGorm) Follow(ctx context.Context, actor *domain.User, targetUsername string) error {
	if actor.Username == targetUsername {
		return nil
	}
	return fg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := userByUsername(tx, targetUsername)
		if err != nil {
			return err
		}
		follow := domain.Follow{FollowerID: actor.ID, FollowedID: target.ID}
		return tx.Where(&follow).FirstOrCreate(&follow).Error
	})
}

// Unfollow removes the actor from the target's followers. Unfollowing
// yourself or someone you don't follow is a no-op.
func (fg *followGorm) Unfollow(ctx context.Context, actor *domain.User, targetUsername string) error {
	if actor.Username == targetUsername {
		return nil
	}
	return fg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := userByUsername(tx, targetUsername)
		if err != nil {
			return err
		}
		return tx.Delete(&domain.Follow{}, "follower_id = ? AND followed_id = ?", actor.ID, target.ID).Error
	})
}

// Followers retrieves the public profiles of everyone following the user.
func (fg *followGorm) Followers(ctx context.Context, username string) ([]domain.PublicProfile, error) {
	db := fg.db.WithContext(ctx)
	user, err := userByUsername(db, username)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	err = db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", user.ID).
		Order("users.id asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return toPublicProfiles(users), nil
}

// Following retrieves the public profiles of everyone the user follows.
func (fg *followGorm) Following(ctx context.Context, username string) ([]domain.PublicProfile, error) {
	db := fg.db.WithContext(ctx)
	user, err := userByUsername(db, username)
	if err != nil {
		return nil, err
	}
	var users []domain.User
	err = db.
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", user.ID).
		Order("users.id asc").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return toPublicProfiles(users), nil
}

// FollowerCount returns the number of followers of the user.
func (fg *followGorm) FollowerCount(ctx context.Context, username string) (int64, error) {
	db := fg.db.WithContext(ctx)
	user, err := userByUsername(db, username)
	if err != nil {
		return 0, err
	}
	var count int64
	err = db.Model(&domain.Follow{}).Where("followed_id = ?", user.ID).Count(&count).Error
	return count, err
}

// FollowingCount returns the number of users the user follows.
func (fg *followGorm) FollowingCount(ctx context.Context, username string) (int64, error) {
	db := fg.db.WithContext(ctx)
	user, err := userByUsername(db, username)
	if err != nil {
		return 0, err
	}
	var count int64
	err = db.Model(&domain.Follow{}).Where("follower_id = ?", user.ID).Count(&count).Error
	return count, err
}

// IsFollowing reports whether the actor follows the named user. A nil
// actor follows nobody, and nobody follows themselves.
func (fg *followGorm) IsFollowing(ctx context.Context, actor *domain.User, username string) (bool, error) {
	if actor == nil || actor.Username == username {
		return false, nil
	}
	db := fg.db.WithContext(ctx)
	target, err := userByUsername(db, username)
	if err != nil {
		return false, err
	}
	var count int64
	err = db.Model(&domain.Follow{}).
		Where("follower_id = ? AND followed_id = ?", actor.ID, target.ID).
		Count(&count).Error
	return count > 0, err
}

// userByUsername loads a user by exact username.
func userByUsername(db *gorm.DB, username string) (*domain.User, error) {
	var user domain.User
	err := db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "User not found.")
		}
		return nil, err
	}
	return &user, nil
}

// toPublicProfiles projects users into their public shape.
func toPublicProfiles(users []domain.User) []domain.PublicProfile {
	profiles := make([]domain.PublicProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].PublicProfile())
	}
	return profiles
}
