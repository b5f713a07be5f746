package crud

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
	"github.com/gantavyamalviya/pingpong/policy"
)

// LikeService manages the like edges between users and blogs.
// It implements the domain.LikeService interface.
type LikeService struct {
	likeGorm
}

// likeGorm runs CRUD operations on the database using incoming Like data.
type likeGorm struct {
	db *gorm.DB
}

// NewLikeService returns an instance of LikeService.
func NewLikeService(db *gorm.DB) *LikeService {
	return &LikeService{
		likeGorm{
			db: db,
		},
	}
}

// Ensure the LikeService struct properly implements the domain.LikeService interface.
var _ domain.LikeService = &LikeService{}

// Like adds the (actor, blog) edge. Authors cannot like their own blog.
// Liking an already liked blog is a no-op. The existence check and the
// insert run in one transaction; the unique (user_id, blog_id) index
// serializes a concurrent double-insert on the store side.
func (lg *likeGorm) Like(ctx context.Context, blogID int, actor *domain.User) error {
	return lg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blog domain.Blog
		if err := tx.First(&blog, "id = ?", blogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "Blog not found.")
			}
			return err
		}
		if err := policy.CanLike(actor, &blog); err != nil {
			return err
		}
		like := domain.Like{UserID: actor.ID, BlogID: blogID}
		return tx.Where(&like).FirstOrCreate(&like).Error
	})
}

// Unlike removes the (actor, blog) edge. Unliking a blog that was never
// liked is a no-op, not an error.
func (lg *likeGorm) Unlike(ctx context.Context, blogID int, actor *domain.User) error {
	return lg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&domain.Blog{}, "id = ?", blogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "Blog not found.")
			}
			return err
		}
		return tx.Delete(&domain.Like{}, "user_id = ? AND blog_id = ?", actor.ID, blogID).Error
	})
}

// Count returns the number of likes on a blog.
func (lg *likeGorm) Count(ctx context.Context, blogID int) (int64, error) {
	db := lg.db.WithContext(ctx)
	if err := db.First(&domain.Blog{}, "id = ?", blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, errs.Errorf(errs.ENOTFOUND, "Blog not found.")
		}
		return 0, err
	}
	var count int64
	err := db.Model(&domain.Like{}).Where("blog_id = ?", blogID).Count(&count).Error
	return count, err
}

// IsLikedBy reports whether the actor likes the blog. A nil actor never does.
func (lg *likeGorm) IsLikedBy(ctx context.Context, blogID int, actor *domain.User) (bool, error) {
	db := lg.db.WithContext(ctx)
	if err := db.First(&domain.Blog{}, "id = ?", blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, errs.Errorf(errs.ENOTFOUND, "Blog not found.")
		}
		return false, err
	}
	if actor == nil {
		return false, nil
	}
	var count int64
	err := db.Model(&domain.Like{}).
		Where("user_id = ? AND blog_id = ?", actor.ID, blogID).
		Count(&count).Error
	return count > 0, err
}

// LikedBlogs retrieves the projections of all blogs the actor has liked.
func (lg *likeGorm) LikedBlogs(ctx context.Context, actor *domain.User) ([]domain.BlogResponse, error) {
	db := lg.db.WithContext(ctx)
	var blogs []domain.Blog
	err := db.
		Joins("JOIN likes ON likes.blog_id = blogs.id").
		Where("likes.user_id = ?", actor.ID).
		Preload("Author").
		Order("blogs.id asc").
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}
	responses := make([]domain.BlogResponse, 0, len(blogs))
	for i := range blogs {
		resp, err := toBlogResponse(db, &blogs[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}
