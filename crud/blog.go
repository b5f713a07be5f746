package crud

import (
	"context"
	"errors"
	"math"

	"gorm.io/gorm"

	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
	"github.com/gantavyamalviya/pingpong/policy"
)

// BlogService manages blogs and their response projections.
// It implements the domain.BlogService interface.
type BlogService struct {
	blogValidator
}

// blogValidator runs validations on incoming Blog data.
// On success, it passes the data on to blogGorm.
// Otherwise, it returns the error of the validation that has failed.
type blogValidator struct {
	blogGorm
}

// blogGorm runs CRUD operations on the database using incoming Blog data.
// It assumes that data has been validated. On success, it returns nil.
// Otherwise, it returns the error of the operation that has failed.
type blogGorm struct {
	db *gorm.DB
}

// NewBlogService returns an instance of BlogService.
func NewBlogService(db *gorm.DB) *BlogService {
	return &BlogService{
		blogValidator{
			blogGorm{
				db: db,
			},
		},
	}
}

// Ensure the BlogService struct properly implements the domain.BlogService interface.
var _ domain.BlogService = &BlogService{}

// Publish runs validations needed for creating new Blog database records.
func (bv *blogValidator) Publish(ctx context.Context, actor *domain.User, fields domain.BlogFields) (*domain.BlogResponse, error) {
	blog := domain.Blog{
		Title:    fields.Title,
		Content:  fields.Content,
		ImageURL: fields.ImageURL,
		AuthorID: actor.ID,
	}
	err := runBlogValFns(&blog,
		bv.titleRequired,
		bv.contentRequired)
	if err != nil {
		return nil, err
	}
	return bv.blogGorm.Publish(ctx, &blog)
}

// Update runs validations needed for updating existing Blog database records.
func (bv *blogValidator) Update(ctx context.Context, id int, actor *domain.User, fields domain.BlogFields) (*domain.BlogResponse, error) {
	blog := domain.Blog{
		Title:   fields.Title,
		Content: fields.Content,
	}
	err := runBlogValFns(&blog,
		bv.titleRequired,
		bv.contentRequired)
	if err != nil {
		return nil, err
	}
	return bv.blogGorm.Update(ctx, id, actor, fields)
}

// runBlogValFns runs any number of functions of type blogValFn on the passed in Blog object.
// If none of them returns an error, it returns nil. Otherwise, it returns the respective error.
func runBlogValFns(blog *domain.Blog, fns ...blogValFn) error {
	for _, fn := range fns {
		if err := fn(blog); err != nil {
			return err
		}
	}
	return nil
}

// A blogValFn is any function that takes in a pointer to a domain.Blog object and returns an error.
type blogValFn func(blog *domain.Blog) error

// titleRequired makes sure the blog title is not the empty string.
func (bv *blogValidator) titleRequired(blog *domain.Blog) error {
	if blog.Title == "" {
		return errs.Errorf(errs.EINVALID, "Blog title must not be empty.")
	}
	return nil
}

// contentRequired makes sure the blog content is not the empty string.
func (bv *blogValidator) contentRequired(blog *domain.Blog) error {
	if blog.Content == "" {
		return errs.Errorf(errs.EINVALID, "Blog content must not be empty.")
	}
	return nil
}

// Publish stores the blog and returns its projection. CreatedAt and
// UpdatedAt are both set by the store at insert time.
func (bg *blogGorm) Publish(ctx context.Context, blog *domain.Blog) (*domain.BlogResponse, error) {
	var resp *domain.BlogResponse
	err := bg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(blog).Error; err != nil {
			return err
		}
		var err error
		resp, err = blogResponse(tx, blog.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Update overwrites the author-editable fields of the blog and bumps its
// UpdatedAt. The whole read-check-write runs in one transaction so a
// concurrent update on the same blog is serialized by the store.
func (bg *blogGorm) Update(ctx context.Context, id int, actor *domain.User, fields domain.BlogFields) (*domain.BlogResponse, error) {
	var resp *domain.BlogResponse
	err := bg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blog domain.Blog
		if err := tx.First(&blog, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "Blog not found.")
			}
			return err
		}
		if !policy.CanModifyBlog(actor, &blog) {
			return errs.Errorf(errs.EUNAUTHORIZED, "You are not the author of this blog.")
		}
		blog.Title = fields.Title
		blog.Content = fields.Content
		blog.ImageURL = fields.ImageURL
		if err := tx.Save(&blog).Error; err != nil {
			return err
		}
		var err error
		resp, err = blogResponse(tx, blog.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Delete removes the blog and everything it owns. The comments and likes
// referencing the blog go first, then the blog itself, all in one
// transaction so the cascade either fully commits or not at all.
func (bg *blogGorm) Delete(ctx context.Context, id int, actor *domain.User) error {
	return bg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var blog domain.Blog
		if err := tx.First(&blog, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "Blog not found.")
			}
			return err
		}
		if !policy.CanModifyBlog(actor, &blog) {
			return errs.Errorf(errs.EUNAUTHORIZED, "You are not the author of this blog.")
		}
		if err := tx.Delete(&domain.Comment{}, "blog_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.Like{}, "blog_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&blog).Error
	})
}

// ByID retrieves a single blog projection.
func (bg *blogGorm) ByID(ctx context.Context, id int) (*domain.BlogResponse, error) {
	return blogResponse(bg.db.WithContext(ctx), id)
}

// All retrieves one page of all blogs, ordered by id ascending so page
// boundaries stay stable across requests.
func (bg *blogGorm) All(ctx context.Context, page, size int) (*domain.BlogPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	db := bg.db.WithContext(ctx)

	var total int64
	if err := db.Model(&domain.Blog{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var blogs []domain.Blog
	err := db.
		Preload("Author").
		Order("id asc").
		Offset(page * size).
		Limit(size).
		Find(&blogs).Error
	if err != nil {
		return nil, err
	}

	content := make([]domain.BlogResponse, 0, len(blogs))
	for i := range blogs {
		resp, err := toBlogResponse(db, &blogs[i])
		if err != nil {
			return nil, err
		}
		content = append(content, *resp)
	}
	return &domain.BlogPage{
		Content:       content,
		TotalPages:    int(math.Ceil(float64(total) / float64(size))),
		TotalElements: total,
		Size:          size,
		Number:        page,
	}, nil
}

// ByAuthor retrieves all blogs whose author's username matches exactly.
func (bg *blogGorm) ByAuthor(ctx context.Context, username string) ([]domain.BlogResponse, error) {
	db := bg.db.WithContext(ctx)
	var blogs []domain.Blog
	err := db.
		Joins("JOIN users ON users.id = blogs.author_id").
		Where("users.username = ?", username).
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

// blogResponse loads a blog by id and projects it.
func blogResponse(db *gorm.DB, id int) (*domain.BlogResponse, error) {
	var blog domain.Blog
	err := db.Preload("Author").First(&blog, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.Errorf(errs.ENOTFOUND, "Blog not found.")
		}
		return nil, err
	}
	return toBlogResponse(db, &blog)
}

// toBlogResponse projects a loaded blog, counting its likes and comments.
func toBlogResponse(db *gorm.DB, blog *domain.Blog) (*domain.BlogResponse, error) {
	var likeCount, commentCount int64
	if err := db.Model(&domain.Like{}).Where("blog_id = ?", blog.ID).Count(&likeCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Comment{}).Where("blog_id = ?", blog.ID).Count(&commentCount).Error; err != nil {
		return nil, err
	}
	return &domain.BlogResponse{
		ID:       blog.ID,
		Title:    blog.Title,
		Content:  blog.Content,
		ImageURL: blog.ImageURL,
		Author: domain.Author{
			Username:       blog.Author.Username,
			FullName:       blog.Author.FullName,
			ProfilePicture: blog.Author.ProfilePicture,
		},
		CreatedAt:    blog.CreatedAt,
		UpdatedAt:    blog.UpdatedAt,
		LikeCount:    likeCount,
		CommentCount: commentCount,
	}, nil
}
