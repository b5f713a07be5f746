package crud

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
	"github.com/gantavyamalviya/pingpong/policy"
)

// CommentService manages comments on blogs.
// It implements the domain.CommentService interface.
type CommentService struct {
	commentValidator
}

// commentValidator runs validations on incoming Comment data.
// On success, it passes the data on to commentGorm.
type commentValidator struct {
	commentGorm
}

// commentGorm runs CRUD operations on the database using incoming Comment data.
type commentGorm struct {
	db *gorm.DB
}

// NewCommentService returns an instance of CommentService.
func NewCommentService(db *gorm.DB) *CommentService {
	return &CommentService{
		commentValidator{
			commentGorm{
				db: db,
			},
		},
	}
}

// Ensure the CommentService struct properly implements the domain.CommentService interface.
var _ domain.CommentService = &CommentService{}

// Add runs validations needed for creating new Comment database records.
func (cv *commentValidator) Add(ctx context.Context, blogID int, actor *domain.User, content string) (*domain.CommentResponse, error) {
	comment := domain.Comment{
		Content:  content,
		AuthorID: actor.ID,
		BlogID:   blogID,
	}
	err := runCommentValFns(&comment, cv.contentRequired)
	if err != nil {
		return nil, err
	}
	return cv.commentGorm.Add(ctx, blogID, actor, content)
}

// runCommentValFns runs any number of functions of type commentValFn on the passed in Comment object.
func runCommentValFns(comment *domain.Comment, fns ...commentValFn) error {
	for _, fn := range fns {
		if err := fn(comment); err != nil {
			return err
		}
	}
	return nil
}

// A commentValFn is any function that takes in a pointer to a domain.Comment object and returns an error.
type commentValFn func(comment *domain.Comment) error

// contentRequired makes sure the comment content is not the empty string.
func (cv *commentValidator) contentRequired(comment *domain.Comment) error {
	if comment.Content == "" {
		return errs.Errorf(errs.EINVALID, "Comment content must not be empty.")
	}
	return nil
}

// Add stores a comment on the blog, owned by the actor. The blog
// existence check and the insert share a transaction.
func (cg *commentGorm) Add(ctx context.Context, blogID int, actor *domain.User, content string) (*domain.CommentResponse, error) {
	comment := domain.Comment{
		Content:  content,
		AuthorID: actor.ID,
		BlogID:   blogID,
	}
	err := cg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&domain.Blog{}, "id = ?", blogID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "Blog not found.")
			}
			return err
		}
		return tx.Create(&comment).Error
	})
	if err != nil {
		return nil, err
	}
	return &domain.CommentResponse{
		ID:             comment.ID,
		Content:        comment.Content,
		AuthorUsername: actor.Username,
		CreatedAt:      comment.CreatedAt,
		BlogID:         comment.BlogID,
	}, nil
}

// Delete removes the comment if the actor is its author. Non-authors get
// a typed authorization error, never a silent failure.
func (cg *commentGorm) Delete(ctx context.Context, commentID int, actor *domain.User) error {
	return cg.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment domain.Comment
		if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errs.Errorf(errs.ENOTFOUND, "Comment not found.")
			}
			return err
		}
		if !policy.CanModifyComment(actor, &comment) {
			return errs.Errorf(errs.EUNAUTHORIZED, "You are not the author of this comment.")
		}
		return tx.Delete(&comment).Error
	})
}

// ByBlog retrieves the comments of a blog in creation order.
func (cg *commentGorm) ByBlog(ctx context.Context, blogID int) ([]domain.CommentResponse, error) {
	var comments []domain.Comment
	err := cg.db.WithContext(ctx).
		Where("blog_id = ?", blogID).
		Preload("Author").
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	responses := make([]domain.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, domain.CommentResponse{
			ID:             c.ID,
			Content:        c.Content,
			AuthorUsername: c.Author.Username,
			CreatedAt:      c.CreatedAt,
			BlogID:         c.BlogID,
		})
	}
	return responses, nil
}

// ByAuthor retrieves all comments the actor has written, newest last.
func (cg *commentGorm) ByAuthor(ctx context.Context, actor *domain.User) ([]domain.CommentResponse, error) {
	var comments []domain.Comment
	err := cg.db.WithContext(ctx).
		Where("author_id = ?", actor.ID).
		Order("id asc").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	responses := make([]domain.CommentResponse, 0, len(comments))
	for _, c := range comments {
		responses = append(responses, domain.CommentResponse{
			ID:             c.ID,
			Content:        c.Content,
			AuthorUsername: actor.Username,
			CreatedAt:      c.CreatedAt,
			BlogID:         c.BlogID,
		})
	}
	return responses, nil
}
