// Package policy holds the pure authorization decisions of the app.
// Nothing in here touches the database, so every rule can be tested with
// plain structs.
package policy

import (
	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
)

// CanModifyBlog reports whether the actor may update or delete the blog.
// Only the author may.
func CanModifyBlog(actor *domain.User, blog *domain.Blog) bool {
	return actor != nil && actor.ID == blog.AuthorID
}

// CanModifyComment reports whether the actor may delete the comment.
// Only the author may.
func CanModifyComment(actor *domain.User, comment *domain.Comment) bool {
	return actor != nil && actor.ID == comment.AuthorID
}

// CanLike decides whether the actor may like the blog. Authors cannot
// like their own blogs.
func CanLike(actor *domain.User, blog *domain.Blog) error {
	if actor != nil && actor.ID == blog.AuthorID {
		return errs.Errorf(errs.EFORBIDDEN, "You cannot like your own post.")
	}
	return nil
}
