package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gantavyamalviya/pingpong/domain"
	"github.com/gantavyamalviya/pingpong/errs"
)

func TestCanModifyBlog(t *testing.T) {
	author := &domain.User{ID: 1, Username: "alice"}
	other := &domain.User{ID: 2, Username: "bob"}
	blog := &domain.Blog{ID: 10, AuthorID: 1}

	assert.True(t, CanModifyBlog(author, blog))
	assert.False(t, CanModifyBlog(other, blog))
	assert.False(t, CanModifyBlog(nil, blog))
}

func TestCanModifyComment(t *testing.T) {
	author := &domain.User{ID: 3}
	other := &domain.User{ID: 4}
	comment := &domain.Comment{ID: 20, AuthorID: 3, BlogID: 10}

	assert.True(t, CanModifyComment(author, comment))
	assert.False(t, CanModifyComment(other, comment))
	assert.False(t, CanModifyComment(nil, comment))
}

func TestCanLike(t *testing.T) {
	author := &domain.User{ID: 1}
	other := &domain.User{ID: 2}
	blog := &domain.Blog{ID: 10, AuthorID: 1}

	assert.NoError(t, CanLike(other, blog))
	assert.NoError(t, CanLike(nil, blog))

	err := CanLike(author, blog)
	assert.Error(t, err)
	assert.Equal(t, errs.EFORBIDDEN, errs.ErrorCode(err))
}
