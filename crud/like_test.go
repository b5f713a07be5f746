package crud

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gantavyamalviya/pingpong/errs"
)

func TestLikeAndCount(t *testing.T) {
	db := newTestDB(t)
	bs := NewBlogService(db)
	ls := NewLikeService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	blog := seedBlog(t, bs, alice, "Likeable")

	require.NoError(t, ls.Like(context.Background(), blog.ID, bob))

	count, err := ls.Count(context.Background(), blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	liked, err := ls.IsLikedBy(context.Background(), blog.ID, bob)
	require.NoError(t, err)
	assert.True(t, liked)

	liked, err = ls.IsLikedBy(context.Background(), blog.ID, alice)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	bs := NewBlogService(db)
	ls := NewLikeService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	blog := seedBlog(t, bs, alice, "Liked twice")

	require.NoError(t, ls.Like(context.Background(), blog.ID, bob))
	require.NoError(t, ls.Like(context.Background(), blog.ID, bob))

	count, err := ls.Count(context.Background(), blog.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestLikeOwnBlogForbidden(t *testing.T) {
	db := newTestDB(t)
	bs := NewBlogService(db)
	ls := NewLikeService(db)
	alice := seedUser(t, db, "alice")
	blog := seedBlog(t, bs, alice, "Self-love")

	err := ls.Like(context.Background(), blog.ID, alice)
	assert.Equal(t, errs.EFORBIDDEN, errs.ErrorCode(err))

	count, err := ls.Count(context.Background(), blog.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikeMissingBlog(t *testing.T) {
	db := newTestDB(t)
	ls := NewLikeService(db)
	bob := seedUser(t, db, "bob")

	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(ls.Like(context.Background(), 9999, bob)))
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(ls.Unlike(context.Background(), 9999, bob)))

	_, err := ls.Count(context.Background(), 9999)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))

	_, err = ls.IsLikedBy(context.Background(), 9999, bob)
	assert.Equal(t, errs.ENOTFOUND, errs.ErrorCode(err))
}

func TestUnlikeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	bs := NewBlogService(db)
	ls := NewLikeService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	blog := seedBlog(t, bs, alice, "Unliked")

	// Unliking a never-liked blog is fine and changes nothing.
	require.NoError(t, ls.Unlike(context.Background(), blog.ID, bob))
	count, err := ls.Count(context.Background(), blog.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.NoError(t, ls.Like(context.Background(), blog.ID, bob))
	require.NoError(t, ls.Unlike(context.Background(), blog.ID, bob))
	require.NoError(t, ls.Unlike(context.Background(), blog.ID, bob))

	count, err = ls.Count(context.Background(), blog.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestLikedBlogs(t *testing.T) {
	db := newTestDB(t)
	bs := NewBlogService(db)
	ls := NewLikeService(db)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	first := seedBlog(t, bs, alice, "First")
	seedBlog(t, bs, alice, "Second")

	require.NoError(t, ls.Like(context.Background(), first.ID, bob))

	liked, err := ls.LikedBlogs(context.Background(), bob)
	require.NoError(t, err)
	require.Len(t, liked, 1)
	assert.Equal(t, "First", liked[0].Title)
	assert.Equal(t, int64(1), liked[0].LikeCount)
}
