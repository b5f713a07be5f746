package crud

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gantavyamalviya/pingpong/domain"
)

// newTestDB opens a fresh in-memory sqlite database, migrated and scoped
// to the calling test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		domain.User{},
		domain.Blog{},
		domain.Comment{},
		domain.Like{},
		domain.Follow{},
	))
	return db
}

// seedUser creates a user directly in the store, bypassing registration.
func seedUser(t *testing.T, db *gorm.DB, username string) *domain.User {
	t.Helper()
	user := domain.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "not-a-real-hash",
		FullName:     "The " + username,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

// seedBlog publishes a blog through the service and returns its projection.
func seedBlog(t *testing.T, bs *BlogService, author *domain.User, title string) *domain.BlogResponse {
	t.Helper()
	blog, err := bs.Publish(context.Background(), author, domain.BlogFields{
		Title:   title,
		Content: "content of " + title,
	})
	require.NoError(t, err)
	return blog
}
