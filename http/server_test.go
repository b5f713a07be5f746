package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gantavyamalviya/pingpong/auth"
	"github.com/gantavyamalviya/pingpong/crud"
	"github.com/gantavyamalviya/pingpong/domain"
)

// newTestServer wires the full stack against an in-memory sqlite database.
func newTestServer(t *testing.T) *Server {
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

	services, err := crud.NewServices(db,
		crud.WithUser("test-pepper"),
		crud.WithBlog(),
		crud.WithComment(),
		crud.WithLike(),
		crud.WithFollow(),
	)
	require.NoError(t, err)

	jwt := auth.NewJWTManager("test-secret", "pingpong-test", time.Hour)
	return NewServer(services, jwt)
}

// do performs a json request against the server, with an optional bearer token.
func do(t *testing.T, s *Server, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, r)
	return w
}

// signup registers a user through the api and returns their bearer token.
func signup(t *testing.T, s *Server, username string) string {
	t.Helper()
	w := do(t, s, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "long enough",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp tokenResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func TestSignupAndLogin(t *testing.T) {
	s := newTestServer(t)
	signup(t, s, "alice")

	w := do(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "long enough",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong password",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPublishRequiresAuth(t *testing.T) {
	s := newTestServer(t)

	w := do(t, s, http.MethodPost, "/api/blogs", "", map[string]string{
		"title": "No token", "content": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(t, s, http.MethodPost, "/api/blogs", "garbage-token", map[string]string{
		"title": "Bad token", "content": "nope",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBlogLifecycle(t *testing.T) {
	s := newTestServer(t)
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")

	w := do(t, s, http.MethodPost, "/api/blogs", alice, map[string]string{
		"title": "First post", "content": "hello world",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var blog domain.BlogResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&blog))
	assert.Equal(t, "alice", blog.Author.Username)

	// Anyone may read it.
	w = do(t, s, http.MethodGet, fmt.Sprintf("/api/blogs/%d", blog.ID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Only the author may change it.
	w = do(t, s, http.MethodPut, fmt.Sprintf("/api/blogs/%d", blog.ID), bob, map[string]string{
		"title": "Hijacked", "content": "mine now",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, http.MethodPut, fmt.Sprintf("/api/blogs/%d", blog.ID), alice, map[string]string{
		"title": "First post, revised", "content": "hello again",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodDelete, fmt.Sprintf("/api/blogs/%d", blog.ID), bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, http.MethodDelete, fmt.Sprintf("/api/blogs/%d", blog.ID), alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, fmt.Sprintf("/api/blogs/%d", blog.ID), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLikeFlow(t *testing.T) {
	s := newTestServer(t)
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")

	w := do(t, s, http.MethodPost, "/api/blogs", alice, map[string]string{
		"title": "Likeable", "content": "like me",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var blog domain.BlogResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&blog))

	// Liking your own post is off the table.
	w = do(t, s, http.MethodPost, fmt.Sprintf("/api/blogs/%d/like", blog.ID), alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Double-liking counts once.
	w = do(t, s, http.MethodPost, fmt.Sprintf("/api/blogs/%d/like", blog.ID), bob, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = do(t, s, http.MethodPost, fmt.Sprintf("/api/blogs/%d/like", blog.ID), bob, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, fmt.Sprintf("/api/blogs/%d/likes", blog.ID), bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var likes likesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&likes))
	assert.Equal(t, int64(1), likes.Count)
	assert.True(t, likes.LikedByMe)

	w = do(t, s, http.MethodDelete, fmt.Sprintf("/api/blogs/%d/like", blog.ID), bob, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, fmt.Sprintf("/api/blogs/%d/likes", blog.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	likes = likesResponse{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&likes))
	assert.Equal(t, int64(0), likes.Count)
	assert.False(t, likes.LikedByMe)
}

func TestFollowFlow(t *testing.T) {
	s := newTestServer(t)
	alice := signup(t, s, "alice")
	signup(t, s, "bob")

	w := do(t, s, http.MethodPost, "/api/users/bob/follow", alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, "/api/users/bob/is-following", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var following isFollowingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&following))
	assert.True(t, following.IsFollowing)

	w = do(t, s, http.MethodGet, "/api/users/bob/followers", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var followers []domain.PublicProfile
	require.NoError(t, json.NewDecoder(w.Body).Decode(&followers))
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	w = do(t, s, http.MethodPost, "/api/users/ghost/follow", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCommentFlow(t *testing.T) {
	s := newTestServer(t)
	alice := signup(t, s, "alice")
	bob := signup(t, s, "bob")

	w := do(t, s, http.MethodPost, "/api/blogs", alice, map[string]string{
		"title": "Discuss", "content": "thoughts?",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var blog domain.BlogResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&blog))

	w = do(t, s, http.MethodPost, fmt.Sprintf("/api/blogs/%d/comments", blog.ID), bob, map[string]string{
		"content": "great post",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var comment domain.CommentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&comment))
	assert.Equal(t, "bob", comment.AuthorUsername)

	// Alice did not write the comment, so she may not delete it.
	w = do(t, s, http.MethodDelete, fmt.Sprintf("/api/blogs/%d/comments/%d", blog.ID, comment.ID), alice, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(t, s, http.MethodDelete, fmt.Sprintf("/api/blogs/%d/comments/%d", blog.ID, comment.ID), bob, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(t, s, http.MethodGet, fmt.Sprintf("/api/blogs/%d/comments", blog.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var comments []domain.CommentResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&comments))
	assert.Empty(t, comments)
}

func TestProfile(t *testing.T) {
	s := newTestServer(t)
	alice := signup(t, s, "alice")

	w := do(t, s, http.MethodPut, "/api/profile", alice, map[string]string{
		"full_name":       "Alice Prime",
		"bio":             "writes things",
		"profile_picture": "https://img.example.com/alice.png",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, s, http.MethodGet, "/api/users/alice/profile", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var profile profileResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&profile))
	assert.Equal(t, "Alice Prime", profile.FullName)
	assert.Equal(t, int64(0), profile.FollowerCount)
}
