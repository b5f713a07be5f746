package domain

import (
	"context"
	"time"
)

// User is an account on the platform. The follower/following relation is
// not embedded here; it lives in the follows table as directed edges
// (see Follow), which avoids a cyclic object graph between users.
type User struct {
	ID             int    `json:"id"`
	Username       string `json:"username" gorm:"uniqueIndex;not null"`
	Email          string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash   string `json:"-" gorm:"not null"`
	FullName       string `json:"full_name"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublicProfile is the read-only shape of a user shown to other users.
type PublicProfile struct {
	Username       string `json:"username"`
	FullName       string `json:"full_name"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
}

// PublicProfile projects the user into its public shape.
func (u *User) PublicProfile() PublicProfile {
	return PublicProfile{
		Username:       u.Username,
		FullName:       u.FullName,
		Bio:            u.Bio,
		ProfilePicture: u.ProfilePicture,
	}
}

// ProfileUpdate carries the only user fields a profile update may touch.
type ProfileUpdate struct {
	FullName       string `json:"full_name"`
	Bio            string `json:"bio"`
	ProfilePicture string `json:"profile_picture"`
}

// UserService is a set of methods to manage User records and credentials.
type UserService interface {
	Register(ctx context.Context, user *User, password string) error
	Authenticate(ctx context.Context, email, password string) (*User, error)
	ByID(ctx context.Context, id int) (*User, error)
	ByUsername(ctx context.Context, username string) (*User, error)
	UpdateProfile(ctx context.Context, actor *User, upd ProfileUpdate) (*User, error)
}
