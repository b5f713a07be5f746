package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", "pingpong", time.Hour)

	token, err := m.Generate(42, "alice")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.Validate(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("test-secret", "pingpong", -time.Minute)

	token, err := m.Generate(1, "bob")
	assert.NoError(t, err)

	_, err = m.Validate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTWrongSecret(t *testing.T) {
	issued := NewJWTManager("secret-one", "pingpong", time.Hour)
	verifier := NewJWTManager("secret-two", "pingpong", time.Hour)

	token, err := issued.Generate(1, "carol")
	assert.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
