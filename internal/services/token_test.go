package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillalign/resume-matcher/internal/models"
)

func TestToken_RoundTrip(t *testing.T) {
	ts := NewTokenService("test-secret", time.Hour)

	user := &models.User{
		ID:   uuid.New(),
		Role: models.RoleHR,
	}

	token, err := ts.GenerateToken(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ts.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleHR, claims.Role)
}

func TestToken_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, err := issuer.GenerateToken(&models.User{ID: uuid.New(), Role: models.RoleSeeker})
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	assert.Error(t, err)
}

func TestToken_ExpiredRejected(t *testing.T) {
	ts := NewTokenService("test-secret", -time.Hour)

	token, err := ts.GenerateToken(&models.User{ID: uuid.New(), Role: models.RoleHR})
	require.NoError(t, err)

	_, err = ts.ParseToken(token)
	assert.Error(t, err)
}

func TestToken_GarbageRejected(t *testing.T) {
	ts := NewTokenService("test-secret", time.Hour)

	_, err := ts.ParseToken("not.a.token")
	assert.Error(t, err)
}
