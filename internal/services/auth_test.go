package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostmaster/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	auth := NewAuthService()

	hashed, err := auth.HashPassword("admin123")
	require.NoError(t, err)
	require.NotEqual(t, "admin123", hashed)

	assert.True(t, auth.CheckPassword(hashed, "admin123"))
	assert.False(t, auth.CheckPassword(hashed, "wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuthService()
	user := &models.User{ID: 7, Username: "admin"}

	token, err := auth.GenerateToken(user)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, "hostmaster", claims.Issuer)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth := NewAuthService()

	_, err := auth.ValidateToken("not-a-token")
	assert.Error(t, err)
}
