package jwt

import (
	"testing"

	"github.com/auralink/auralink-backend/internal/apperrors"
	"github.com/auralink/auralink-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manager() *JWTManager {
	return NewJWTManager(&config.Config{JWTSecretKey: "test-secret"})
}

func TestGenerateAndValidateTokenPair(t *testing.T) {
	m := manager()

	access, refresh, err := m.GenerateTokenPair("acct-1", "alice", "STAFF", false)
	require.NoError(t, err)
	assert.NotEqual(t, access, refresh)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, "acct-1", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "STAFF", claims.Kind)
	assert.False(t, claims.Elevated)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := manager()
	other := NewJWTManager(&config.Config{JWTSecretKey: "other-secret"})

	access, _, err := m.GenerateTokenPair("acct-1", "alice", "REGULAR", false)
	require.NoError(t, err)

	_, err = other.ValidateToken(access)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	_, err := manager().ValidateToken("not-a-token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}

func TestRefreshAccessToken(t *testing.T) {
	m := manager()

	_, refresh, err := m.GenerateTokenPair("acct-1", "alice", "ADMIN", true)
	require.NoError(t, err)

	access, err := m.RefreshAccessToken(refresh)
	require.NoError(t, err)

	claims, err := m.ValidateToken(access)
	require.NoError(t, err)
	assert.True(t, claims.Elevated)
}

func TestNewJWTManagerRequiresSecret(t *testing.T) {
	assert.Nil(t, NewJWTManager(&config.Config{}))
}
