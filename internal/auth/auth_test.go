package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)
	userID := uuid.New()

	token, err := m.GenerateAccessToken(userID, "alice@example.com")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "alice@example.com", claims.Email)
}

func TestJWTTokenTypeConfusion(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)
	userID := uuid.New()

	refresh, _, err := m.GenerateRefreshToken(userID)
	require.NoError(t, err)

	// A refresh token is never a valid access token and vice versa.
	_, err = m.ValidateAccessToken(refresh)
	require.ErrorIs(t, err, ErrInvalidToken)

	access, err := m.GenerateAccessToken(userID, "")
	require.NoError(t, err)
	_, err = m.ValidateRefreshToken(access)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTWrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)
	other := NewJWTManager("other-secret", time.Minute, time.Hour)

	token, err := m.GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	require.NotEqual(t, "Sup3rSecret", hash)

	require.NoError(t, VerifyPassword("Sup3rSecret", hash))
	require.ErrorIs(t, VerifyPassword("wrong-password", hash), ErrPasswordMismatch)
}

func TestPasswordTooShort(t *testing.T) {
	_, err := HashPassword("short")
	require.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestHashTokenDeterministic(t *testing.T) {
	require.Equal(t, HashToken("a-token"), HashToken("a-token"))
	require.NotEqual(t, HashToken("a-token"), HashToken("another"))
	require.Len(t, HashToken("a-token"), 64)
}
