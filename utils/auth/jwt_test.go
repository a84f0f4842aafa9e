package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateSessionToken(t *testing.T) {
	manager := NewJWTManager(JWTConfig{Secret: "test-secret", Issuer: "institute-site"})
	assert.Equal(t, 7*24*time.Hour, manager.Expiry())

	token, jti, err := manager.GenerateSessionToken("admin-1", "owner", "ADMIN")
	require.NoError(t, err)
	require.NotEmpty(t, jti)

	claims, err := manager.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", claims.AdminID)
	assert.Equal(t, "owner", claims.Username)
	assert.Equal(t, "ADMIN", claims.Role)
	assert.Equal(t, jti, claims.ID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	issuer := NewJWTManager(JWTConfig{Secret: "one"})
	verifier := NewJWTManager(JWTConfig{Secret: "two"})

	token, _, err := issuer.GenerateSessionToken("admin-1", "owner", "ADMIN")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateTokenExpired(t *testing.T) {
	manager := NewJWTManager(JWTConfig{Secret: "s", Expiry: time.Nanosecond})

	token, _, err := manager.GenerateSessionToken("admin-1", "owner", "ADMIN")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestMissingSecret(t *testing.T) {
	manager := NewJWTManager(JWTConfig{})

	_, _, err := manager.GenerateSessionToken("admin-1", "owner", "ADMIN")
	assert.ErrorIs(t, err, ErrMissingSecret)

	_, err = manager.ValidateToken("anything")
	assert.ErrorIs(t, err, ErrMissingSecret)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPasswordWithCost("long-enough", 4)
	require.NoError(t, err)

	assert.NoError(t, VerifyPassword(hash, "long-enough"))
	assert.ErrorIs(t, VerifyPassword(hash, "wrong-guess"), ErrPasswordMismatch)

	_, err = HashPassword("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}
