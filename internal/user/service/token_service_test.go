package service_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atulsm/user-service/internal/user/service"
)

func TestNewTokenService(t *testing.T) {
	ts := service.NewTokenService("test-secret", 60)
	assert.Equal(t, "test-secret", ts.Secret)
	assert.Equal(t, time.Hour, ts.TokenExpiry)
}

func TestTokenService_GenerateAndVerify(t *testing.T) {
	ts := service.NewTokenService("test-secret", 60)

	token, expiresAt, err := ts.Generate("u1", "ada@example.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := ts.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.WithinDuration(t, expiresAt, claims.ExpiresAt.Time, time.Second)
}

func TestTokenService_VerifyAccessToken_WrongSecret(t *testing.T) {
	token, _, err := service.NewTokenService("test-secret", 60).Generate("u1", "ada@example.com")
	require.NoError(t, err)

	_, err = service.NewTokenService("other-secret", 60).VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenService_VerifyAccessToken_Expired(t *testing.T) {
	ts := service.NewTokenService("test-secret", -1)

	token, _, err := ts.Generate("u1", "ada@example.com")
	require.NoError(t, err)

	_, err = ts.VerifyAccessToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTokenService_VerifyAccessToken_Garbage(t *testing.T) {
	_, err := service.NewTokenService("test-secret", 60).VerifyAccessToken("not-a-jwt")
	assert.Error(t, err)
}
