package auth

import (
	"encoding/hex"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resonateapp/resonate-server/internal/domain"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword(hash, "correct horse battery staple")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "wrong password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	_, err := HashPassword("")
	assert.Error(t, err)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	ok, err := VerifyPassword("not-a-hash", "password")
	require.NoError(t, err)
	assert.False(t, ok)
}

func testKeyHex(t *testing.T) string {
	t.Helper()
	return hex.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
}

func TestTokenServiceRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testKeyHex(t), time.Hour)
	require.NoError(t, err)

	user := &domain.User{
		ID:    "usr_abc123",
		Email: "ada@example.com",
		Role:  domain.RoleArtist,
	}

	token, err := svc.GenerateAccessToken(user)
	require.NoError(t, err)

	claims, err := svc.VerifyAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "usr_abc123", claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, domain.RoleArtist, claims.Role)
	assert.Equal(t, "usr_abc123", claims.Subject)
}

func TestTokenServiceRejectsExpired(t *testing.T) {
	svc, err := NewTokenService(testKeyHex(t), -time.Minute)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "usr_abc123"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token)
	assert.Error(t, err)
}

func TestTokenServiceRejectsTampered(t *testing.T) {
	svc, err := NewTokenService(testKeyHex(t), time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateAccessToken(&domain.User{ID: "usr_abc123"})
	require.NoError(t, err)

	_, err = svc.VerifyAccessToken(token[:len(token)-4] + "AAAA")
	assert.Error(t, err)
}

func TestNewTokenServiceRejectsBadKey(t *testing.T) {
	_, err := NewTokenService("short", time.Hour)
	assert.Error(t, err)
}

func TestLoadOrGenerateKey(t *testing.T) {
	dir := t.TempDir()

	first, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Len(t, first, 64)

	// Second call must load the same key, not mint a new one.
	second, err := LoadOrGenerateKey(dir)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
