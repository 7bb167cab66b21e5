package utils

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndParseJWT(t *testing.T) {
	token, claims, err := GenerateJWT(42, "secret", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, claims.ID)

	parsed, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, uint(42), parsed.UserID)
	assert.Equal(t, claims.ID, parsed.ID)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, _, err := GenerateJWT(1, "secret", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "other")
	require.Error(t, err)
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	token, _, err := GenerateJWT(1, "secret", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "secret")
	require.Error(t, err)
}

func TestNilCacheIsAlwaysEmpty(t *testing.T) {
	ctx := context.Background()
	require.NoError(t, SetCache(ctx, nil, "k", 1, time.Minute))

	var v int
	found, err := GetCache(ctx, nil, "k", &v)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, DeleteCache(ctx, nil, "k"))
	revoked, err := IsTokenRevoked(ctx, nil, &Claims{})
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestWalletKey(t *testing.T) {
	assert.Equal(t, "wallet:user:7", WalletKey(7))
}
