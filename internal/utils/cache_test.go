package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestCacheRoundTrip(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()

	var wallet float64
	found, err := GetCache(ctx, rdb, WalletKey(7), &wallet)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, SetCache(ctx, rdb, WalletKey(7), 12.5, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("wallet:user:7"))
	found, err = GetCache(ctx, rdb, WalletKey(7), &wallet)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 12.5, wallet)

	require.NoError(t, DeleteCache(ctx, rdb, WalletKey(7), ProductsKey))
	assert.False(t, mr.Exists("wallet:user:7"))


	require.NoError(t, SetCache(ctx, rdb, SettingsKey, "x", time.Second))
	mr.FastForward(2 * time.Second)
	assert.False(t, mr.Exists(SettingsKey))
}

func TestCacheWithoutClient(t *testing.T) {
	ctx := context.Background()
	var v string
	found, err := GetCache(ctx, nil, ProductsKey, &v)
	require.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, SetCache(ctx, nil, ProductsKey, "x", time.Minute))
	assert.NoError(t, DeleteCache(ctx, nil, ProductsKey))

	revoked, err := IsTokenRevoked(ctx, nil, &Claims{})
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRevokeTokenExpiresWithToken(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	_, claims, err := GenerateJWT(3, "secret", time.Hour)
	require.NoError(t, err)

	revoked, err := IsTokenRevoked(ctx, rdb, claims)
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, RevokeToken(ctx, rdb, claims))
	revoked, err = IsTokenRevoked(ctx, rdb, claims)
	require.NoError(t, err)
	assert.True(t, revoked)
	ttl := mr.TTL("session:revoked:" + claims.ID)
	assert.True(t, ttl > 0 && ttl <= time.Hour, ttl)

	mr.FastForward(time.Hour + time.Second)
	revoked, err = IsTokenRevoked(ctx, rdb, claims)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestCacheSurfacesRedisErrors(t *testing.T) {
	mr, rdb := newRedis(t)
	mr.SetError("LOADING")
	var v string
	_, err := GetCache(context.Background(), rdb, ProductsKey, &v)
	assert.Error(t, err)
}
