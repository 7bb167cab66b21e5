package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key formatting
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys shared by handlers that read and invalidate them
const (
	ProductsKey = "shop:products:available" // Public catalog
	SettingsKey = "shop:settings"           // Store branding
)

// WalletKey is the cache key holding a user's last known wallet view
func WalletKey(userID uint) string {
	return "wallet:user:" + strconv.FormatUint(uint64(userID), 10)
}

// revokedKey is the key marking a session token as logged out
func revokedKey(tokenID string) string {
	return "session:revoked:" + tokenID
}

// GetCache retrieves a value from Redis and unmarshals it into dest.
// A nil client behaves as an always-empty cache.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil // Caching disabled
	}
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil // Caching disabled
	}
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes keys from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, keys ...string) error {
	if rdb == nil || len(keys) == 0 {
		return nil // Nothing to invalidate
	}
	return rdb.Del(ctx, keys...).Err() // Delete keys from Redis
}

// RevokeToken marks a session token as logged out until it would have expired
func RevokeToken(ctx context.Context, rdb *redis.Client, claims *Claims) error {
	if rdb == nil || claims == nil || claims.ExpiresAt == nil {
		return nil // Nothing to track
	}
	ttl := time.Until(claims.ExpiresAt.Time) // Remaining token lifetime
	if ttl <= 0 {
		return nil // Already expired
	}
	return rdb.Set(ctx, revokedKey(claims.ID), "1", ttl).Err()
}

// IsTokenRevoked reports whether a session token was logged out
func IsTokenRevoked(ctx context.Context, rdb *redis.Client, claims *Claims) (bool, error) {
	if rdb == nil || claims == nil {
		return false, nil // Revocation disabled
	}
	n, err := rdb.Exists(ctx, revokedKey(claims.ID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
