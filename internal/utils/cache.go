package utils

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis-backed response cache helpers. All helpers tolerate a nil client
// so the server (and tests) can run without redis; every call is then a
// cache miss.

// GetCache retrieves a value from redis and unmarshals it into dest.
// The first return reports whether the key was present.
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	if rdb == nil {
		return false, nil
	}
	val, err := rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	} else if err != nil {
		return false, err
	}
	return true, json.Unmarshal([]byte(val), dest)
}

// SetCache stores a JSON-marshaled value with a TTL.
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// DeleteCache removes a key.
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	if rdb == nil {
		return nil
	}
	return rdb.Del(ctx, key).Err()
}

// WalletCacheKey is the cache key for a user's wallet view.
func WalletCacheKey(userID string) string {
	return "wallet:user:" + userID
}

// TxHistoryCacheKey is the cache key for a wallet's transaction history.
func TxHistoryCacheKey(walletID string) string {
	return "txhistory:wallet:" + walletID
}
