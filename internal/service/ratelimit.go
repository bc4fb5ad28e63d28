package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndSetRateLimit returns false when the identity already performed the
// action within the limit window. A nil client disables throttling.
func CheckAndSetRateLimit(ctx context.Context, rdb *redis.Client, identity, action string, limit time.Duration) (bool, error) {
	if rdb == nil || limit <= 0 {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:%s:%s", action, identity)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// ClearRateLimit drops the window early, e.g. after a successful login.
func ClearRateLimit(ctx context.Context, rdb *redis.Client, identity, action string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:%s:%s", action, identity)
	_, err := rdb.Del(ctx, key).Result()
	return err
}
