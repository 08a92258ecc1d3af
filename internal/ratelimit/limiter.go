// Package ratelimit provides a Redis-backed fixed-window request limiter,
// used to keep anonymous search traffic from overwhelming the ranker.
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Limiter struct {
	redis  *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewLimiter(redisClient *redis.Client, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{
		redis:  redisClient,
		prefix: prefix,
		limit:  limit,
		window: window,
	}
}

// Allow reports whether the caller identified by key may make another request
// in the current window. The counter key expires with the window, so idle
// callers cost nothing.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, error) {
	windowKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, time.Now().Unix()/int64(l.window.Seconds()))

	count, err := l.redis.Incr(ctx, windowKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}
	if count == 1 {
		if err = l.redis.Expire(ctx, windowKey, l.window).Err(); err != nil {
			return false, fmt.Errorf("failed to set rate limit expiry: %w", err)
		}
	}

	return count <= int64(l.limit), nil
}
