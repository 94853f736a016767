package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LoginLimiter bounds login attempts per client over a fixed window. The
// password hash is the expensive part of a login, so this is the unit of
// backpressure in front of the authentication service.
// Key format: login_attempts:<key>
type LoginLimiter struct {
	client *redis.Client
	max    int64
	window time.Duration
}

// NewLoginLimiter creates a limiter allowing max attempts per window.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &LoginLimiter{client: client, max: int64(max), window: window}
}

// Allow records one attempt for key and reports whether it is still within
// budget. The window starts at the first attempt and is not sliding.
func (l *LoginLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := fmt.Sprintf("login_attempts:%s", key)

	n, err := l.client.Incr(ctx, k).Result()
	if err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, k, l.window).Err(); err != nil {
			return false, fmt.Errorf("rate limit expire: %w", err)
		}
	}
	return n <= l.max, nil
}
