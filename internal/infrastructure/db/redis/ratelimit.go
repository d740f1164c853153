package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxAttempts = 5
	defaultWindow      = 15 * time.Minute
)

// LoginLimiter counts failed login attempts per identity in Redis.
// Key format: login_attempts:<identity>
type LoginLimiter struct {
	client *redis.Client
	max    int
	window time.Duration
}

// NewLoginLimiter creates a LoginLimiter wrapping the given Redis client.
func NewLoginLimiter(client *redis.Client, max int, window time.Duration) *LoginLimiter {
	if max <= 0 {
		max = defaultMaxAttempts
	}
	if window <= 0 {
		window = defaultWindow
	}
	return &LoginLimiter{client: client, max: max, window: window}
}

// TooMany reports whether the identity has exhausted its attempt budget for
// the current window.
func (l *LoginLimiter) TooMany(ctx context.Context, identity string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(identity)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("limiter check: %w", err)
	}
	return n >= l.max, nil
}

// RecordFailure increments the attempt counter, starting the expiry window
// on the first failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, identity string) error {
	key := l.key(identity)
	n, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return fmt.Errorf("limiter incr: %w", err)
	}
	if n == 1 {
		if err := l.client.Expire(ctx, key, l.window).Err(); err != nil {
			return fmt.Errorf("limiter expire: %w", err)
		}
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, identity string) error {
	return l.client.Del(ctx, l.key(identity)).Err()
}

func (l *LoginLimiter) key(identity string) string {
	return fmt.Sprintf("login_attempts:%s", identity)
}
