package auth

import (
	"context"
	"time"

	"warehouse-platform/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// Throttle bounds login attempts per identity.
type Throttle interface {
	// Allow records one attempt and reports whether it is within budget.
	Allow(ctx context.Context, identity string) (bool, error)
	// Reset clears the budget, typically after a successful login.
	Reset(ctx context.Context, identity string) error
}

// RedisThrottle counts attempts in Redis with an atomic windowed counter.
type RedisThrottle struct {
	rdb    *redis.Client
	limit  int
	window time.Duration
}

func NewRedisThrottle(rdb *redis.Client, limit int, window time.Duration) *RedisThrottle {
	return &RedisThrottle{rdb: rdb, limit: limit, window: window}
}

func (t *RedisThrottle) Allow(ctx context.Context, identity string) (bool, error) {
	return utils.CountAttempt(ctx, t.rdb, "login_attempts:"+identity, t.limit, t.window)
}

func (t *RedisThrottle) Reset(ctx context.Context, identity string) error {
	return utils.ResetAttempts(ctx, t.rdb, "login_attempts:"+identity)
}
