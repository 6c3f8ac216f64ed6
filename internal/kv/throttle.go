// Package kv holds Redis-backed helpers. Every helper degrades to a no-op
// when Redis is not configured.
package kv

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hrmslite/hrms/internal/obs"
)

const loginKeyPrefix = "rl:login:"

// counter is the subset of Redis the throttle needs.
type counter interface {
	incrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	del(ctx context.Context, key string) error
}

type redisCounter struct {
	client *redis.Client
}

func (c redisCounter) incrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	pipe := c.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

func (c redisCounter) del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

// Throttle counts login attempts per key inside a fixed window.
type Throttle struct {
	store  counter
	client *redis.Client
	limit  int64
	window time.Duration
}

// NewThrottle connects to redisURL. An empty URL yields a throttle that allows everything.
func NewThrottle(redisURL string, limit int, window time.Duration) (*Throttle, error) {
	t := &Throttle{limit: int64(limit), window: window}
	if strings.TrimSpace(redisURL) == "" {
		return t, nil
	}
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}
	t.client = redis.NewClient(opt)
	t.store = redisCounter{client: t.client}
	return t, nil
}

// Enabled reports whether attempts are counted.
func (t *Throttle) Enabled() bool { return t.store != nil && t.limit > 0 }

// Allow counts one attempt and reports whether it is within the limit.
// Redis failures are logged and the attempt is allowed.
func (t *Throttle) Allow(ctx context.Context, key string) (bool, error) {
	if !t.Enabled() {
		return true, nil
	}
	n, err := t.store.incrWithTTL(ctx, loginKeyPrefix+key, t.window)
	if err != nil {
		obs.Warn("login_throttle_unavailable", map[string]any{"error": err.Error()})
		return true, nil
	}
	return n <= t.limit, nil
}

// Reset clears the attempt counter after a successful login.
func (t *Throttle) Reset(ctx context.Context, key string) error {
	if !t.Enabled() {
		return nil
	}
	return t.store.del(ctx, loginKeyPrefix+key)
}

// Ping checks the Redis connection when configured.
func (t *Throttle) Ping(ctx context.Context) error {
	if t.client == nil {
		return nil
	}
	return t.client.Ping(ctx).Err()
}

// Close releases the Redis connection pool.
func (t *Throttle) Close() error {
	if t.client == nil {
		return nil
	}
	return t.client.Close()
}
