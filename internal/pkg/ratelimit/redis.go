package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is a fixed-window limiter whose counters live in Redis, shared by all
// running instances.
type Redis struct {
	client *redis.Client
	limit  int64
	window time.Duration
	prefix string
}

// NewRedis creates a shared limiter allowing limit requests per window.
func NewRedis(client *redis.Client, limit int, window time.Duration) *Redis {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	return &Redis{
		client: client,
		limit:  int64(limit),
		window: window,
		prefix: "ratelimit:",
	}
}

// Allow records a request for key and reports whether it is within the limit.
// INCR and EXPIRE run in one pipeline so the counter and its expiry are set
// together. Fails open when Redis is unreachable.
func (r *Redis) Allow(ctx context.Context, key string) bool {
	fk := r.prefix + key

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, fk)
	pipe.ExpireNX(ctx, fk, r.window)

	if _, err := pipe.Exec(ctx); err != nil {
		slog.ErrorContext(ctx, "rate limiter redis pipeline failed", "key", key, "error", err)
		return true
	}

	return incr.Val() <= r.limit
}
