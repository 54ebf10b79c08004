// Package ratelimit bounds request volume per origin key (typically the caller
// network address) using a fixed window counter.
//
// Limiting is advisory abuse mitigation, not a security boundary on its own;
// callers pair it with uniform responses so that being limited leaks nothing
// about account existence.
package ratelimit

import "context"

// Limiter answers whether one more request from the origin key is allowed
// inside the current window.
type Limiter interface {
	// Allow records a request for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) bool
}

const (
	// DriverRedis selects the shared Redis-backed limiter.
	DriverRedis = "redis"
	// DriverMemory selects the process-local limiter.
	DriverMemory = "memory"
)
