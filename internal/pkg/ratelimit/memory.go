package ratelimit

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"
)

type memoryWindow struct {
	start time.Time
	count *atomic.Int64
}

// Memory is a process-local fixed-window limiter.
//
// Counters live in a map keyed by origin and reset when their window ends. In
// a multi-instance deployment each instance counts independently, so the
// guarantee degrades to per-instance best effort; deployments that need a
// global bound use the Redis limiter instead.
type Memory struct {
	limit  int64
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*memoryWindow
}

// NewMemory creates a process-local limiter allowing limit requests per window.
func NewMemory(limit int, window time.Duration, now func() time.Time) *Memory {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	if now == nil {
		now = time.Now
	}

	return &Memory{
		limit:   int64(limit),
		window:  window,
		now:     now,
		windows: make(map[string]*memoryWindow),
	}
}

// Allow records a request for key and reports whether it is within the limit.
func (m *Memory) Allow(_ context.Context, key string) bool {
	now := m.now()

	m.mu.Lock()
	w, ok := m.windows[key]
	if !ok || now.Sub(w.start) >= m.window {
		w = &memoryWindow{start: now, count: atomic.NewInt64(0)}
		m.windows[key] = w
	}
	m.mu.Unlock()

	return w.count.Inc() <= m.limit
}
