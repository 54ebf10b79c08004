package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryAllow(t *testing.T) {
	ctx := context.Background()

	t.Run("BlocksAboveTheLimitWithinOneWindow", func(t *testing.T) {
		now := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
		m := NewMemory(5, time.Minute, func() time.Time { return now })

		for i := range 5 {
			assert.True(t, m.Allow(ctx, "203.0.113.7"), "request %d should pass", i+1)
		}
		assert.False(t, m.Allow(ctx, "203.0.113.7"), "sixth request must be rejected")
		assert.False(t, m.Allow(ctx, "203.0.113.7"))
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		now := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
		m := NewMemory(1, time.Minute, func() time.Time { return now })

		assert.True(t, m.Allow(ctx, "203.0.113.7"))
		assert.False(t, m.Allow(ctx, "203.0.113.7"))
		assert.True(t, m.Allow(ctx, "198.51.100.9"), "a different origin has its own window")
	})

	t.Run("WindowExpiryResetsTheCounter", func(t *testing.T) {
		now := time.Date(2026, time.March, 14, 9, 30, 0, 0, time.UTC)
		m := NewMemory(2, time.Minute, func() time.Time { return now })

		assert.True(t, m.Allow(ctx, "203.0.113.7"))
		assert.True(t, m.Allow(ctx, "203.0.113.7"))
		assert.False(t, m.Allow(ctx, "203.0.113.7"))

		now = now.Add(time.Minute)
		assert.True(t, m.Allow(ctx, "203.0.113.7"), "a new window starts counting from zero")
	})

	t.Run("DefaultsGuardBadConstruction", func(t *testing.T) {
		m := NewMemory(0, 0, nil)

		assert.True(t, m.Allow(ctx, "k"))
		assert.False(t, m.Allow(ctx, "k"), "limit floors at one")
	})
}
