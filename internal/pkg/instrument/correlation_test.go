package instrument

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationID(t *testing.T) {
	t.Run("RoundTripsThroughTheContext", func(t *testing.T) {
		ctx := SetCorrelationID(t.Context(), "cid-123")

		assert.Equal(t, "cid-123", GetCorrelationID(ctx))
	})

	t.Run("EmptyWhenUnset", func(t *testing.T) {
		assert.Empty(t, GetCorrelationID(t.Context()))
	})

	t.Run("LatestValueWins", func(t *testing.T) {
		ctx := SetCorrelationID(t.Context(), "first")
		ctx = SetCorrelationID(ctx, "second")

		assert.Equal(t, "second", GetCorrelationID(ctx))
	})
}
