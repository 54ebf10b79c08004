package hash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHMACSHA256(t *testing.T) {
	h := NewHMACSHA256("secret")

	t.Run("Deterministic", func(t *testing.T) {
		first, err := h.Hash("654321")
		require.NoError(t, err)
		second, err := h.Hash("654321")
		require.NoError(t, err)

		assert.Equal(t, first, second, "same input and key must produce the same digest")
	})

	t.Run("Verify", func(t *testing.T) {
		digest, err := h.Hash("654321")
		require.NoError(t, err)

		assert.True(t, h.Verify(string(digest), "654321"))
		assert.False(t, h.Verify(string(digest), "654322"))
	})

	t.Run("KeyChangesDigest", func(t *testing.T) {
		other := NewHMACSHA256("different")

		a, err := h.Hash("654321")
		require.NoError(t, err)
		b, err := other.Hash("654321")
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})
}
