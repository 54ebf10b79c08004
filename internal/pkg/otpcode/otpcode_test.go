package otpcode

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSixDigitGenerate(t *testing.T) {
	gen := NewSixDigit()

	for range 1000 {
		code, err := gen.Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}

func TestSixDigitGenerateVaries(t *testing.T) {
	gen := NewSixDigit()

	seen := make(map[string]struct{}, 100)
	for range 100 {
		code, err := gen.Generate()
		require.NoError(t, err)
		seen[code] = struct{}{}
	}

	// 100 draws from 900k values virtually never collide down to a handful.
	assert.Greater(t, len(seen), 90)
}
