package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateUID(t *testing.T) {
	t.Run("Length", func(t *testing.T) {
		for _, n := range []int{4, 8, 16} {
			uid, err := GenerateUID(n)
			require.NoError(t, err)
			assert.Len(t, uid, n)
		}
	})

	t.Run("Charset", func(t *testing.T) {
		uid, err := GenerateUID(64)
		require.NoError(t, err)
		for _, r := range uid {
			isLower := r >= 'a' && r <= 'z'
			isUpper := r >= 'A' && r <= 'Z'
			isDigit := r >= '0' && r <= '9'
			assert.True(t, isLower || isUpper || isDigit, "unexpected character %q", r)
		}
	})

	t.Run("NonPositiveLengthFallsBack", func(t *testing.T) {
		uid, err := GenerateUID(0)
		require.NoError(t, err)
		assert.Len(t, uid, DefaultUIDLength)

		uid, err = GenerateUID(-3)
		require.NoError(t, err)
		assert.Len(t, uid, DefaultUIDLength)
	})

	t.Run("NoImmediateCollisions", func(t *testing.T) {
		// 62^8 identifiers make a repeat in a small sample vanishingly
		// unlikely; a collision here means the generator is broken.
		seen := make(map[string]struct{}, 1000)
		for i := 0; i < 1000; i++ {
			uid, err := GenerateUID(8)
			require.NoError(t, err)
			_, dup := seen[uid]
			require.False(t, dup, "duplicate identifier %s", uid)
			seen[uid] = struct{}{}
		}
	})
}
