package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTTLCache(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		c, stop := NewTTLCache[int64](1000 * time.Second)
		defer stop()

		c.set("sleep:user-1", 13)

		result := c.getOrClaim("sleep:user-1")
		require.False(t, result.claimed, "Expected entry to exist")
		require.True(t, result.valid)
		require.Equal(t, int64(13), result.data)
	})

	t.Run("getOrClaim claims when missing", func(t *testing.T) {
		t.Parallel()

		c, stop := NewTTLCache[int64](1000 * time.Second)
		defer stop()

		result := c.getOrClaim("sleep:user-1")
		require.True(t, result.claimed, "Expected entry to not exist and get claimed")

		result = c.getOrClaim("sleep:user-1")
		require.False(t, result.claimed, "Expected entry to exist and not get claimed")
		require.False(t, result.valid, "Expected entry to be invalid")
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()

		c, stop := NewTTLCache[int64](1000 * time.Second)
		defer stop()

		c.set("sleep:user-1", 13)
		c.delete("sleep:user-1")

		result := c.getOrClaim("sleep:user-1")
		require.True(t, result.claimed, "Expected to not find a value")
	})

	t.Run("delete missing entry", func(t *testing.T) {
		t.Parallel()

		c, stop := NewTTLCache[int64](1000 * time.Second)
		defer stop()

		c.delete("sleep:user-1")

		result := c.getOrClaim("sleep:user-1")
		require.True(t, result.claimed, "Expected to not find a value")
	})

	t.Run("expires", func(t *testing.T) {
		if testing.Short() {
			t.Skip("skipping expiry test in short mode")
		}
		t.Parallel()

		c, stop := NewTTLCache[int64](50 * time.Millisecond)
		defer stop()

		c.set("sleep:user-1", 13)
		time.Sleep(100 * time.Millisecond)

		result := c.getOrClaim("sleep:user-1")
		require.True(t, result.claimed, "Expected entry to have expired")
	})
}
