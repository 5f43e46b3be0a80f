package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

func TestCoachCache(t *testing.T) {
	result := &domain.CoachResult{OK: true, Coach: "Snix", Report: "r1"}

	t.Run("Set then Get within TTL", func(t *testing.T) {
		c := NewCoachCache(15 * time.Minute)
		c.Set("k", result)

		got, ok := c.Get("k")
		require.True(t, ok)
		assert.Same(t, result, got, "hit returns the identical stored result")
	})

	t.Run("Miss on unknown key", func(t *testing.T) {
		c := NewCoachCache(15 * time.Minute)

		_, ok := c.Get("nope")
		assert.False(t, ok)
	})

	t.Run("Entry past TTL is evicted", func(t *testing.T) {
		now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
		c := NewCoachCache(900 * time.Second)
		c.now = func() time.Time { return now }

		c.Set("k", result)

		now = now.Add(899 * time.Second)
		_, ok := c.Get("k")
		assert.True(t, ok, "still fresh just under the TTL")

		now = now.Add(2 * time.Second)
		_, ok = c.Get("k")
		assert.False(t, ok, "expired past the TTL")

		// Eviction happened on lookup, not just a miss.
		assert.Empty(t, c.entries)
	})

	t.Run("Overwrite refreshes the timestamp", func(t *testing.T) {
		now := time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)
		c := NewCoachCache(10 * time.Second)
		c.now = func() time.Time { return now }

		c.Set("k", result)
		now = now.Add(8 * time.Second)
		c.Set("k", result)
		now = now.Add(8 * time.Second)

		_, ok := c.Get("k")
		assert.True(t, ok)
	})
}

func TestCoachKey(t *testing.T) {
	key := CoachKey(14, "ansiedade", true, "2024-03-20", 7)
	assert.Equal(t, "days=14|focus=ansiedade|notes=1|end=2024-03-20|n=7", key)

	assert.NotEqual(t, key, CoachKey(14, "ansiedade", false, "2024-03-20", 7),
		"notes toggle changes the fingerprint")
}
