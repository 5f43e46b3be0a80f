package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/snixlabs/lifeops/internal/core/domain"
)

// CoachCache memoizes coach results in-process, keyed by the request
// fingerprint. Entries older than the TTL count as absent and are evicted on
// lookup; there is no other eviction.
type CoachCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]coachEntry
}

type coachEntry struct {
	ts    time.Time
	value *domain.CoachResult
}

func NewCoachCache(ttl time.Duration) *CoachCache {
	return &CoachCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]coachEntry),
	}
}

// CoachKey builds the request fingerprint: same window, same focus, same
// notes toggle reuses the cached report.
func CoachKey(days int, focus string, includeNotes bool, endDate string, windowSize int) string {
	notes := 0
	if includeNotes {
		notes = 1
	}
	return fmt.Sprintf("days=%d|focus=%s|notes=%d|end=%s|n=%d", days, focus, notes, endDate, windowSize)
}

func (c *CoachCache) Get(key string) (*domain.CoachResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(entry.ts) > c.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return entry.value, true
}

func (c *CoachCache) Set(key string, value *domain.CoachResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = coachEntry{ts: c.now(), value: value}
}
