package cache

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/Domenick1991/skyjourney/internal/domain"
)

type memoryEntry struct {
	flights   []domain.Flight
	expiresAt time.Time
}

// MemoryCache is the in-process query cache used when Redis is disabled.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), ttl: ttl, now: time.Now}
}

func (c *MemoryCache) GetFlights(_ context.Context, key string) ([]domain.Flight, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	if !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		return nil, false, nil
	}
	return slices.Clone(e.flights), true, nil
}

func (c *MemoryCache) SetFlights(_ context.Context, key string, flights []domain.Flight) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{flights: slices.Clone(flights), expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// Sweep drops expired results that were never read again.
func (c *MemoryCache) Sweep() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}
