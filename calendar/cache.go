package calendar

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// =============================================================================
// CACHE ABSTRACTION
// =============================================================================

// YearTTL is how long derived holiday data stays cached. Holiday sets for a
// given year never change, so the TTL only bounds memory, not staleness.
const YearTTL = 365 * 24 * time.Hour

// Cache is the minimal keyed cache the Calendar depends on. Implementations
// must be safe for concurrent use. Entries are derived data: losing or
// evicting them is always recoverable by recomputation.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
}

// NopCache disables caching; every lookup recomputes.
type NopCache struct{}

func (NopCache) Get(string) (any, bool)         { return nil, false }
func (NopCache) Set(string, any, time.Duration) {}

// TTLCache adapts patrickmn/go-cache to the Cache interface.
type TTLCache struct {
	c *gocache.Cache
}

// NewTTLCache creates a TTL cache with hourly expired-entry cleanup.
func NewTTLCache() *TTLCache {
	return &TTLCache{c: gocache.New(YearTTL, time.Hour)}
}

func (t *TTLCache) Get(key string) (any, bool) {
	return t.c.Get(key)
}

func (t *TTLCache) Set(key string, value any, ttl time.Duration) {
	t.c.Set(key, value, ttl)
}
