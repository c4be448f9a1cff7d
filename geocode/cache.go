package geocode

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Cache memoizes reverse-geocoding results keyed by coordinates rounded
// to four decimal places (about eleven meters). It is an explicit object
// with a bounded size and a TTL: when full, the oldest entry is evicted.
// The clock is injectable so tests control expiry.
type Cache struct {
	mu         sync.Mutex
	entries    map[string]cacheEntry
	maxEntries int
	ttl        time.Duration
	now        func() time.Time
}

type cacheEntry struct {
	addr     Address
	storedAt time.Time
}

func NewCache(maxEntries int, ttl time.Duration) *Cache {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &Cache{
		entries:    make(map[string]cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
		now:        time.Now,
	}
}

// WithClock replaces the cache's time source. Test hook.
func (c *Cache) WithClock(now func() time.Time) *Cache {
	c.now = now
	return c
}

func cacheKey(lat, lng float64) string {
	return fmt.Sprintf("%.4f,%.4f", lat, lng)
}

// Get returns a live cached address for the coordinates, if any.
func (c *Cache) Get(lat, lng float64) (Address, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[cacheKey(lat, lng)]
	if !ok {
		return Address{}, false
	}
	if c.ttl > 0 && c.now().Sub(entry.storedAt) > c.ttl {
		delete(c.entries, cacheKey(lat, lng))
		return Address{}, false
	}
	return entry.addr, true
}

// Put stores an address, evicting the oldest entry when the bound is hit.
func (c *Cache) Put(lat, lng float64, addr Address) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(lat, lng)
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.entries[key] = cacheEntry{addr: addr, storedAt: c.now()}
}

func (c *Cache) evictOldestLocked() {
	var oldestKey string
	var oldestAt time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.storedAt.Before(oldestAt) {
			oldestKey = key
			oldestAt = entry.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

// Len reports the number of stored entries, expired or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// CachedGeocoder wraps a Geocoder with a Cache.
type CachedGeocoder struct {
	inner Geocoder
	cache *Cache
}

func NewCachedGeocoder(inner Geocoder, cache *Cache) *CachedGeocoder {
	return &CachedGeocoder{inner: inner, cache: cache}
}

func (g *CachedGeocoder) ReverseGeocode(ctx context.Context, lat, lng float64) (Address, error) {
	if addr, ok := g.cache.Get(lat, lng); ok {
		return addr, nil
	}
	addr, err := g.inner.ReverseGeocode(ctx, lat, lng)
	if err != nil {
		return Address{}, err
	}
	g.cache.Put(lat, lng, addr)
	return addr, nil
}
