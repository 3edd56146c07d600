package exchange

import (
	"context"
	"sync"
	"time"
)

// Cache provides an in-memory cache for exchange rates
type Cache struct {
	store map[string]rateCacheEntry
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

type rateCacheEntry struct {
	value     *RateInfo
	expiresAt time.Time
}

// NewCache creates a new cache with the given TTL
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		store: make(map[string]rateCacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// GetRate gets a rate from the cache
func (c *Cache) GetRate(ctx context.Context, from, to string) (*RateInfo, error) {
	key := cacheKey(from, to)

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, nil
	}

	if c.now().After(entry.expiresAt) {
		return nil, nil
	}

	return entry.value, nil
}

// StoreRate stores a rate in the cache
func (c *Cache) StoreRate(ctx context.Context, rate *RateInfo) error {
	if rate == nil {
		return nil
	}

	key := cacheKey(rate.FromCurrency, rate.ToCurrency)

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = rateCacheEntry{
		value:     rate,
		expiresAt: c.now().Add(c.ttl),
	}

	return nil
}

// Len returns the number of entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]rateCacheEntry)
}

// cacheKey generates a consistent cache key for a currency pair
func cacheKey(from, to string) string {
	return from + "_" + to
}

var _ RateCache = (*Cache)(nil)
