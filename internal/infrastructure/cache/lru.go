package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/renalplate/backend/internal/domain"
)

const (
	// DefaultSize bounds the number of cached nutrient payloads
	DefaultSize = 1024
	// DefaultTTL keeps payloads for a day; USDA data changes rarely
	DefaultTTL = 24 * time.Hour
)

// LRUCache is a bounded, thread-safe nutrient payload cache with a fixed TTL
type LRUCache struct {
	lru *expirable.LRU[string, domain.FoodNutrients]
}

// NewLRUCache creates a cache holding at most size entries for ttl each.
// Non-positive arguments fall back to the defaults.
func NewLRUCache(size int, ttl time.Duration) *LRUCache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &LRUCache{
		lru: expirable.NewLRU[string, domain.FoodNutrients](size, nil, ttl),
	}
}

// Get retrieves a copy of the cached payload
func (c *LRUCache) Get(ctx context.Context, key string) (*domain.FoodNutrients, error) {
	value, ok := c.lru.Get(key)
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return clone(&value), nil
}

// Set stores a copy of value so callers cannot mutate cached data
func (c *LRUCache) Set(ctx context.Context, key string, value *domain.FoodNutrients) error {
	if value == nil {
		return nil
	}
	c.lru.Add(key, *clone(value))
	return nil
}

// Delete removes a value from the cache
func (c *LRUCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *LRUCache) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.lru.Peek(key)
	return ok, nil
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *LRUCache) Size() int {
	return c.lru.Len()
}

// Clear removes all items from the cache
func (c *LRUCache) Clear() {
	c.lru.Purge()
}

func clone(src *domain.FoodNutrients) *domain.FoodNutrients {
	out := &domain.FoodNutrients{ServingUnit: src.ServingUnit}
	if src.Entries != nil {
		out.Entries = make([]domain.RawNutrientEntry, len(src.Entries))
		copy(out.Entries, src.Entries)
	}
	if src.ServingSize != nil {
		size := *src.ServingSize
		out.ServingSize = &size
	}
	return out
}
