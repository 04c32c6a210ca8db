// Package cache provides a small TTL cache for ticker lookup results, so a
// keystroke burst repeating a recent query does not round-trip to the
// analytics backend again.
package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/bobmcallan/signal-portal/internal/models"
)

// entry wraps a cached suggestion list with expiry and insertion order
// tracking.
type entry struct {
	items     []models.SuggestionItem
	expiry    time.Time
	insertIdx int64
}

// SuggestionCache caches ticker lookup responses keyed by normalized query.
// Thread-safe with sync.RWMutex.
type SuggestionCache struct {
	mu         sync.RWMutex
	items      map[string]entry
	ttl        time.Duration
	maxEntries int
	nextIdx    int64
}

// New creates a SuggestionCache with the given TTL and max entry count.
func New(ttl time.Duration, maxEntries int) *SuggestionCache {
	return &SuggestionCache{
		items:      make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// MakeKey normalizes a query into a cache key.
func MakeKey(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Get returns a cached suggestion list if found and not expired.
func (c *SuggestionCache) Get(key string) ([]models.SuggestionItem, bool) {
	c.mu.RLock()
	e, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}

	if time.Now().After(e.expiry) {
		// Expired: remove lazily
		c.mu.Lock()
		if e2, ok2 := c.items[key]; ok2 && time.Now().After(e2.expiry) {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return e.items, true
}

// Set stores a suggestion list. Evicts the oldest entry if at capacity.
func (c *SuggestionCache) Set(key string, items []models.SuggestionItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := entry{
		items:     items,
		expiry:    time.Now().Add(c.ttl),
		insertIdx: c.nextIdx,
	}
	c.nextIdx++

	// If key already exists, update in place (no capacity change)
	if _, exists := c.items[key]; exists {
		c.items[key] = e
		return
	}

	if len(c.items) >= c.maxEntries {
		c.evictOldest()
	}

	c.items[key] = e
}

// Len returns the number of live entries (expired entries included until
// their lazy removal).
func (c *SuggestionCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// evictOldest removes the entry with the lowest insertIdx. Must be called
// with mu held.
func (c *SuggestionCache) evictOldest() {
	var oldestKey string
	var oldestIdx int64 = -1

	for key, e := range c.items {
		if oldestIdx == -1 || e.insertIdx < oldestIdx {
			oldestIdx = e.insertIdx
			oldestKey = key
		}
	}

	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}
