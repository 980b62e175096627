package cache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time // zero means no expiration
}

// MemoryCache is a map-backed Cache guarded by a RWMutex. Expired entries
// are treated as misses and dropped lazily or by PurgeExpired.
type MemoryCache[V any] struct {
	mu    sync.RWMutex
	items map[string]entry[V]
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache[V any]() *MemoryCache[V] {
	return &MemoryCache[V]{items: make(map[string]entry[V])}
}

// now is a small indirection to allow test stubbing.
var now = time.Now

func (e entry[V]) expired(at time.Time) bool {
	return !e.expiresAt.IsZero() && at.After(e.expiresAt)
}

// Get implements Cache.Get.
func (c *MemoryCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	e, ok := c.items[key]
	if !ok || e.expired(now()) {
		return zero, false
	}
	return e.value, true
}

// Set implements Cache.Set.
func (c *MemoryCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var exp time.Time
	if ttl > 0 {
		exp = now().Add(ttl)
	}
	c.items[key] = entry[V]{value: value, expiresAt: exp}
}

// Delete implements Cache.Delete.
func (c *MemoryCache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Len counts only non-expired entries.
func (c *MemoryCache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ts := now()
	n := 0
	for _, e := range c.items {
		if !e.expired(ts) {
			n++
		}
	}
	return n
}

// PurgeExpired removes expired entries.
func (c *MemoryCache[V]) PurgeExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	ts := now()
	for k, e := range c.items {
		if e.expired(ts) {
			delete(c.items, k)
		}
	}
}

// Janitor purges expired entries every interval until stop is closed.
func (c *MemoryCache[V]) Janitor(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			c.PurgeExpired()
		}
	}
}

var _ Cache[any] = (*MemoryCache[any])(nil)
