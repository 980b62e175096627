package cache

import "time"

// Cache is a key-value store with an optional TTL per entry. The board
// service keeps snapshots and per-viewer view states behind it, either in
// process or in Redis when several instances share state.
type Cache[V any] interface {
	// Get returns the value and whether it was present and not expired.
	Get(key string) (V, bool)

	// Set stores the value. If ttl <= 0, the entry does not expire.
	Set(key string, value V, ttl time.Duration)

	// Delete removes a key if present.
	Delete(key string)
}
