// Package cache holds read-side response caches. The engine itself
// never reads through a cache; only HTTP query handlers do, so a stale
// or evicted entry costs one rebuild from the store.
package cache

import "time"

// Cache is the interface for caching rendered query responses.
type Cache interface {
	// Get retrieves a value from the cache.
	// Returns (value, true) if found, (nil, false) if not found.
	Get(key string) (interface{}, bool)

	// Set stores a value in the cache with a TTL.
	Set(key string, value interface{}, ttl time.Duration) bool

	// Delete removes a value from the cache.
	Delete(key string)

	// Clear removes all values from the cache.
	Clear()

	// Close closes the cache and releases resources.
	Close()
}
