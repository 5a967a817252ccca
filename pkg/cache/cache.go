package cache

import (
	"time"

	"github.com/c360/semkg/errors"
)

// Cache is the generic cache contract shared by all implementations.
// The cache is parameterized by value type V for type safety.
type Cache[V any] interface {
	// Get retrieves a value by key. Returns the value and true if found,
	// zero value and false otherwise.
	Get(key string) (V, bool)

	// Set stores a value with the given key. Returns true if a new entry
	// was created, false if an existing entry was updated.
	Set(key string, value V) (bool, error)

	// Delete removes an entry by key. Returns true if the key existed.
	Delete(key string) (bool, error)

	// Clear removes all entries from the cache.
	Clear() error

	// Size returns the current number of entries.
	Size() int

	// Keys returns all keys currently in the cache.
	Keys() []string

	// Stats returns the cache statistics. Nil only for the noop cache.
	Stats() *Statistics

	// Close releases any resources held by the cache.
	Close() error
}

// EvictCallback is called when an entry leaves the cache, with the key and
// value of the evicted entry.
type EvictCallback[V any] func(key string, value V)

// Entry pairs a cached value with its insertion time. FIFO eviction orders
// entries by CreatedAt; access never reorders them.
type Entry[V any] struct {
	Key       string
	Value     V
	CreatedAt time.Time
}

// validateKey rejects keys the cache cannot store.
func validateKey(key string) error {
	if key == "" {
		return errors.WrapInvalid(errors.ErrInvalidData, "cache", "validateKey", "key cannot be empty")
	}
	return nil
}
