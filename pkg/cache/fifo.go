package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/c360/semkg/errors"
)

// fifoCache is a thread-safe bounded cache with first-in-first-out eviction.
// When the cache exceeds its maximum size the earliest-inserted entry is
// removed. Get never reorders entries; only insertion position matters.
type fifoCache[V any] struct {
	mu      sync.RWMutex
	maxSize int
	items   map[string]*list.Element
	order   *list.List // front = oldest insertion, back = newest
	stats   *Statistics
	metrics *cacheMetrics
	evictFn EvictCallback[V]
}

// newFIFOCache creates a FIFO cache with the given maximum size.
// Returns an error if metrics registration fails when requested.
func newFIFOCache[V any](maxSize int, opts *cacheOptions[V]) (*fifoCache[V], error) {
	stats := NewStatistics()

	var metrics *cacheMetrics
	if opts.metricsReg != nil && opts.metricsPrefix != "" {
		var err error
		metrics, err = newCacheMetrics(opts.metricsReg, opts.metricsPrefix)
		if err != nil {
			return nil, errors.WrapTransient(err, "cache", "newFIFOCache", "metrics registration")
		}
	}

	return &fifoCache[V]{
		maxSize: maxSize,
		items:   make(map[string]*list.Element),
		order:   list.New(),
		stats:   stats,
		metrics: metrics,
		evictFn: opts.evictCallback,
	}, nil
}

// Get retrieves a value by key. Access does not refresh the entry's
// position in the eviction order.
func (c *fifoCache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	element, exists := c.items[key]
	var value V
	if exists {
		value = element.Value.(*Entry[V]).Value
	}
	c.mu.RUnlock()

	if exists {
		c.stats.Hit()
		if c.metrics != nil {
			c.metrics.recordHit()
		}
	} else {
		c.stats.Miss()
		if c.metrics != nil {
			c.metrics.recordMiss()
		}
	}

	return value, exists
}

// Set stores a value with the given key. Updating an existing key replaces
// the value in place and keeps the original insertion position.
func (c *fifoCache[V]) Set(key string, value V) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	var evicted *Entry[V]

	c.mu.Lock()
	if element, exists := c.items[key]; exists {
		element.Value.(*Entry[V]).Value = value
		c.mu.Unlock()

		c.stats.Set()
		if c.metrics != nil {
			c.metrics.recordSet()
		}
		return false, nil
	}

	entry := &Entry[V]{Key: key, Value: value, CreatedAt: time.Now()}
	c.items[key] = c.order.PushBack(entry)

	if c.maxSize > 0 && len(c.items) > c.maxSize {
		oldest := c.order.Front()
		evicted = oldest.Value.(*Entry[V])
		delete(c.items, evicted.Key)
		c.order.Remove(oldest)
	}
	size := len(c.items)
	c.mu.Unlock()

	c.stats.Set()
	c.stats.UpdateSize(int64(size))
	if c.metrics != nil {
		c.metrics.recordSet()
		c.metrics.updateSize(size)
	}

	if evicted != nil {
		c.stats.Eviction()
		if c.metrics != nil {
			c.metrics.recordEviction()
		}
		if c.evictFn != nil {
			c.evictFn(evicted.Key, evicted.Value)
		}
	}

	return true, nil
}

// Delete removes an entry by key.
func (c *fifoCache[V]) Delete(key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	var removed *Entry[V]

	c.mu.Lock()
	element, exists := c.items[key]
	if exists {
		removed = element.Value.(*Entry[V])
		delete(c.items, key)
		c.order.Remove(element)
	}
	size := len(c.items)
	c.mu.Unlock()

	if !exists {
		return false, nil
	}

	c.stats.Delete()
	c.stats.UpdateSize(int64(size))
	if c.metrics != nil {
		c.metrics.recordDelete()
		c.metrics.updateSize(size)
	}
	if c.evictFn != nil {
		c.evictFn(removed.Key, removed.Value)
	}

	return true, nil
}

// Clear removes all entries from the cache.
func (c *fifoCache[V]) Clear() error {
	var cleared []*Entry[V]

	c.mu.Lock()
	if c.evictFn != nil {
		cleared = make([]*Entry[V], 0, len(c.items))
		for element := c.order.Front(); element != nil; element = element.Next() {
			cleared = append(cleared, element.Value.(*Entry[V]))
		}
	}
	c.items = make(map[string]*list.Element)
	c.order.Init()
	c.mu.Unlock()

	c.stats.UpdateSize(0)
	if c.metrics != nil {
		c.metrics.updateSize(0)
	}

	// Callbacks run outside the lock so they may touch the cache.
	for _, entry := range cleared {
		c.evictFn(entry.Key, entry.Value)
	}

	return nil
}

// Size returns the current number of entries in the cache.
func (c *fifoCache[V]) Size() int {
	c.mu.RLock()
	size := len(c.items)
	c.mu.RUnlock()
	return size
}

// Keys returns all keys in insertion order, oldest first.
func (c *fifoCache[V]) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.items))
	for element := c.order.Front(); element != nil; element = element.Next() {
		keys = append(keys, element.Value.(*Entry[V]).Key)
	}
	return keys
}

// Stats returns the cache statistics.
func (c *fifoCache[V]) Stats() *Statistics {
	return c.stats
}

// Close is a no-op; FIFO caches hold no background resources.
func (c *fifoCache[V]) Close() error {
	return nil
}
