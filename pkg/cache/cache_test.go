package cache

import (
	"fmt"
	"sync"
	"testing"
)

// testBasicOperations exercises the shared Cache contract.
func testBasicOperations(t *testing.T, cache Cache[string]) {
	if value, exists := cache.Get("key1"); exists {
		t.Errorf("Expected cache miss, got value: %s", value)
	}

	isNew, err := cache.Set("key1", "value1")
	if err != nil {
		t.Fatalf("Unexpected error setting key: %v", err)
	}
	if !isNew {
		t.Error("Expected new entry creation")
	}

	if value, exists := cache.Get("key1"); !exists || value != "value1" {
		t.Errorf("Expected 'value1', got value: %s, exists: %t", value, exists)
	}

	isNew, err = cache.Set("key1", "value1_updated")
	if err != nil {
		t.Fatalf("Unexpected error updating key: %v", err)
	}
	if isNew {
		t.Error("Expected existing entry update")
	}

	if value, exists := cache.Get("key1"); !exists || value != "value1_updated" {
		t.Errorf("Expected 'value1_updated', got value: %s, exists: %t", value, exists)
	}

	deleted, err := cache.Delete("key1")
	if err != nil {
		t.Fatalf("Unexpected error deleting key: %v", err)
	}
	if !deleted {
		t.Error("Expected successful deletion")
	}

	deleted, err = cache.Delete("key1")
	if err != nil {
		t.Fatalf("Unexpected error deleting non-existent key: %v", err)
	}
	if deleted {
		t.Error("Expected deletion failure for non-existent key")
	}
}

func testEmptyKeyRejected(t *testing.T, cache Cache[string]) {
	if _, err := cache.Set("", "value"); err == nil {
		t.Error("Expected error setting empty key")
	}
	if _, err := cache.Delete(""); err == nil {
		t.Error("Expected error deleting empty key")
	}
}

func testClearOperation(t *testing.T, cache Cache[string]) {
	_, _ = cache.Set("key1", "value1")
	_, _ = cache.Set("key2", "value2")

	_ = cache.Clear()

	if cache.Size() != 0 {
		t.Errorf("Expected size 0 after clear, got %d", cache.Size())
	}
	if _, exists := cache.Get("key1"); exists {
		t.Error("Expected cache miss after clear")
	}
}

func testStatsTracking(t *testing.T, cache Cache[string]) {
	_, _ = cache.Set("key1", "value1")
	cache.Get("key1")
	cache.Get("absent")

	stats := cache.Stats()
	if stats == nil {
		t.Fatal("Expected stats to be present")
	}
	if stats.Hits() != 1 {
		t.Errorf("Expected 1 hit, got %d", stats.Hits())
	}
	if stats.Misses() != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses())
	}
	if stats.Sets() != 1 {
		t.Errorf("Expected 1 set, got %d", stats.Sets())
	}
	if ratio := stats.HitRatio(); ratio != 0.5 {
		t.Errorf("Expected hit ratio 0.5, got %f", ratio)
	}
}

func testConcurrentAccess(t *testing.T, cache Cache[string]) {
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("key-%d-%d", n, j)
				_, _ = cache.Set(key, "value")
				cache.Get(key)
				_, _ = cache.Delete(key)
			}
		}(i)
	}
	wg.Wait()
}

func TestSimpleCache(t *testing.T) {
	newCache := func(t *testing.T) Cache[string] {
		t.Helper()
		c, err := NewSimple[string]()
		if err != nil {
			t.Fatalf("Failed to create simple cache: %v", err)
		}
		return c
	}

	t.Run("BasicOperations", func(t *testing.T) { testBasicOperations(t, newCache(t)) })
	t.Run("EmptyKeyRejected", func(t *testing.T) { testEmptyKeyRejected(t, newCache(t)) })
	t.Run("Clear", func(t *testing.T) { testClearOperation(t, newCache(t)) })
	t.Run("Stats", func(t *testing.T) { testStatsTracking(t, newCache(t)) })
	t.Run("ConcurrentAccess", func(t *testing.T) { testConcurrentAccess(t, newCache(t)) })
}

func TestFIFOCache(t *testing.T) {
	newCache := func(t *testing.T) Cache[string] {
		t.Helper()
		c, err := NewFIFO[string](100)
		if err != nil {
			t.Fatalf("Failed to create FIFO cache: %v", err)
		}
		return c
	}

	t.Run("BasicOperations", func(t *testing.T) { testBasicOperations(t, newCache(t)) })
	t.Run("EmptyKeyRejected", func(t *testing.T) { testEmptyKeyRejected(t, newCache(t)) })
	t.Run("Clear", func(t *testing.T) { testClearOperation(t, newCache(t)) })
	t.Run("Stats", func(t *testing.T) { testStatsTracking(t, newCache(t)) })
	t.Run("ConcurrentAccess", func(t *testing.T) { testConcurrentAccess(t, newCache(t)) })
}

func TestFIFOEvictsOldestInsertion(t *testing.T) {
	cache, err := NewFIFO[string](2)
	if err != nil {
		t.Fatalf("Failed to create FIFO cache: %v", err)
	}

	_, _ = cache.Set("K1", "v1")
	_, _ = cache.Set("K2", "v2")
	_, _ = cache.Set("K3", "v3")

	if _, exists := cache.Get("K1"); exists {
		t.Error("Expected K1 to be evicted")
	}
	if _, exists := cache.Get("K2"); !exists {
		t.Error("Expected K2 to survive")
	}
	if _, exists := cache.Get("K3"); !exists {
		t.Error("Expected K3 to survive")
	}
	if cache.Stats().Evictions() != 1 {
		t.Errorf("Expected 1 eviction, got %d", cache.Stats().Evictions())
	}
}

func TestFIFOAccessDoesNotRefresh(t *testing.T) {
	cache, err := NewFIFO[string](2)
	if err != nil {
		t.Fatalf("Failed to create FIFO cache: %v", err)
	}

	_, _ = cache.Set("K1", "v1")
	_, _ = cache.Set("K2", "v2")

	// Heavy access on K1 must not save it; insertion order decides.
	for i := 0; i < 10; i++ {
		cache.Get("K1")
	}
	_, _ = cache.Set("K3", "v3")

	if _, exists := cache.Get("K1"); exists {
		t.Error("Expected K1 to be evicted despite recent access")
	}
	if _, exists := cache.Get("K2"); !exists {
		t.Error("Expected K2 to survive")
	}
}

func TestFIFOUpdateKeepsInsertionPosition(t *testing.T) {
	cache, err := NewFIFO[string](2)
	if err != nil {
		t.Fatalf("Failed to create FIFO cache: %v", err)
	}

	_, _ = cache.Set("K1", "v1")
	_, _ = cache.Set("K2", "v2")
	_, _ = cache.Set("K1", "v1_updated") // in-place update, K1 stays oldest
	_, _ = cache.Set("K3", "v3")

	if _, exists := cache.Get("K1"); exists {
		t.Error("Expected K1 to be evicted")
	}
	if value, exists := cache.Get("K2"); !exists || value != "v2" {
		t.Errorf("Expected K2 to survive, got value: %s, exists: %t", value, exists)
	}
}

func TestFIFOKeysInInsertionOrder(t *testing.T) {
	cache, err := NewFIFO[string](3)
	if err != nil {
		t.Fatalf("Failed to create FIFO cache: %v", err)
	}

	_, _ = cache.Set("a", "1")
	_, _ = cache.Set("b", "2")
	_, _ = cache.Set("c", "3")

	keys := cache.Keys()
	expected := []string{"a", "b", "c"}
	if len(keys) != len(expected) {
		t.Fatalf("Expected %d keys, got %d", len(expected), len(keys))
	}
	for i, key := range expected {
		if keys[i] != key {
			t.Errorf("Expected key %q at position %d, got %q", key, i, keys[i])
		}
	}
}

func TestFIFOEvictionCallback(t *testing.T) {
	var evictedKeys []string
	cache, err := NewFIFO[string](1, WithEvictionCallback[string](func(key string, _ string) {
		evictedKeys = append(evictedKeys, key)
	}))
	if err != nil {
		t.Fatalf("Failed to create FIFO cache: %v", err)
	}

	_, _ = cache.Set("K1", "v1")
	_, _ = cache.Set("K2", "v2")
	_, _ = cache.Delete("K2")

	if len(evictedKeys) != 2 || evictedKeys[0] != "K1" || evictedKeys[1] != "K2" {
		t.Errorf("Expected callbacks for K1 then K2, got %v", evictedKeys)
	}
}

func TestNoopCache(t *testing.T) {
	cache := NewNoop[string]()

	isNew, err := cache.Set("key", "value")
	if err != nil {
		t.Fatalf("Unexpected error from noop set: %v", err)
	}
	if isNew {
		t.Error("Expected noop set to report no new entry")
	}
	if _, exists := cache.Get("key"); exists {
		t.Error("Expected noop cache to always miss")
	}
	if cache.Size() != 0 {
		t.Errorf("Expected size 0, got %d", cache.Size())
	}
	if cache.Stats() != nil {
		t.Error("Expected nil stats from noop cache")
	}
}
