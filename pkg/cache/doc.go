// Package cache provides generic, thread-safe caches with built-in
// statistics and optional Prometheus metrics export.
//
// Two eviction strategies are offered:
//   - SimpleCache: no eviction, entries live until deleted or cleared
//   - FIFOCache: bounded size, evicts the earliest-inserted entry first
//
// FIFO deliberately ignores access recency: reading an entry does not
// extend its life, so a hot entry inserted early is still the first to go
// when the cache fills. Statistics are always collected; Prometheus export
// is opt-in via WithMetrics.
package cache
