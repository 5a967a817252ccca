// Package graph implements the in-memory entity/relationship store.
//
// # Data model
//
// Entities are typed, named nodes identified by a deterministic key derived
// from (type, name). Facts about them are directed statements
// (subject, predicate, object) where the object is either another entity or
// a scalar literal from the closed Value variant {string, float, bool,
// timestamp}. Statements are append-only and never deduplicated: asserting
// the same fact twice records it twice. This is documented behavior, not a
// defect; callers needing idempotent ingestion must check before inserting.
//
// Metrics form an append-only time series per (entity, metric name) pair.
// Vulnerability findings are content-addressed by a SHA-256 digest of their
// canonicalized fields. Relationships that carry their own data materialize
// an auxiliary statement-node of class Relationship.
//
// # Queries
//
// Query executes declarative patterns (shared variables across triple
// patterns, comparison filters, grouping with count/max aggregates,
// ordering, limiting) against secondary indexes by subject and predicate.
// A malformed pattern is the only loud failure in the package; everything
// else degrades to an empty result.
//
// # Concurrency
//
// The store is single-threaded by contract. There is no internal locking;
// concurrent callers must serialize access themselves.
package graph
