package bridge

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semkg/vocabulary"
)

func TestSemanticSearchCombinedScore(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	require.Equal(t, 1, b.SyncInsights(stamped([]Insight{
		{Content: "database performance and optimization", Category: "performance",
			Confidence: 0.8, SessionID: "s1"},
	})))

	results := b.SemanticSearch("database performance", SearchOptions{})
	require.Len(t, results, 1)

	// Word sets: {database, performance} vs {database, performance, and,
	// optimization} -> Jaccard 2/4. Combined: 0.6*0.5 + 0.4*0.8 = 0.62.
	assert.InDelta(t, 0.5, results[0].Similarity, 1e-9)
	assert.InDelta(t, 0.62, results[0].Score, 1e-9)
	assert.Equal(t, 0.8, results[0].Confidence)
}

func TestSemanticSearchRanksByScore(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	require.Equal(t, 3, b.SyncInsights(stamped([]Insight{
		{Content: "database performance tuning", Confidence: 0.6, SessionID: "s1"},
		{Content: "unrelated deployment checklist", Confidence: 0.99, SessionID: "s1"},
		{Content: "database performance", Confidence: 0.6, SessionID: "s1"},
	})))

	results := b.SemanticSearch("database performance", SearchOptions{})
	require.Len(t, results, 3)

	// Exact word overlap beats higher stored confidence.
	assert.Equal(t, "database performance", results[0].Content)
	assert.Equal(t, "database performance tuning", results[1].Content)
	assert.Equal(t, "unrelated deployment checklist", results[2].Content)
	assert.Greater(t, results[0].Score, results[1].Score)
	assert.Greater(t, results[1].Score, results[2].Score)
}

func TestSemanticSearchFilters(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	require.Equal(t, 3, b.SyncInsights(stamped([]Insight{
		{Content: "cache the session lookups", Category: "performance", Confidence: 0.9, SessionID: "s1"},
		{Content: "cache invalidation is risky", Category: "architecture", Confidence: 0.9, SessionID: "s1"},
		{Content: "cache everything maybe", Category: "performance", Confidence: 0.2, SessionID: "s1"},
	})))

	// Negative MinConfidence disables the default floor so the 0.2 insight
	// stays visible for the category check.
	byCategory := b.SemanticSearch("cache", SearchOptions{Category: "performance", MinConfidence: -1})
	require.Len(t, byCategory, 2)
	for _, r := range byCategory {
		assert.Equal(t, "performance", r.Category)
	}

	confident := b.SemanticSearch("cache", SearchOptions{MinConfidence: 0.5})
	require.Len(t, confident, 2)
	for _, r := range confident {
		assert.GreaterOrEqual(t, r.Confidence, 0.5)
	}
}

func TestSemanticSearchZeroOptionsApplyDefaults(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	var insights []Insight
	for i := 0; i < 6; i++ {
		insights = append(insights, Insight{
			Content:    fmt.Sprintf("solid observation %d", i),
			Confidence: 0.6,
			SessionID:  "s1",
		})
	}
	for i := 0; i < 3; i++ {
		insights = append(insights, Insight{
			Content:    fmt.Sprintf("weak hunch %d", i),
			Confidence: 0.3,
			SessionID:  "s1",
		})
	}
	require.Equal(t, 9, b.SyncInsights(stamped(insights)))

	// Zero options take the config defaults: limit 5, confidence floor 0.5.
	results := b.SemanticSearch("observation", SearchOptions{})
	require.Len(t, results, 5)
	for _, r := range results {
		assert.GreaterOrEqual(t, r.Confidence, 0.5)
	}

	// A negative floor readmits the low-confidence insights.
	unfloored := b.SemanticSearch("weak hunch", SearchOptions{MinConfidence: -1})
	count := 0
	for _, r := range unfloored {
		if r.Confidence < 0.5 {
			count++
		}
	}
	assert.Equal(t, 3, count)
}

func TestSemanticSearchLimit(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	var insights []Insight
	for i := 0; i < 6; i++ {
		insights = append(insights, Insight{
			Content:    fmt.Sprintf("indexing note %d", i),
			Confidence: 0.5,
			SessionID:  "s1",
		})
	}
	require.Equal(t, 6, b.SyncInsights(stamped(insights)))

	results := b.SemanticSearch("indexing", SearchOptions{Limit: 2})
	assert.Len(t, results, 2)
}

func TestSemanticSearchCacheHit(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	require.Equal(t, 1, b.SyncInsights(stamped([]Insight{
		{Content: "database performance", Confidence: 0.8, SessionID: "s1"},
	})))

	first := b.SemanticSearch("database performance", SearchOptions{})
	second := b.SemanticSearch("database performance", SearchOptions{})
	assert.Equal(t, first, second)

	stats := b.Stats()
	assert.Equal(t, int64(1), stats.CacheHits)
	assert.Equal(t, int64(1), stats.CacheMisses)
}

func TestSemanticSearchCacheKeyedByOptions(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	require.Equal(t, 2, b.SyncInsights(stamped([]Insight{
		{Content: "query tuning", Category: "performance", Confidence: 0.9, SessionID: "s1"},
		{Content: "query tuning again", Category: "architecture", Confidence: 0.9, SessionID: "s1"},
	})))

	all := b.SemanticSearch("query tuning", SearchOptions{})
	narrowed := b.SemanticSearch("query tuning", SearchOptions{Category: "performance"})

	assert.Len(t, all, 2)
	assert.Len(t, narrowed, 1)
	// Distinct option sets are distinct cache entries, no false hits.
	assert.Equal(t, int64(0), b.Stats().CacheHits)
}

func TestSyncInvalidatesSearchCache(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	require.Equal(t, 1, b.SyncInsights(stamped([]Insight{
		{Content: "database performance", Confidence: 0.8, SessionID: "s1"},
	})))
	require.Len(t, b.SemanticSearch("database performance", SearchOptions{}), 1)

	more := stamped([]Insight{
		{Content: "database performance regression", Confidence: 0.9, SessionID: "s2"},
	})
	require.Equal(t, 1, b.SyncInsights(more))

	results := b.SemanticSearch("database performance", SearchOptions{})
	assert.Len(t, results, 2)
}

func TestSearchCacheEvictsOldestQuery(t *testing.T) {
	cfg := DefaultConfig()
	cfg.CacheSize = 2
	b, _ := newTestBridge(t, cfg)

	require.Equal(t, 1, b.SyncInsights(stamped([]Insight{
		{Content: "shared observation", Confidence: 0.5, SessionID: "s1"},
	})))

	b.SemanticSearch("first query", SearchOptions{})
	b.SemanticSearch("second query", SearchOptions{})
	b.SemanticSearch("third query", SearchOptions{})

	stats := b.Stats()
	assert.Equal(t, 2, stats.CacheSize)
	assert.Equal(t, int64(1), stats.CacheEvictions)

	// The first query was evicted; asking again misses.
	b.SemanticSearch("first query", SearchOptions{})
	assert.Equal(t, int64(0), b.Stats().CacheHits)
}

func TestClearCache(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	require.Equal(t, 1, b.SyncInsights(stamped([]Insight{
		{Content: "observation", Confidence: 0.5, SessionID: "s1"},
	})))
	b.SemanticSearch("observation", SearchOptions{})
	require.Equal(t, 1, b.Stats().CacheSize)

	b.ClearCache()
	assert.Zero(t, b.Stats().CacheSize)
}

func TestFindRelatedInsights(t *testing.T) {
	b, store := newTestBridge(t, DefaultConfig())
	file := store.AddEntity(vocabulary.ClassFile, "db.py", nil)

	require.Equal(t, 3, b.SyncInsights(stamped([]Insight{
		{Content: "db.py queries are slow", Category: "performance",
			Confidence: 0.8, SessionID: "s1", RelatedTo: []string{file}},
		{Content: "connection pool exhaustion in db.py", Category: "reliability",
			Confidence: 0.7, SessionID: "s1", RelatedTo: []string{file}},
		{Content: "docs are outdated", Category: "docs",
			Confidence: 0.9, SessionID: "s1"},
	})))

	related := b.FindRelatedInsights("db.py queries", RelatedOptions{})
	require.Len(t, related, 1)
	assert.Equal(t, "connection pool exhaustion in db.py", related[0].Content)
	// Both insights link to exactly the same entity set.
	assert.InDelta(t, 1.0, related[0].Similarity, 1e-9)
}

func TestFindRelatedInsightsNoAnchorMatch(t *testing.T) {
	b, _ := newTestBridge(t, DefaultConfig())

	require.Equal(t, 1, b.SyncInsights(stamped([]Insight{
		{Content: "observation", Confidence: 0.5, SessionID: "s1"},
	})))

	assert.Empty(t, b.FindRelatedInsights("nothing contains this", RelatedOptions{}))
}

func TestFindRelatedInsightsThresholdFiltersWeakNeighbors(t *testing.T) {
	b, store := newTestBridge(t, DefaultConfig())
	auth := store.AddEntity(vocabulary.ClassFile, "auth.py", nil)
	db := store.AddEntity(vocabulary.ClassFile, "db.py", nil)
	api := store.AddEntity(vocabulary.ClassFile, "api.py", nil)

	require.Equal(t, 3, b.SyncInsights(stamped([]Insight{
		{Content: "the login path touches every tier", Category: "architecture",
			Confidence: 0.8, SessionID: "s1", RelatedTo: []string{auth, db, api}},
		{Content: "auth.py rechecks the token twice", Category: "performance",
			Confidence: 0.7, SessionID: "s1", RelatedTo: []string{auth}},
		{Content: "request tracing spans all three layers", Category: "observability",
			Confidence: 0.9, SessionID: "s1", RelatedTo: []string{auth, db, api}},
	})))

	// Sharing one of three linked entities gives Jaccard 1/3, below the 0.7
	// default, so only the full-overlap insight comes back.
	related := b.FindRelatedInsights("the login path", RelatedOptions{})
	require.Len(t, related, 1)
	assert.Equal(t, "request tracing spans all three layers", related[0].Content)
	assert.InDelta(t, 1.0, related[0].Similarity, 1e-9)

	// An explicit lower threshold admits the weak neighbor too.
	loose := b.FindRelatedInsights("the login path", RelatedOptions{Threshold: 0.2})
	require.Len(t, loose, 2)
	assert.Equal(t, "request tracing spans all three layers", loose[0].Content)
	assert.Equal(t, "auth.py rechecks the token twice", loose[1].Content)
	assert.InDelta(t, 1.0/3.0, loose[1].Similarity, 1e-9)
}

func TestFindRelatedInsightsSubstringAnchor(t *testing.T) {
	b, store := newTestBridge(t, DefaultConfig())
	file := store.AddEntity(vocabulary.ClassFile, "db.py", nil)

	long := "the connection pool in db.py runs dry under sustained concurrent load"
	require.Equal(t, 2, b.SyncInsights(stamped([]Insight{
		{Content: long, Category: "reliability",
			Confidence: 0.8, SessionID: "s1", RelatedTo: []string{file}},
		{Content: "db.py also needs retry logic", Category: "reliability",
			Confidence: 0.7, SessionID: "s1", RelatedTo: []string{file}},
	})))

	// Mid-content text locates the anchor; matching is not prefix-bound.
	related := b.FindRelatedInsights("Pool in db.py runs DRY", RelatedOptions{})
	require.Len(t, related, 1)
	assert.Equal(t, "db.py also needs retry logic", related[0].Content)

	// Lookups longer than 50 characters are compared on their first 50, so a
	// divergent tail past that point still finds the anchor.
	withTail := long + " and during nightly batch imports"
	related = b.FindRelatedInsights(withTail, RelatedOptions{})
	require.Len(t, related, 1)
	assert.Equal(t, "db.py also needs retry logic", related[0].Content)
}

func TestWordSetTokenization(t *testing.T) {
	set := wordSet("Database, performance; and OPTIMIZATION!")
	assert.Equal(t, map[string]bool{
		"database": true, "performance": true, "and": true, "optimization": true,
	}, set)
}

func TestLexicalJaccard(t *testing.T) {
	a := wordSet("database performance")
	c := wordSet("database performance and optimization")

	assert.InDelta(t, 0.5, lexicalJaccard(a, c), 1e-9)
	assert.InDelta(t, 1.0, lexicalJaccard(a, a), 1e-9)
	assert.Zero(t, lexicalJaccard(a, wordSet("")))
	assert.Zero(t, lexicalJaccard(wordSet(""), wordSet("")))
}
