// Package bridge connects externally supplied insight records to the
// knowledge graph and answers semantic queries over them: cached lexical
// search, related-insight lookup, pattern inference and recommendation
// merging. Whether the bridge is active is decided at construction; a
// disabled bridge accepts every call and returns documented empty values.
package bridge

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/c360/semkg/errors"
	"github.com/c360/semkg/graph"
	"github.com/c360/semkg/metric"
	"github.com/c360/semkg/ontology"
	"github.com/c360/semkg/pkg/cache"
	"github.com/c360/semkg/reasoner"
	"github.com/c360/semkg/vocabulary"
)

// Insight is one externally produced knowledge record.
type Insight struct {
	Content    string
	Category   string
	Confidence float64
	Timestamp  time.Time
	SessionID  string

	// RelatedTo lists entity ids this insight should be linked to.
	RelatedTo []string
}

// Bridge owns the insight surface over an injected store. The store is a
// required constructor argument; the bridge never creates its own.
type Bridge struct {
	enabled     bool
	config      Config
	store       *graph.Store
	ontology    *ontology.Manager
	reasoner    *reasoner.Reasoner
	searchCache cache.Cache[[]SearchResult]
	logger      *slog.Logger
	metrics     *bridgeMetrics
}

// Option configures a Bridge.
type Option func(*options)

type options struct {
	logger     *slog.Logger
	metricsReg *metric.MetricsRegistry
}

// WithLogger sets the logger used for bridge diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetricsRegistry exposes bridge and search-cache statistics as
// Prometheus metrics.
func WithMetricsRegistry(registry *metric.MetricsRegistry) Option {
	return func(o *options) {
		o.metricsReg = registry
	}
}

// New creates a bridge over the given store. The ontology declarations are
// asserted into the store as part of construction. A config with Enabled
// false yields a bridge whose every operation returns its empty value.
func New(store *graph.Store, config Config, opts ...Option) (*Bridge, error) {
	if store == nil {
		return nil, errors.WrapInvalid(errors.ErrInvalidConfig, "bridge", "New", "store is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	o := &options{logger: slog.Default()}
	for _, opt := range opts {
		opt(o)
	}
	logger := o.logger.With("component", "bridge")

	b := &Bridge{
		enabled: config.Enabled,
		config:  config,
		store:   store,
		logger:  logger,
	}

	if !config.Enabled {
		b.searchCache = cache.NewNoop[[]SearchResult]()
		logger.Info("bridge disabled by configuration")
		return b, nil
	}

	var cacheOpts []cache.Option[[]SearchResult]
	if o.metricsReg != nil {
		cacheOpts = append(cacheOpts, cache.WithMetrics[[]SearchResult](o.metricsReg, "bridge_search"))

		metrics, err := newBridgeMetrics(o.metricsReg)
		if err != nil {
			return nil, err
		}
		b.metrics = metrics
	}

	searchCache, err := cache.NewFIFO[[]SearchResult](config.CacheSize, cacheOpts...)
	if err != nil {
		return nil, err
	}

	b.searchCache = searchCache
	b.ontology = ontology.NewManager(store, ontology.WithLogger(o.logger))
	b.reasoner = reasoner.New(store, reasoner.WithLogger(o.logger))

	logger.Info("bridge initialized", "cache_size", config.CacheSize)
	return b, nil
}

// SyncInsights writes insights into the graph, one entity per record, plus
// related_to links for every listed entity. Invalid records (empty content)
// are skipped and logged, never fatal. Returns the number of insights
// actually written; zero when disabled.
func (b *Bridge) SyncInsights(insights []Insight) int {
	if !b.enabled {
		return 0
	}

	synced := 0
	for i, in := range insights {
		if strings.TrimSpace(in.Content) == "" {
			b.logger.Warn("skipping insight with empty content", "index", i, "session", in.SessionID)
			continue
		}

		ts := in.Timestamp
		if ts.IsZero() {
			ts = time.Now().UTC()
		}

		id := b.store.AddEntity(vocabulary.ClassInsight, insightName(in, ts), map[string]graph.Value{
			vocabulary.PredContent:    graph.String(in.Content),
			vocabulary.PredCategory:   graph.String(in.Category),
			vocabulary.PredConfidence: graph.Float(in.Confidence),
			vocabulary.PredTimestamp:  graph.Timestamp(ts),
			vocabulary.PredSessionID:  graph.String(in.SessionID),
		})

		for _, related := range in.RelatedTo {
			if related == "" {
				continue
			}
			b.store.AddRelationship(id, vocabulary.PredRelatedTo, related, nil)
		}

		synced++
	}

	if b.metrics != nil {
		b.metrics.recordSynced(synced)
	}

	// Synced insights change search results; cached answers are stale.
	if synced > 0 {
		b.ClearCache()
	}

	b.logger.Debug("insights synced", "accepted", synced, "offered", len(insights))
	return synced
}

// insightName derives the entity name for an insight. Session and timestamp
// make concurrent sessions collision-free; identical re-syncs map to the
// same entity id and accumulate duplicate statements, matching the store's
// no-deduplication contract.
func insightName(in Insight, ts time.Time) string {
	session := in.SessionID
	if session == "" {
		session = "anon"
	}
	return fmt.Sprintf("%s_%d", session, ts.UnixNano())
}

// insightIDs returns every insight entity currently in the store.
func (b *Bridge) insightIDs() []string {
	return b.store.EntitiesOfType(vocabulary.ClassInsight)
}

// InsightCount returns the number of insight entities in the graph.
// Zero when disabled.
func (b *Bridge) InsightCount() int {
	if !b.enabled {
		return 0
	}
	return len(b.insightIDs())
}

// Pattern is one detected regularity: either a code-level pattern surfaced
// by the reasoner or an insight-category cluster.
type Pattern struct {
	Type        string
	Subject     string
	Description string
	Count       int
}

// Category clustering thresholds.
const (
	clusterMinConfidence = 0.8
	clusterMinCount      = 3
)

// InferPatterns runs the store's inference rules, collects the reasoner's
// code patterns and adds insight-category clusters: categories holding more
// than 3 insights with confidence above 0.8. Empty when disabled.
func (b *Bridge) InferPatterns() []Pattern {
	if !b.enabled {
		return nil
	}

	inferred := b.store.InferRelationships()
	b.logger.Debug("inference pass complete", "statements_added", inferred)

	var patterns []Pattern

	report := b.reasoner.FindCodePatterns()
	for _, hr := range report.HighRisk {
		patterns = append(patterns, Pattern{
			Type:        "high_risk_entity",
			Subject:     hr.Entity,
			Description: fmt.Sprintf("complexity %g with %d vulnerabilities", hr.Complexity, hr.Vulnerabilities),
			Count:       hr.Vulnerabilities,
		})
	}
	for _, cf := range report.ComplexFunctions {
		patterns = append(patterns, Pattern{
			Type:        "complex_function",
			Subject:     cf.Entity,
			Description: fmt.Sprintf("complexity %g", cf.Complexity),
			Count:       1,
		})
	}
	for _, dc := range report.DependencyClusters {
		patterns = append(patterns, Pattern{
			Type:        "dependency_cluster",
			Subject:     dc.Hub,
			Description: fmt.Sprintf("%d entities depend on this hub", len(dc.Dependents)),
			Count:       len(dc.Dependents),
		})
	}

	patterns = append(patterns, b.categoryClusters()...)
	return patterns
}

// categoryClusters finds categories with more than clusterMinCount insights
// whose stored confidence exceeds clusterMinConfidence.
func (b *Bridge) categoryClusters() []Pattern {
	counts := make(map[string]int)
	var order []string

	for _, id := range b.insightIDs() {
		conf, ok := b.store.LiteralOf(id, vocabulary.PredConfidence)
		if !ok {
			continue
		}
		num, ok := conf.Number()
		if !ok || num <= clusterMinConfidence {
			continue
		}
		category, ok := b.store.LiteralOf(id, vocabulary.PredCategory)
		if !ok || category.Text() == "" {
			continue
		}
		name := category.Text()
		if counts[name] == 0 {
			order = append(order, name)
		}
		counts[name]++
	}

	var patterns []Pattern
	for _, name := range order {
		if counts[name] > clusterMinCount {
			patterns = append(patterns, Pattern{
				Type:        "category_cluster",
				Subject:     name,
				Description: fmt.Sprintf("%d high-confidence insights in category %q", counts[name], name),
				Count:       counts[name],
			})
		}
	}
	return patterns
}

// Insight-quality thresholds for GetRecommendations.
const (
	lowConfidenceBound   = 0.5
	lowConfidenceMaximum = 10
)

// GetRecommendations merges the reasoner's improvement recommendations with
// the insight-quality rule: more than 10 insights below 0.5 confidence
// produce a medium-priority insight_quality recommendation. Empty when
// disabled.
func (b *Bridge) GetRecommendations() []reasoner.Recommendation {
	if !b.enabled {
		return nil
	}

	recs := b.reasoner.RecommendImprovements()

	lowConfidence := 0
	for _, id := range b.insightIDs() {
		conf, ok := b.store.LiteralOf(id, vocabulary.PredConfidence)
		if !ok {
			continue
		}
		if num, ok := conf.Number(); ok && num < lowConfidenceBound {
			lowConfidence++
		}
	}
	if lowConfidence > lowConfidenceMaximum {
		recs = append(recs, reasoner.Recommendation{
			Type:           "insight_quality",
			Priority:       "medium",
			Target:         "insights",
			Issue:          fmt.Sprintf("%d insights below %.1f confidence", lowConfidence, lowConfidenceBound),
			Recommendation: "review how insight confidence is assigned before trusting search ranking",
		})
	}

	return recs
}

// PredictMaintenance forwards to the reasoner's maintenance-effort model.
// The zero report when disabled.
func (b *Bridge) PredictMaintenance(entity string) reasoner.MaintenanceReport {
	if !b.enabled {
		return reasoner.MaintenanceReport{}
	}
	return b.reasoner.PredictMaintenanceEffort(entity)
}

// ValidateGraph forwards to the ontology audit. A disabled bridge has
// nothing to audit and reports the graph as consistent with no findings.
func (b *Bridge) ValidateGraph() (bool, []string) {
	if !b.enabled {
		return true, nil
	}
	return b.ontology.Validate()
}

// ClearCache drops every cached search result.
func (b *Bridge) ClearCache() {
	if err := b.searchCache.Clear(); err != nil {
		b.logger.Warn("search cache clear failed", "error", err)
	}
}

// Stats describes the bridge's current state.
type Stats struct {
	Enabled        bool
	InsightCount   int
	GraphSize      int
	CacheSize      int
	CacheCapacity  int
	CacheHits      int64
	CacheMisses    int64
	CacheEvictions int64
}

// Stats reports bridge occupancy and cache counters. A disabled bridge
// reports only Enabled=false.
func (b *Bridge) Stats() Stats {
	if !b.enabled {
		return Stats{}
	}

	s := Stats{
		Enabled:       true,
		InsightCount:  len(b.insightIDs()),
		GraphSize:     b.store.Len(),
		CacheSize:     b.searchCache.Size(),
		CacheCapacity: b.config.CacheSize,
	}
	if stats := b.searchCache.Stats(); stats != nil {
		s.CacheHits = stats.Hits()
		s.CacheMisses = stats.Misses()
		s.CacheEvictions = stats.Evictions()
	}
	return s
}
