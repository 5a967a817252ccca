package graph

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/c360/semkg/vocabulary"
)

// Store holds the full statement set plus secondary indexes by subject,
// predicate and asserted type. Statements are kept in insertion order;
// queries that do not sort explicitly return insertion-correlated results.
//
// The store is process-wide mutable state with no internal locking.
// Concurrent access must be serialized by the caller.
type Store struct {
	logger *slog.Logger

	statements []Statement

	// Secondary indexes: statement positions in insertion order. They exist
	// so pattern queries avoid full scans; the declarative query contract is
	// unchanged by their presence.
	bySubject   map[string][]int
	byPredicate map[string][]int

	// typesOf records asserted classes per entity, first assertion first.
	typesOf map[string][]string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for store diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New creates an empty store. The store lives for the process lifetime;
// there is no teardown path.
func New(opts ...Option) *Store {
	s := &Store{
		logger:      slog.Default().With("component", "store"),
		bySubject:   make(map[string][]int),
		byPredicate: make(map[string][]int),
		typesOf:     make(map[string][]string),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var nonAlphanumeric = regexp.MustCompile(`[^a-z0-9]+`)

// EntityID computes the deterministic entity key for a (type, name) pair.
// Both parts are lowercased and runs of non-alphanumeric characters collapse
// to single underscores, so EntityID("File", "a.py") == "file_a_py".
func EntityID(entityType, name string) string {
	normalize := func(part string) string {
		part = strings.ToLower(strings.TrimSpace(part))
		part = nonAlphanumeric.ReplaceAllString(part, "_")
		return strings.Trim(part, "_")
	}
	return normalize(entityType) + "_" + normalize(name)
}

// Assert appends a raw statement with direct confidence. This is the
// low-level append used by the ontology manager for class declarations;
// most callers want AddEntity or AddRelationship instead.
func (s *Store) Assert(subject, predicate string, object Object) {
	s.append(Statement{
		Subject:    subject,
		Predicate:  predicate,
		Object:     object,
		Source:     "store",
		Timestamp:  time.Now().UTC(),
		Confidence: confidenceDirect,
	})
}

// append records a statement and maintains the secondary indexes.
// No deduplication: the same fact asserted twice is stored twice.
func (s *Store) append(st Statement) {
	pos := len(s.statements)
	s.statements = append(s.statements, st)
	s.bySubject[st.Subject] = append(s.bySubject[st.Subject], pos)
	s.byPredicate[st.Predicate] = append(s.byPredicate[st.Predicate], pos)

	if st.Predicate == vocabulary.PredType && st.Object.IsRef() {
		s.typesOf[st.Subject] = append(s.typesOf[st.Subject], st.Object.RefID())
	}
}

// AddEntity records a typed entity and returns its deterministic id.
// A type assertion, a name property and one statement per supplied property
// are appended. The call always succeeds; repeated calls with the same
// (type, name) add duplicate statements against the same id.
func (s *Store) AddEntity(entityType, name string, properties map[string]Value) string {
	id := EntityID(entityType, name)
	now := time.Now().UTC()

	s.append(Statement{
		Subject:    id,
		Predicate:  vocabulary.PredType,
		Object:     Ref(entityType),
		Source:     "store",
		Timestamp:  now,
		Confidence: confidenceDirect,
	})
	s.append(Statement{
		Subject:    id,
		Predicate:  vocabulary.PredName,
		Object:     Lit(String(name)),
		Source:     "store",
		Timestamp:  now,
		Confidence: confidenceDirect,
	})

	for key, value := range properties {
		s.append(Statement{
			Subject:    id,
			Predicate:  key,
			Object:     Lit(value),
			Source:     "store",
			Timestamp:  now,
			Confidence: confidenceDirect,
		})
	}

	return id
}

// AddRelationship appends the direct (subject, predicate, object) statement.
// When properties are given, the relationship itself carries data: an
// auxiliary statement-node of class Relationship is materialized, linked via
// "<predicate>_relation" from the subject and via the target predicate to
// the object, with one property statement per entry.
func (s *Store) AddRelationship(subject, predicate, object string, properties map[string]Value) {
	now := time.Now().UTC()

	s.append(Statement{
		Subject:    subject,
		Predicate:  predicate,
		Object:     Ref(object),
		Source:     "store",
		Timestamp:  now,
		Confidence: confidenceDirect,
	})

	if len(properties) == 0 {
		return
	}

	nodeID := "rel_" + uuid.NewString()

	s.append(Statement{
		Subject:    subject,
		Predicate:  predicate + "_relation",
		Object:     Ref(nodeID),
		Source:     "store",
		Timestamp:  now,
		Confidence: confidenceDirect,
	})
	s.append(Statement{
		Subject:    nodeID,
		Predicate:  vocabulary.PredType,
		Object:     Ref(vocabulary.ClassRelationship),
		Source:     "store",
		Timestamp:  now,
		Confidence: confidenceDirect,
	})
	s.append(Statement{
		Subject:    nodeID,
		Predicate:  vocabulary.PredTarget,
		Object:     Ref(object),
		Source:     "store",
		Timestamp:  now,
		Confidence: confidenceDirect,
	})

	for key, value := range properties {
		s.append(Statement{
			Subject:    nodeID,
			Predicate:  key,
			Object:     Lit(value),
			Source:     "store",
			Timestamp:  now,
			Confidence: confidenceDirect,
		})
	}
}

// AddMetric appends a new metric fact for the entity. Every call creates a
// distinct metric node: metrics form an append-only time series per
// (entity, metric name) pair and are never overwritten. A zero timestamp
// defaults to the current time. Returns the metric node id.
func (s *Store) AddMetric(entity, metricName string, value float64, timestamp time.Time) string {
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}
	timestamp = timestamp.UTC()

	nodeID := fmt.Sprintf("metric_%s_%s_%d", entity, metricName, timestamp.UnixNano())

	s.append(Statement{
		Subject:    entity,
		Predicate:  vocabulary.PredHasMetric,
		Object:     Ref(nodeID),
		Source:     "store",
		Timestamp:  timestamp,
		Confidence: confidenceDirect,
	})
	s.append(Statement{
		Subject:    nodeID,
		Predicate:  vocabulary.PredType,
		Object:     Ref(vocabulary.ClassMetric),
		Source:     "store",
		Timestamp:  timestamp,
		Confidence: confidenceDirect,
	})
	s.append(Statement{
		Subject:    nodeID,
		Predicate:  vocabulary.PredMetricName,
		Object:     Lit(String(metricName)),
		Source:     "store",
		Timestamp:  timestamp,
		Confidence: confidenceDirect,
	})
	s.append(Statement{
		Subject:    nodeID,
		Predicate:  vocabulary.PredMetricValue,
		Object:     Lit(Float(value)),
		Source:     "store",
		Timestamp:  timestamp,
		Confidence: confidenceDirect,
	})
	s.append(Statement{
		Subject:    nodeID,
		Predicate:  vocabulary.PredTimestamp,
		Object:     Lit(Timestamp(timestamp)),
		Source:     "store",
		Timestamp:  timestamp,
		Confidence: confidenceDirect,
	})

	return nodeID
}

// Vulnerability is a security finding scoped to an entity.
type Vulnerability struct {
	Severity    string
	Title       string
	Description string
	Confidence  float64
}

// AddVulnerability records a finding against an entity. The finding id is
// content-addressed: a SHA-256 digest of the canonicalized fields, so the
// same finding always maps to the same node and distinct findings never
// collide. Returns the vulnerability node id.
func (s *Store) AddVulnerability(entity string, vuln Vulnerability) string {
	canonical := fmt.Sprintf("severity=%s|title=%s|description=%s|confidence=%s",
		vuln.Severity, vuln.Title, vuln.Description, Float(vuln.Confidence).Lexical())
	digest := sha256.Sum256([]byte(canonical))
	nodeID := "vuln_" + hex.EncodeToString(digest[:])

	now := time.Now().UTC()

	s.append(Statement{
		Subject:    entity,
		Predicate:  vocabulary.PredHasVulnerability,
		Object:     Ref(nodeID),
		Source:     "store",
		Timestamp:  now,
		Confidence: confidenceDirect,
	})
	s.append(Statement{
		Subject:    nodeID,
		Predicate:  vocabulary.PredType,
		Object:     Ref(vocabulary.ClassVulnerability),
		Source:     "store",
		Timestamp:  now,
		Confidence: confidenceDirect,
	})

	fields := []struct {
		predicate string
		value     Value
	}{
		{vocabulary.PredSeverity, String(vuln.Severity)},
		{vocabulary.PredTitle, String(vuln.Title)},
		{vocabulary.PredDescription, String(vuln.Description)},
		{vocabulary.PredConfidence, Float(vuln.Confidence)},
	}
	for _, f := range fields {
		s.append(Statement{
			Subject:    nodeID,
			Predicate:  f.predicate,
			Object:     Lit(f.value),
			Source:     "store",
			Timestamp:  now,
			Confidence: confidenceDirect,
		})
	}

	return nodeID
}

// Risk classification thresholds: score = vulnerability count x complexity.
const (
	riskScoreHigh   = 10
	riskScoreMedium = 5
)

// riskLevel classifies a risk score under the fixed thresholds.
func riskLevel(score float64) string {
	switch {
	case score > riskScoreHigh:
		return "high"
	case score > riskScoreMedium:
		return "medium"
	default:
		return "low"
	}
}

// InferRelationships runs the two fixed derivation rules and returns the
// number of statements asserted:
//
//  1. If entity A imports a module that entity B defines, assert
//     A depends_on B.
//  2. For every entity with a complexity metric and at least one
//     vulnerability, classify risk_score = vuln_count x latest complexity
//     and assert a risk_level literal.
//
// Re-running is idempotent in effect, not in statement count: duplicate
// depends_on and risk_level statements accumulate.
func (s *Store) InferRelationships() int {
	now := time.Now().UTC()
	added := 0

	// Rule 1: imports/defines => depends_on.
	definers := make(map[string][]string) // module key -> defining entities
	for _, pos := range s.byPredicate[vocabulary.PredDefines] {
		st := s.statements[pos]
		key := st.Object.Lexical()
		definers[key] = append(definers[key], st.Subject)
	}
	// Snapshot import positions: appends during the loop must not extend it.
	importPositions := s.byPredicate[vocabulary.PredImports]
	importCount := len(importPositions)
	for i := 0; i < importCount; i++ {
		st := s.statements[importPositions[i]]
		for _, definer := range definers[st.Object.Lexical()] {
			if definer == st.Subject {
				continue
			}
			s.append(Statement{
				Subject:    st.Subject,
				Predicate:  vocabulary.PredDependsOn,
				Object:     Ref(definer),
				Source:     "inference",
				Timestamp:  now,
				Confidence: confidenceInferred,
			})
			added++
		}
	}

	// Rule 2: vulnerability count x latest complexity => risk_level.
	vulnCounts := make(map[string]int)
	for _, pos := range s.byPredicate[vocabulary.PredHasVulnerability] {
		vulnCounts[s.statements[pos].Subject]++
	}
	for entity, count := range vulnCounts {
		complexity, ok := s.LatestMetric(entity, "complexity")
		if !ok {
			continue
		}
		score := float64(count) * complexity
		level := riskLevel(score)
		s.append(Statement{
			Subject:    entity,
			Predicate:  vocabulary.PredRiskLevel,
			Object:     Lit(String(level)),
			Source:     "inference",
			Timestamp:  now,
			Confidence: confidenceInferred,
		})
		added++
		s.logger.Debug("risk level inferred",
			"entity", entity, "score", score, "level", level)
	}

	return added
}

// Len returns the total statement count.
func (s *Store) Len() int {
	return len(s.statements)
}

// Statements returns the statement set in insertion order. The slice is
// shared; callers must treat it as read-only.
func (s *Store) Statements() []Statement {
	return s.statements
}

// TypesOf returns the classes asserted for an entity, in assertion order.
func (s *Store) TypesOf(entity string) []string {
	return s.typesOf[entity]
}

// EntitiesOfType returns the ids of entities with the given asserted class,
// in first-assertion order, each id once.
func (s *Store) EntitiesOfType(class string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, pos := range s.byPredicate[vocabulary.PredType] {
		st := s.statements[pos]
		if st.Object.RefID() != class || seen[st.Subject] {
			continue
		}
		seen[st.Subject] = true
		out = append(out, st.Subject)
	}
	return out
}

// LiteralOf returns the first literal asserted for (entity, predicate).
func (s *Store) LiteralOf(entity, predicate string) (Value, bool) {
	for _, pos := range s.bySubject[entity] {
		st := s.statements[pos]
		if st.Predicate != predicate {
			continue
		}
		if v, ok := st.Object.Value(); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Objects returns every object asserted for (entity, predicate), in
// insertion order, duplicates included.
func (s *Store) Objects(entity, predicate string) []Object {
	var out []Object
	for _, pos := range s.bySubject[entity] {
		st := s.statements[pos]
		if st.Predicate == predicate {
			out = append(out, st.Object)
		}
	}
	return out
}

// LatestMetric returns the most recent value recorded for the named metric
// on the entity, following has_metric links and comparing metric timestamps.
func (s *Store) LatestMetric(entity, metricName string) (float64, bool) {
	var (
		latest time.Time
		value  float64
		found  bool
	)
	for _, obj := range s.Objects(entity, vocabulary.PredHasMetric) {
		node := obj.RefID()
		if node == "" {
			continue
		}
		name, ok := s.LiteralOf(node, vocabulary.PredMetricName)
		if !ok || name.Text() != metricName {
			continue
		}
		val, ok := s.LiteralOf(node, vocabulary.PredMetricValue)
		if !ok {
			continue
		}
		num, ok := val.Number()
		if !ok {
			continue
		}
		ts := time.Time{}
		if tsVal, ok := s.LiteralOf(node, vocabulary.PredTimestamp); ok {
			if t, ok := tsVal.Time(); ok {
				ts = t
			}
		}
		if !found || ts.After(latest) {
			latest = ts
			value = num
			found = true
		}
	}
	return value, found
}

// VulnerabilityCount returns the number of has_vulnerability links on the
// entity. Duplicate links to the same finding count separately, matching
// the store's no-deduplication contract.
func (s *Store) VulnerabilityCount(entity string) int {
	count := 0
	for _, pos := range s.bySubject[entity] {
		if s.statements[pos].Predicate == vocabulary.PredHasVulnerability {
			count++
		}
	}
	return count
}
