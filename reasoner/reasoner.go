// Package reasoner derives higher-level reports from the knowledge graph:
// code patterns, improvement recommendations and maintenance-effort
// predictions. The reasoner holds no state beyond its store reference; every
// call re-evaluates the store and an empty store yields empty reports, never
// an error.
package reasoner

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/c360/semkg/graph"
	"github.com/c360/semkg/vocabulary"
)

// Thresholds for pattern detection and recommendations.
const (
	highRiskComplexity      = 10.0
	highRiskVulnerabilities = 2
	complexFunctionLimit    = 15.0
	refactorComplexity      = 20.0
	refactorTopN            = 5
	securityVulnerabilities = 3
	securityTopN            = 3
	clusterMinDependents    = 3
)

// Maintenance-effort model: weighted sum of complexity, vulnerability count
// and uncovered percentage.
const (
	effortComplexityWeight = 0.1
	effortVulnWeight       = 0.5
	effortCoverageWeight   = 0.05
	effortHighThreshold    = 5.0
	effortMediumThreshold  = 2.0
)

// Reasoner runs derivation queries against a store.
type Reasoner struct {
	store  *graph.Store
	logger *slog.Logger
}

// Option configures a Reasoner.
type Option func(*Reasoner)

// WithLogger sets the logger used for reasoning diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reasoner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a reasoner bound to the given store.
func New(store *graph.Store, opts ...Option) *Reasoner {
	r := &Reasoner{
		store:  store,
		logger: slog.Default().With("component", "reasoner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// HighRiskEntity is an entity with both high complexity and multiple
// vulnerabilities.
type HighRiskEntity struct {
	Entity          string
	Complexity      float64
	Vulnerabilities int
}

// ComplexFunction is a function whose complexity exceeds the maintainable
// threshold.
type ComplexFunction struct {
	Entity     string
	Complexity float64
}

// DependencyCluster is a hub entity that several others depend on.
type DependencyCluster struct {
	Hub        string
	Dependents []string
}

// PatternReport categorizes detected code patterns.
type PatternReport struct {
	HighRisk           []HighRiskEntity
	ComplexFunctions   []ComplexFunction
	DependencyClusters []DependencyCluster
}

// FindCodePatterns runs the pattern queries: high-risk entities (complexity
// above 10 with more than 2 vulnerabilities), complex functions (complexity
// above 15) and dependency clusters (hubs with 3 or more dependents).
func (r *Reasoner) FindCodePatterns() PatternReport {
	return PatternReport{
		HighRisk:           r.highRiskEntities(),
		ComplexFunctions:   r.complexFunctions(),
		DependencyClusters: r.dependencyClusters(),
	}
}

func (r *Reasoner) highRiskEntities() []HighRiskEntity {
	rows, err := r.store.Query(graph.Pattern{
		Select: []string{"?e", "?n"},
		Where: []graph.TriplePattern{
			{Subject: graph.Var("?e"), Predicate: graph.Const(vocabulary.PredHasVulnerability), Object: graph.Var("?v")},
		},
		GroupBy:    []string{"?e"},
		Aggregates: []graph.Aggregate{{Func: graph.AggCount, Var: "?v", As: "?n"}},
		Having:     []graph.Filter{{Var: "?n", Op: graph.OpGT, Operand: strconv.Itoa(highRiskVulnerabilities)}},
		OrderBy:    "?n",
		Descending: true,
	})
	if err != nil {
		r.logger.Error("high-risk pattern query failed", "error", err)
		return nil
	}

	var out []HighRiskEntity
	for _, row := range rows {
		complexity, ok := r.store.LatestMetric(row["?e"], "complexity")
		if !ok || complexity <= highRiskComplexity {
			continue
		}
		count, _ := strconv.Atoi(row["?n"])
		out = append(out, HighRiskEntity{
			Entity:          row["?e"],
			Complexity:      complexity,
			Vulnerabilities: count,
		})
	}
	return out
}

func (r *Reasoner) complexFunctions() []ComplexFunction {
	rows, err := r.store.Query(graph.Pattern{
		Select: []string{"?e", "?max"},
		Where: []graph.TriplePattern{
			{Subject: graph.Var("?e"), Predicate: graph.Const(vocabulary.PredType), Object: graph.Const(vocabulary.ClassFunction)},
			{Subject: graph.Var("?e"), Predicate: graph.Const(vocabulary.PredHasMetric), Object: graph.Var("?m")},
			{Subject: graph.Var("?m"), Predicate: graph.Const(vocabulary.PredMetricName), Object: graph.Const("complexity")},
			{Subject: graph.Var("?m"), Predicate: graph.Const(vocabulary.PredMetricValue), Object: graph.Var("?c")},
		},
		GroupBy:    []string{"?e"},
		Aggregates: []graph.Aggregate{{Func: graph.AggMax, Var: "?c", As: "?max"}},
		Having:     []graph.Filter{{Var: "?max", Op: graph.OpGT, Operand: formatFloat(complexFunctionLimit)}},
		OrderBy:    "?max",
		Descending: true,
	})
	if err != nil {
		r.logger.Error("complex-function pattern query failed", "error", err)
		return nil
	}

	var out []ComplexFunction
	for _, row := range rows {
		complexity, _ := strconv.ParseFloat(row["?max"], 64)
		out = append(out, ComplexFunction{Entity: row["?e"], Complexity: complexity})
	}
	return out
}

func (r *Reasoner) dependencyClusters() []DependencyCluster {
	rows, err := r.store.Query(graph.Pattern{
		Select: []string{"?hub", "?n"},
		Where: []graph.TriplePattern{
			{Subject: graph.Var("?d"), Predicate: graph.Const(vocabulary.PredDependsOn), Object: graph.Var("?hub")},
		},
		GroupBy:    []string{"?hub"},
		Aggregates: []graph.Aggregate{{Func: graph.AggCount, Var: "?d", As: "?n"}},
		Having:     []graph.Filter{{Var: "?n", Op: graph.OpGE, Operand: strconv.Itoa(clusterMinDependents)}},
		OrderBy:    "?n",
		Descending: true,
	})
	if err != nil {
		r.logger.Error("dependency-cluster query failed", "error", err)
		return nil
	}

	var out []DependencyCluster
	for _, row := range rows {
		hub := row["?hub"]
		depRows, err := r.store.Query(graph.Pattern{
			Select: []string{"?d"},
			Where: []graph.TriplePattern{
				{Subject: graph.Var("?d"), Predicate: graph.Const(vocabulary.PredDependsOn), Object: graph.Const(hub)},
			},
		})
		if err != nil {
			continue
		}
		seen := make(map[string]bool)
		var dependents []string
		for _, dep := range depRows {
			if d := dep["?d"]; !seen[d] {
				seen[d] = true
				dependents = append(dependents, d)
			}
		}
		if len(dependents) < clusterMinDependents {
			// Duplicate depends_on statements inflate the grouped count;
			// clusters are judged on distinct dependents.
			continue
		}
		out = append(out, DependencyCluster{Hub: hub, Dependents: dependents})
	}
	return out
}

// Recommendation is one improvement suggestion.
type Recommendation struct {
	Type           string
	Priority       string
	Target         string
	Issue          string
	Recommendation string
}

// RecommendImprovements merges refactor recommendations (top 5 entities by
// complexity above 20, priority high) with security recommendations (top 3
// entities by vulnerability count above 3, priority critical).
func (r *Reasoner) RecommendImprovements() []Recommendation {
	var out []Recommendation

	refactor, err := r.store.Query(graph.Pattern{
		Select: []string{"?e", "?max"},
		Where: []graph.TriplePattern{
			{Subject: graph.Var("?e"), Predicate: graph.Const(vocabulary.PredHasMetric), Object: graph.Var("?m")},
			{Subject: graph.Var("?m"), Predicate: graph.Const(vocabulary.PredMetricName), Object: graph.Const("complexity")},
			{Subject: graph.Var("?m"), Predicate: graph.Const(vocabulary.PredMetricValue), Object: graph.Var("?c")},
		},
		GroupBy:    []string{"?e"},
		Aggregates: []graph.Aggregate{{Func: graph.AggMax, Var: "?c", As: "?max"}},
		Having:     []graph.Filter{{Var: "?max", Op: graph.OpGT, Operand: formatFloat(refactorComplexity)}},
		OrderBy:    "?max",
		Descending: true,
		Limit:      refactorTopN,
	})
	if err != nil {
		r.logger.Error("refactor recommendation query failed", "error", err)
	}
	for _, row := range refactor {
		out = append(out, Recommendation{
			Type:           "refactor",
			Priority:       "high",
			Target:         row["?e"],
			Issue:          fmt.Sprintf("complexity %s exceeds maintainable threshold %g", row["?max"], refactorComplexity),
			Recommendation: "split into smaller, single-purpose units",
		})
	}

	security, err := r.store.Query(graph.Pattern{
		Select: []string{"?e", "?n"},
		Where: []graph.TriplePattern{
			{Subject: graph.Var("?e"), Predicate: graph.Const(vocabulary.PredHasVulnerability), Object: graph.Var("?v")},
		},
		GroupBy:    []string{"?e"},
		Aggregates: []graph.Aggregate{{Func: graph.AggCount, Var: "?v", As: "?n"}},
		Having:     []graph.Filter{{Var: "?n", Op: graph.OpGT, Operand: strconv.Itoa(securityVulnerabilities)}},
		OrderBy:    "?n",
		Descending: true,
		Limit:      securityTopN,
	})
	if err != nil {
		r.logger.Error("security recommendation query failed", "error", err)
	}
	for _, row := range security {
		out = append(out, Recommendation{
			Type:           "security",
			Priority:       "critical",
			Target:         row["?e"],
			Issue:          fmt.Sprintf("%s open vulnerabilities", row["?n"]),
			Recommendation: "triage and remediate findings before further changes",
		})
	}

	return out
}

// MaintenanceReport predicts the upkeep cost of an entity.
type MaintenanceReport struct {
	Entity          string
	Effort          float64
	RiskLevel       string
	Complexity      float64
	Vulnerabilities int
	Coverage        float64
}

// PredictMaintenanceEffort estimates maintenance effort for an entity as
// 0.1 x complexity + 0.5 x vulnerabilities + 0.05 x (100 - coverage).
// Metrics missing from the store default to zero, so an unmeasured entity
// with no vulnerabilities still scores 5.0 from its absent coverage.
func (r *Reasoner) PredictMaintenanceEffort(entity string) MaintenanceReport {
	complexity, _ := r.store.LatestMetric(entity, "complexity")
	coverage, _ := r.store.LatestMetric(entity, "coverage")
	vulns := r.store.VulnerabilityCount(entity)

	effort := effortComplexityWeight*complexity +
		effortVulnWeight*float64(vulns) +
		effortCoverageWeight*(100-coverage)

	var risk string
	switch {
	case effort > effortHighThreshold:
		risk = "high"
	case effort > effortMediumThreshold:
		risk = "medium"
	default:
		risk = "low"
	}

	return MaintenanceReport{
		Entity:          entity,
		Effort:          effort,
		RiskLevel:       risk,
		Complexity:      complexity,
		Vulnerabilities: vulns,
		Coverage:        coverage,
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
