package reasoner

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/semkg/graph"
	"github.com/c360/semkg/vocabulary"
)

// buildCodebase assembles a small analyzed codebase:
//
//	parser    Function, complexity 22, 4 vulnerabilities
//	tokenizer Function, complexity 12, clean
//	legacy    File, complexity 30, 3 vulnerabilities
//	utils     Module, depended on by three files
func buildCodebase(t *testing.T) *graph.Store {
	t.Helper()
	s := graph.New()

	parser := s.AddEntity(vocabulary.ClassFunction, "parser", nil)
	s.AddMetric(parser, "complexity", 22, time.Time{})
	for i := 0; i < 4; i++ {
		s.AddVulnerability(parser, graph.Vulnerability{
			Severity:   "high",
			Title:      fmt.Sprintf("finding %d", i),
			Confidence: 0.9,
		})
	}

	tokenizer := s.AddEntity(vocabulary.ClassFunction, "tokenizer", nil)
	s.AddMetric(tokenizer, "complexity", 12, time.Time{})

	legacy := s.AddEntity(vocabulary.ClassFile, "legacy.py", nil)
	s.AddMetric(legacy, "complexity", 30, time.Time{})
	for i := 0; i < 3; i++ {
		s.AddVulnerability(legacy, graph.Vulnerability{
			Severity:   "medium",
			Title:      fmt.Sprintf("legacy finding %d", i),
			Confidence: 0.7,
		})
	}

	utils := s.AddEntity(vocabulary.ClassModule, "utils", nil)
	for _, name := range []string{"a.py", "b.py", "c.py"} {
		f := s.AddEntity(vocabulary.ClassFile, name, nil)
		s.AddRelationship(f, vocabulary.PredDependsOn, utils, nil)
	}

	return s
}

func TestFindCodePatternsHighRisk(t *testing.T) {
	r := New(buildCodebase(t))

	report := r.FindCodePatterns()
	require.Len(t, report.HighRisk, 2)

	// Sorted by vulnerability count descending.
	assert.Equal(t, "function_parser", report.HighRisk[0].Entity)
	assert.Equal(t, 4, report.HighRisk[0].Vulnerabilities)
	assert.Equal(t, 22.0, report.HighRisk[0].Complexity)

	assert.Equal(t, "file_legacy_py", report.HighRisk[1].Entity)
	assert.Equal(t, 3, report.HighRisk[1].Vulnerabilities)
}

func TestFindCodePatternsComplexFunctions(t *testing.T) {
	r := New(buildCodebase(t))

	report := r.FindCodePatterns()
	require.Len(t, report.ComplexFunctions, 1)

	// legacy.py is complex too but is a File, not a Function.
	assert.Equal(t, "function_parser", report.ComplexFunctions[0].Entity)
	assert.Equal(t, 22.0, report.ComplexFunctions[0].Complexity)
}

func TestFindCodePatternsDependencyClusters(t *testing.T) {
	r := New(buildCodebase(t))

	report := r.FindCodePatterns()
	require.Len(t, report.DependencyClusters, 1)

	cluster := report.DependencyClusters[0]
	assert.Equal(t, "module_utils", cluster.Hub)
	assert.ElementsMatch(t,
		[]string{"file_a_py", "file_b_py", "file_c_py"}, cluster.Dependents)
}

func TestDependencyClustersRequireDistinctDependents(t *testing.T) {
	s := graph.New()
	hub := s.AddEntity(vocabulary.ClassModule, "hub", nil)
	f := s.AddEntity(vocabulary.ClassFile, "only.py", nil)

	// One dependent asserted three times must not qualify as a cluster.
	for i := 0; i < 3; i++ {
		s.AddRelationship(f, vocabulary.PredDependsOn, hub, nil)
	}

	report := New(s).FindCodePatterns()
	assert.Empty(t, report.DependencyClusters)
}

func TestRecommendImprovements(t *testing.T) {
	r := New(buildCodebase(t))

	recs := r.RecommendImprovements()
	require.Len(t, recs, 3)

	// Refactor recommendations first, highest complexity first.
	assert.Equal(t, "refactor", recs[0].Type)
	assert.Equal(t, "high", recs[0].Priority)
	assert.Equal(t, "file_legacy_py", recs[0].Target)

	assert.Equal(t, "refactor", recs[1].Type)
	assert.Equal(t, "function_parser", recs[1].Target)

	// Security recommendation for the entity with more than 3 findings.
	assert.Equal(t, "security", recs[2].Type)
	assert.Equal(t, "critical", recs[2].Priority)
	assert.Equal(t, "function_parser", recs[2].Target)
}

func TestRecommendImprovementsTopNLimits(t *testing.T) {
	s := graph.New()
	for i := 0; i < 8; i++ {
		id := s.AddEntity(vocabulary.ClassFunction, fmt.Sprintf("fn%d", i), nil)
		s.AddMetric(id, "complexity", float64(25+i), time.Time{})
	}

	recs := New(s).RecommendImprovements()
	require.Len(t, recs, 5)
	// Worst offender leads.
	assert.Equal(t, "function_fn7", recs[0].Target)
}

func TestPredictMaintenanceEffort(t *testing.T) {
	s := graph.New()
	id := s.AddEntity(vocabulary.ClassFile, "svc.py", nil)
	s.AddMetric(id, "complexity", 40, time.Time{})
	s.AddMetric(id, "coverage", 50, time.Time{})
	for i := 0; i < 4; i++ {
		s.AddVulnerability(id, graph.Vulnerability{
			Severity: "high",
			Title:    fmt.Sprintf("finding %d", i),
		})
	}

	report := New(s).PredictMaintenanceEffort(id)

	// 0.1*40 + 0.5*4 + 0.05*(100-50) = 8.5
	assert.InDelta(t, 8.5, report.Effort, 1e-9)
	assert.Equal(t, "high", report.RiskLevel)
	assert.Equal(t, 40.0, report.Complexity)
	assert.Equal(t, 4, report.Vulnerabilities)
	assert.Equal(t, 50.0, report.Coverage)
}

func TestPredictMaintenanceEffortMediumBand(t *testing.T) {
	s := graph.New()
	id := s.AddEntity(vocabulary.ClassFile, "mid.py", nil)
	s.AddMetric(id, "complexity", 20, time.Time{})
	s.AddMetric(id, "coverage", 80, time.Time{})
	s.AddVulnerability(id, graph.Vulnerability{Title: "a"})
	s.AddVulnerability(id, graph.Vulnerability{Title: "b"})

	report := New(s).PredictMaintenanceEffort(id)

	// 0.1*20 + 0.5*2 + 0.05*20 = 4.0
	assert.InDelta(t, 4.0, report.Effort, 1e-9)
	assert.Equal(t, "medium", report.RiskLevel)
}

func TestPredictMaintenanceEffortMissingMetrics(t *testing.T) {
	s := graph.New()

	// Unmeasured entity: zero complexity, zero vulnerabilities, zero
	// coverage. The coverage term alone contributes 5.0.
	report := New(s).PredictMaintenanceEffort("file_unknown_py")

	assert.InDelta(t, 5.0, report.Effort, 1e-9)
	assert.Equal(t, "medium", report.RiskLevel)
	assert.Zero(t, report.Complexity)
	assert.Zero(t, report.Vulnerabilities)
}

func TestEmptyStoreYieldsEmptyReports(t *testing.T) {
	r := New(graph.New())

	report := r.FindCodePatterns()
	assert.Empty(t, report.HighRisk)
	assert.Empty(t, report.ComplexFunctions)
	assert.Empty(t, report.DependencyClusters)

	assert.Empty(t, r.RecommendImprovements())
}
