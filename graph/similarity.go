package graph

import (
	"sort"

	"github.com/c360/semkg/vocabulary"
)

// SimilarEntity is one neighborhood-similarity match.
type SimilarEntity struct {
	Entity     string
	Similarity float64
}

// adjacency materializes the statement set as an undirected neighbor view:
// every reference statement contributes subject and object to each other's
// neighbor sets. Literal objects do not form edges, and class assertions are
// skipped so shared classes do not count as shared neighbors.
func (s *Store) adjacency() map[string]map[string]bool {
	neighbors := make(map[string]map[string]bool)
	link := func(a, b string) {
		if neighbors[a] == nil {
			neighbors[a] = make(map[string]bool)
		}
		neighbors[a][b] = true
	}
	for _, st := range s.statements {
		if !st.Object.IsRef() {
			continue
		}
		if st.Predicate == vocabulary.PredType || st.Predicate == vocabulary.PredSubClassOf {
			continue
		}
		obj := st.Object.RefID()
		if obj == "" || obj == st.Subject {
			continue
		}
		link(st.Subject, obj)
		link(obj, st.Subject)
	}
	return neighbors
}

// FindSimilarEntities computes the Jaccard overlap between the entity's
// immediate neighbor set and every other node's, returning matches at or
// above threshold sorted by similarity descending (ties by id ascending).
// The entity itself is always excluded. The adjacency view is rebuilt on
// every call from all reference statements except class membership: type
// and subclass_of edges do not contribute neighbors, otherwise every pair
// of same-typed entities would overlap through its shared class node.
func (s *Store) FindSimilarEntities(entity string, threshold float64) []SimilarEntity {
	neighbors := s.adjacency()

	base, ok := neighbors[entity]
	if !ok || len(base) == 0 {
		return nil
	}

	var matches []SimilarEntity
	for other, otherSet := range neighbors {
		if other == entity {
			continue
		}
		sim := jaccard(base, otherSet)
		if sim >= threshold {
			matches = append(matches, SimilarEntity{Entity: other, Similarity: sim})
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Similarity != matches[j].Similarity {
			return matches[i].Similarity > matches[j].Similarity
		}
		return matches[i].Entity < matches[j].Entity
	})

	return matches
}

// jaccard computes |a n b| / |a u b| over two sets.
func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
