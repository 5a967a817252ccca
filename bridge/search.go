package bridge

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/c360/semkg/vocabulary"
)

// Combined search score weights: lexical similarity dominates, stored
// confidence breaks near-ties.
const (
	similarityWeight = 0.6
	confidenceWeight = 0.4
)

// overFetchFactor controls how many confidence-ranked candidates are scored
// per search relative to the requested limit.
const overFetchFactor = 2

// SearchOptions narrow a semantic search. Zero values fall back to the
// bridge config's defaults.
type SearchOptions struct {
	// Category restricts results to insights with this category label.
	Category string

	// Limit caps the result count. Zero means the config default.
	Limit int

	// MinConfidence drops insights stored below this confidence. Zero means
	// the config default; pass a negative value to disable the floor.
	MinConfidence float64
}

// SearchResult is one scored search match.
type SearchResult struct {
	ID         string
	Content    string
	Category   string
	Confidence float64
	Similarity float64
	Score      float64
}

// SemanticSearch scores stored insights against the query and returns the
// best matches, highest combined score first. The top candidates by stored
// confidence (twice the limit) are scored with word-set Jaccard similarity;
// combined score = 0.6 x similarity + 0.4 x confidence. Results are cached
// per (query, category, limit, min confidence); the cache evicts its oldest
// query when full. Empty when disabled.
func (b *Bridge) SemanticSearch(query string, opts SearchOptions) []SearchResult {
	if !b.enabled {
		return nil
	}

	if opts.Limit <= 0 {
		opts.Limit = b.config.DefaultLimit
	}
	if opts.MinConfidence == 0 {
		opts.MinConfidence = b.config.MinConfidence
	}
	if opts.MinConfidence < 0 {
		opts.MinConfidence = 0
	}

	key := fmt.Sprintf("%s|%s|%d|%g", query, opts.Category, opts.Limit, opts.MinConfidence)
	if cached, ok := b.searchCache.Get(key); ok {
		b.logger.Debug("search cache hit", "query", query)
		return cached
	}

	results := b.searchInsights(query, opts)

	if _, err := b.searchCache.Set(key, results); err != nil {
		b.logger.Warn("search cache store failed", "error", err)
	}
	if b.metrics != nil {
		b.metrics.recordSearch()
	}

	return results
}

// searchInsights runs the uncached scoring pipeline.
func (b *Bridge) searchInsights(query string, opts SearchOptions) []SearchResult {
	type candidate struct {
		id         string
		content    string
		category   string
		confidence float64
	}

	var candidates []candidate
	for _, id := range b.insightIDs() {
		content, ok := b.store.LiteralOf(id, vocabulary.PredContent)
		if !ok {
			continue
		}

		category := ""
		if cat, ok := b.store.LiteralOf(id, vocabulary.PredCategory); ok {
			category = cat.Text()
		}
		if opts.Category != "" && category != opts.Category {
			continue
		}

		confidence := 0.0
		if conf, ok := b.store.LiteralOf(id, vocabulary.PredConfidence); ok {
			if num, ok := conf.Number(); ok {
				confidence = num
			}
		}
		if confidence < opts.MinConfidence {
			continue
		}

		candidates = append(candidates, candidate{
			id:         id,
			content:    content.Text(),
			category:   category,
			confidence: confidence,
		})
	}

	// Rank by stored confidence and score only the top slice. Stable sort
	// keeps insertion order among equal confidences.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].confidence > candidates[j].confidence
	})
	if maxCandidates := opts.Limit * overFetchFactor; len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	queryWords := wordSet(query)
	results := make([]SearchResult, 0, len(candidates))
	for _, c := range candidates {
		similarity := lexicalJaccard(queryWords, wordSet(c.content))
		results = append(results, SearchResult{
			ID:         c.id,
			Content:    c.content,
			Category:   c.category,
			Confidence: c.confidence,
			Similarity: similarity,
			Score:      similarityWeight*similarity + confidenceWeight*c.confidence,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].ID < results[j].ID
	})
	if len(results) > opts.Limit {
		results = results[:opts.Limit]
	}

	return results
}

// relatedMatchRunes bounds how much of the lookup text is used to locate
// the anchor insight.
const relatedMatchRunes = 50

// RelatedOptions narrow a related-insight lookup. Zero values fall back to
// the bridge config's defaults.
type RelatedOptions struct {
	// Threshold is the minimum neighborhood similarity a match must reach.
	// Zero means the config default; pass a negative value to disable the
	// floor.
	Threshold float64

	// Limit caps the result count. Zero means the config default.
	Limit int
}

// FindRelatedInsights locates the first insight whose content contains the
// given text (case-insensitive, compared on at most its first 50
// characters), then walks the graph neighborhood: insights whose link
// structure overlaps the anchor's, at or above the similarity threshold,
// ranked by Jaccard similarity. Empty when no insight matches the text or
// the bridge is disabled.
func (b *Bridge) FindRelatedInsights(content string, opts RelatedOptions) []SearchResult {
	if !b.enabled {
		return nil
	}
	if opts.Limit <= 0 {
		opts.Limit = b.config.DefaultLimit
	}
	if opts.Threshold == 0 {
		opts.Threshold = b.config.SimilarityThreshold
	}
	if opts.Threshold < 0 {
		opts.Threshold = 0
	}

	needle := strings.ToLower(strings.TrimSpace(content))
	if runes := []rune(needle); len(runes) > relatedMatchRunes {
		needle = string(runes[:relatedMatchRunes])
	}
	if needle == "" {
		return nil
	}

	var anchor string
	for _, id := range b.insightIDs() {
		stored, ok := b.store.LiteralOf(id, vocabulary.PredContent)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(stored.Text()), needle) {
			anchor = id
			break
		}
	}
	if anchor == "" {
		b.logger.Debug("no insight matches content", "content", content)
		return nil
	}

	similar := b.store.FindSimilarEntities(anchor, opts.Threshold)

	var results []SearchResult
	for _, match := range similar {
		matched, ok := b.store.LiteralOf(match.Entity, vocabulary.PredContent)
		if !ok {
			// Neighbors that are not insights carry no content.
			continue
		}

		category := ""
		if cat, ok := b.store.LiteralOf(match.Entity, vocabulary.PredCategory); ok {
			category = cat.Text()
		}
		confidence := 0.0
		if conf, ok := b.store.LiteralOf(match.Entity, vocabulary.PredConfidence); ok {
			if num, ok := conf.Number(); ok {
				confidence = num
			}
		}

		results = append(results, SearchResult{
			ID:         match.Entity,
			Content:    matched.Text(),
			Category:   category,
			Confidence: confidence,
			Similarity: match.Similarity,
			Score:      match.Similarity,
		})
		if len(results) == opts.Limit {
			break
		}
	}

	return results
}

// wordSet lowercases and tokenizes text into its set of words. Tokens split
// on any non-letter, non-digit rune, a superset of whitespace splitting:
// "cache, please" and "cache please" produce the same set, so punctuation
// never glues words together or inflates the union.
func wordSet(text string) map[string]bool {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// lexicalJaccard computes word-set overlap between two texts.
func lexicalJaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if b[w] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}
