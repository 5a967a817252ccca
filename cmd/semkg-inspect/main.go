// semkg-inspect is an offline maintenance tool: it loads a saved knowledge
// graph, audits it against the ontology and prints pattern, recommendation
// and bridge statistics. It is developer tooling, not part of the library
// surface.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/c360/semkg/bridge"
	"github.com/c360/semkg/graph"
	"github.com/c360/semkg/reasoner"
)

func main() {
	configPath := flag.String("config", "", "Path to yaml config file")
	storePath := flag.String("store", "", "Saved graph file (overrides config store_path)")
	query := flag.String("query", "", "Optional semantic search to run against stored insights")
	verbose := flag.Bool("verbose", false, "Enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Error("config load failed", "error", err)
		os.Exit(1)
	}
	if *storePath != "" {
		cfg.StorePath = *storePath
	}

	store := graph.New(graph.WithLogger(logger))

	if cfg.StorePath != "" {
		if err := store.Load(cfg.StorePath); err != nil {
			logger.Error("store load failed", "path", cfg.StorePath, "error", err)
			os.Exit(1)
		}
		logger.Info("store loaded", "path", cfg.StorePath, "statements", store.Len())
	} else {
		logger.Warn("no store file given, inspecting an empty graph")
	}

	b, err := bridge.New(store, cfg.Bridge, bridge.WithLogger(logger))
	if err != nil {
		logger.Error("bridge construction failed", "error", err)
		os.Exit(1)
	}

	ok, undefined := b.ValidateGraph()
	fmt.Printf("ontology: consistent=%t\n", ok)
	for _, class := range undefined {
		fmt.Printf("  undefined class: %s\n", class)
	}

	stats := b.Stats()
	fmt.Printf("statements: %d\n", stats.GraphSize)
	fmt.Printf("insights:   %d\n", stats.InsightCount)
	fmt.Printf("cache:      %d/%d entries\n", stats.CacheSize, stats.CacheCapacity)

	if cfg.Patterns {
		printPatterns(b.InferPatterns())
	}
	if cfg.Recommendations {
		printRecommendations(b.GetRecommendations())
	}

	if *query != "" {
		results := b.SemanticSearch(*query, bridge.SearchOptions{})
		fmt.Printf("search %q: %d results\n", *query, len(results))
		for _, r := range results {
			fmt.Printf("  %.3f [%s] %s\n", r.Score, r.Category, r.Content)
		}
	}
}

func printPatterns(patterns []bridge.Pattern) {
	fmt.Printf("patterns: %d\n", len(patterns))
	for _, p := range patterns {
		fmt.Printf("  %-20s %-30s %s\n", p.Type, p.Subject, p.Description)
	}
}

func printRecommendations(recs []reasoner.Recommendation) {
	fmt.Printf("recommendations: %d\n", len(recs))
	for _, r := range recs {
		fmt.Printf("  [%s/%s] %s: %s\n", r.Type, r.Priority, r.Target, r.Recommendation)
	}
}
