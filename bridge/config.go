package bridge

import (
	"fmt"

	"github.com/c360/semkg/errors"
)

// Config controls bridge construction. Enablement is decided here, once;
// there is no runtime toggle.
type Config struct {
	// Enabled determines whether the bridge performs any work. A disabled
	// bridge accepts every call and returns documented empty values.
	Enabled bool `json:"enabled" yaml:"enabled"`

	// CacheSize bounds the search-result cache. When full, the
	// earliest-cached query is evicted first.
	CacheSize int `json:"cache_size" yaml:"cache_size"`

	// DefaultLimit is the search result limit applied when a query does not
	// specify one.
	DefaultLimit int `json:"default_limit" yaml:"default_limit"`

	// MinConfidence is the default lower bound on stored insight confidence
	// during search.
	MinConfidence float64 `json:"min_confidence" yaml:"min_confidence"`

	// SimilarityThreshold is the default lower bound on neighborhood
	// similarity for related-insight lookups.
	SimilarityThreshold float64 `json:"similarity_threshold" yaml:"similarity_threshold"`
}

// DefaultConfig returns the standard bridge configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:             true,
		CacheSize:           100,
		DefaultLimit:        5,
		MinConfidence:       0.5,
		SimilarityThreshold: 0.7,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if !c.Enabled {
		return nil
	}

	if c.CacheSize <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "bridge", "Validate",
			fmt.Sprintf("cache_size must be positive, got %d", c.CacheSize))
	}
	if c.DefaultLimit <= 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "bridge", "Validate",
			fmt.Sprintf("default_limit must be positive, got %d", c.DefaultLimit))
	}
	if c.MinConfidence < 0 || c.MinConfidence > 1 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "bridge", "Validate",
			fmt.Sprintf("min_confidence must be within [0, 1], got %g", c.MinConfidence))
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "bridge", "Validate",
			fmt.Sprintf("similarity_threshold must be within [0, 1], got %g", c.SimilarityThreshold))
	}

	return nil
}
