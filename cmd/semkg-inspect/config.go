package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/c360/semkg/bridge"
	"github.com/c360/semkg/errors"
)

// inspectConfig is the yaml configuration for the inspect tool. Every
// section has a working default; the file only overrides.
type inspectConfig struct {
	// StorePath is the saved graph file to load (turtle or JSON).
	StorePath string `yaml:"store_path"`

	// Bridge configures the semantic bridge used for stats and search.
	Bridge bridge.Config `yaml:"bridge"`

	// Patterns toggles the reasoner pattern report.
	Patterns bool `yaml:"patterns"`

	// Recommendations toggles the recommendation report.
	Recommendations bool `yaml:"recommendations"`
}

func defaultInspectConfig() inspectConfig {
	return inspectConfig{
		Bridge:          bridge.DefaultConfig(),
		Patterns:        true,
		Recommendations: true,
	}
}

// loadConfig reads and validates a yaml config file, layered over defaults.
// An empty path returns the defaults untouched.
func loadConfig(path string) (inspectConfig, error) {
	cfg := defaultInspectConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.WrapTransient(err, "inspect", "loadConfig", "reading config file")
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.WrapInvalid(err, "inspect", "loadConfig", "parsing config file")
	}

	if err := cfg.Bridge.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
