package model

import (
	"fmt"
	"runtime"
	"time"
)

// Config is the complete causalia configuration
type Config struct {
	Grounding   GroundingConfig   `yaml:"grounding" mapstructure:"grounding"`
	Density     DensityConfig     `yaml:"density" mapstructure:"density"`
	Background  BackgroundConfig  `yaml:"background" mapstructure:"background"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Fit         FitConfig         `yaml:"fit" mapstructure:"fit"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	Log         LogConfig         `yaml:"log" mapstructure:"log"`
}

// GroundingConfig selects the ontology and score cutoff for every grounding decision
type GroundingConfig struct {
	Ontology string  `yaml:"ontology" mapstructure:"ontology"` // Grounding hierarchy name (e.g. "UN")
	Cutoff   float64 `yaml:"cutoff" mapstructure:"cutoff"`     // Minimum top score for well-grounded, in [0,1]
}

// DensityConfig controls kernel density estimation
type DensityConfig struct {
	Bandwidth  string `yaml:"bandwidth" mapstructure:"bandwidth"`     // "scott" or "silverman"
	GridPoints int    `yaml:"grid_points" mapstructure:"grid_points"` // Points used to report each density
}

// BackgroundConfig controls derivation of the background response sample
// when none is supplied
type BackgroundConfig struct {
	PerAdjective int    `yaml:"per_adjective" mapstructure:"per_adjective"` // Draws per adjective KDE
	Samples      int    `yaml:"samples" mapstructure:"samples"`             // Size of the background sample
	Seed         uint64 `yaml:"seed" mapstructure:"seed"`
}

// CacheConfig controls the grounding memo cache
type CacheConfig struct {
	Enabled         bool          `yaml:"enabled" mapstructure:"enabled"`
	TTL             time.Duration `yaml:"ttl" mapstructure:"ttl"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" mapstructure:"cleanup_interval"`
}

// ConcurrencyConfig controls parallel edge fitting
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// FitConfig controls how fit failures propagate
type FitConfig struct {
	FailOnDegenerate bool `yaml:"fail_on_degenerate" mapstructure:"fail_on_degenerate"` // Abort instead of skipping the edge
}

// OutputConfig controls report contents
type OutputConfig struct {
	Verbose bool   `yaml:"verbose" mapstructure:"verbose"`
	Samples int    `yaml:"samples" mapstructure:"samples"` // Draws reported per edge (0 = none)
	Seed    uint64 `yaml:"seed" mapstructure:"seed"`
}

// LogConfig selects the logger flavor
type LogConfig struct {
	Mode string `yaml:"mode" mapstructure:"mode"` // "dev" or "prod"
}

// DefaultConfig returns the standard configuration
func DefaultConfig() *Config {
	return &Config{
		Grounding: GroundingConfig{
			Ontology: "UN",
			Cutoff:   0.7,
		},
		Density: DensityConfig{
			Bandwidth:  "scott",
			GridPoints: 72,
		},
		Background: BackgroundConfig{
			PerAdjective: 20,
			Samples:      1000,
			Seed:         1,
		},
		Cache: CacheConfig{
			Enabled:         true,
			TTL:             time.Hour,
			CleanupInterval: 10 * time.Minute,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			Seed: 1,
		},
		Log: LogConfig{
			Mode: "dev",
		},
	}
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if c.Grounding.Ontology == "" {
		return fmt.Errorf("grounding.ontology must not be empty")
	}
	if c.Grounding.Cutoff < 0 || c.Grounding.Cutoff > 1 {
		return fmt.Errorf("grounding.cutoff must be in [0,1], got %g", c.Grounding.Cutoff)
	}
	switch c.Density.Bandwidth {
	case "scott", "silverman":
	default:
		return fmt.Errorf("density.bandwidth must be scott or silverman, got %q", c.Density.Bandwidth)
	}
	if c.Density.GridPoints < 0 {
		return fmt.Errorf("density.grid_points must not be negative")
	}
	if c.Background.PerAdjective <= 0 || c.Background.Samples <= 0 {
		return fmt.Errorf("background.per_adjective and background.samples must be positive")
	}
	if c.Output.Samples < 0 {
		return fmt.Errorf("output.samples must not be negative")
	}
	return nil
}
