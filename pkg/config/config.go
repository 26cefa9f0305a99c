// Package config holds the tunable parameters of the hybrid genetic search
// and the defaulting/validation/YAML-loading machinery around them.
package config

import (
	"fmt"
	"time"

	"sigs.k8s.io/yaml"
)

// Algorithm defaults, matching the reference implementation's Config::default.
const (
	DefaultMinPopSize                      = 25
	DefaultGenerationSize                  = 40
	DefaultNElite                          = 4
	DefaultNClosest                        = 5
	DefaultGranularity                     = 20
	DefaultTargetFeasibleRatio             = 0.2
	DefaultInitialCapacityPenalty          = 1.0
	DefaultMaxIterationsWithoutImprovement = 20000
)

// Config holds every parameter the orchestrator, population manager and
// local search need. Zero-value Config is not meaningful; use Default or
// Load.
type Config struct {
	// MinPopSize is the minimum subpopulation size (mu).
	MinPopSize int `json:"minPopSize"`
	// GenerationSize is the number of offspring per generation (lambda);
	// MinPopSize+GenerationSize is the max subpopulation size before
	// survivor selection fires.
	GenerationSize int `json:"generationSize"`
	// NElite is the number of elite individuals protected from eviction
	// pressure in the biased-fitness diversity term.
	NElite int `json:"nElite"`
	// NClosest is how many nearest peers contribute to an individual's
	// diversity measure.
	NClosest int `json:"nClosest"`
	// Granularity bounds the candidate neighbour list size per customer
	// in local search.
	Granularity int `json:"granularity"`
	// TargetFeasibleRatio is the population's desired feasible/total
	// ratio; the capacity penalty adapts to track it.
	TargetFeasibleRatio float64 `json:"targetFeasibleRatio"`
	// InitialCapacityPenalty seeds the adaptive penalty before the first
	// adjustment.
	InitialCapacityPenalty float64 `json:"initialCapacityPenalty"`
	// MaxIterationsWithoutImprovement bounds the search when no time
	// limit is set, or in addition to one.
	MaxIterationsWithoutImprovement int `json:"maxIterationsWithoutImprovement"`
	// TimeLimit is an optional wall-clock budget; zero means unbounded.
	TimeLimit time.Duration `json:"timeLimit,omitempty"`
}

// Default returns a Config with the reference parameter set.
func Default() *Config {
	c := &Config{}
	SetDefaults(c)
	return c
}

// SetDefaults fills any zero-valued field of c with its default. Used both
// by Default and after decoding a partial YAML document.
func SetDefaults(c *Config) {
	if c.MinPopSize == 0 {
		c.MinPopSize = DefaultMinPopSize
	}
	if c.GenerationSize == 0 {
		c.GenerationSize = DefaultGenerationSize
	}
	if c.NElite == 0 {
		c.NElite = DefaultNElite
	}
	if c.NClosest == 0 {
		c.NClosest = DefaultNClosest
	}
	if c.Granularity == 0 {
		c.Granularity = DefaultGranularity
	}
	if c.TargetFeasibleRatio == 0 {
		c.TargetFeasibleRatio = DefaultTargetFeasibleRatio
	}
	if c.InitialCapacityPenalty == 0 {
		c.InitialCapacityPenalty = DefaultInitialCapacityPenalty
	}
	if c.MaxIterationsWithoutImprovement == 0 {
		c.MaxIterationsWithoutImprovement = DefaultMaxIterationsWithoutImprovement
	}
}

// Validate reports whether c's fields are within acceptable ranges.
func Validate(c *Config) error {
	if c.MinPopSize <= 0 {
		return fmt.Errorf("minPopSize must be positive, got %d", c.MinPopSize)
	}
	if c.GenerationSize <= 0 {
		return fmt.Errorf("generationSize must be positive, got %d", c.GenerationSize)
	}
	if c.NElite < 0 {
		return fmt.Errorf("nElite must be non-negative, got %d", c.NElite)
	}
	if c.NClosest <= 0 {
		return fmt.Errorf("nClosest must be positive, got %d", c.NClosest)
	}
	if c.Granularity <= 0 {
		return fmt.Errorf("granularity must be positive, got %d", c.Granularity)
	}
	if c.TargetFeasibleRatio < 0 || c.TargetFeasibleRatio > 1 {
		return fmt.Errorf("targetFeasibleRatio must be between 0 and 1, got %v", c.TargetFeasibleRatio)
	}
	if c.InitialCapacityPenalty <= 0 {
		return fmt.Errorf("initialCapacityPenalty must be positive, got %v", c.InitialCapacityPenalty)
	}
	if c.MaxIterationsWithoutImprovement <= 0 {
		return fmt.Errorf("maxIterationsWithoutImprovement must be positive, got %d", c.MaxIterationsWithoutImprovement)
	}
	if c.TimeLimit < 0 {
		return fmt.Errorf("timeLimit must be non-negative, got %v", c.TimeLimit)
	}
	return nil
}

// Load reads a YAML document, defaults any field it leaves zero, and
// validates the result.
func Load(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	SetDefaults(c)
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return c, nil
}
