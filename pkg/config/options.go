package config

import "time"

// Option mutates a Config during construction, mirroring the reference
// implementation's chained with_* builder methods.
type Option func(*Config)

// New builds a Config from Default() plus any options, then validates it.
func New(opts ...Option) (*Config, error) {
	c := Default()
	for _, opt := range opts {
		opt(c)
	}
	if err := Validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

// WithMinPopSize sets the minimum subpopulation size.
func WithMinPopSize(size int) Option {
	return func(c *Config) { c.MinPopSize = size }
}

// WithGenerationSize sets the per-generation offspring count.
func WithGenerationSize(size int) Option {
	return func(c *Config) { c.GenerationSize = size }
}

// WithNElite sets the number of elite individuals.
func WithNElite(n int) Option {
	return func(c *Config) { c.NElite = n }
}

// WithNClosest sets the diversity neighbourhood size.
func WithNClosest(n int) Option {
	return func(c *Config) { c.NClosest = n }
}

// WithGranularity sets the local-search candidate list size.
func WithGranularity(g int) Option {
	return func(c *Config) { c.Granularity = g }
}

// WithTargetFeasibleRatio sets the population's target feasible ratio.
func WithTargetFeasibleRatio(ratio float64) Option {
	return func(c *Config) { c.TargetFeasibleRatio = ratio }
}

// WithInitialCapacityPenalty sets the starting capacity penalty.
func WithInitialCapacityPenalty(penalty float64) Option {
	return func(c *Config) { c.InitialCapacityPenalty = penalty }
}

// WithMaxIterationsWithoutImprovement sets the stagnation termination
// threshold.
func WithMaxIterationsWithoutImprovement(iterations int) Option {
	return func(c *Config) { c.MaxIterationsWithoutImprovement = iterations }
}

// WithTimeLimit sets a wall-clock termination budget.
func WithTimeLimit(d time.Duration) Option {
	return func(c *Config) { c.TimeLimit = d }
}
