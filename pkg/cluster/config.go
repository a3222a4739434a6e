package cluster

import "fmt"

// Config holds the tuning constants of the clustering
type Config struct {
	// ProjectedDim is the number of rows of the random projection. Inputs
	// with no more rows than this are used as is.
	ProjectedDim int `json:"projectedDim"`

	// SeedFraction of the budget is spent on importance sampled seeds
	SeedFraction float64 `json:"seedFraction"`

	// RelativeErrorThreshold stops refinement once the worst cluster cost is
	// below this fraction of the squared total column norm
	RelativeErrorThreshold float64 `json:"relativeErrorThreshold"`
}

// DefaultConfig returns the standard clustering constants
func DefaultConfig() Config {
	return Config{
		ProjectedDim:           50,
		SeedFraction:           0.66,
		RelativeErrorThreshold: 0.001,
	}
}

// Validate reports configuration values the clustering cannot work with
func (c Config) Validate() error {
	if c.ProjectedDim < 1 {
		return fmt.Errorf("projected dimension must be positive, got %d", c.ProjectedDim)
	}
	if c.SeedFraction <= 0 || c.SeedFraction > 1 {
		return fmt.Errorf("seed fraction must be in (0, 1], got %g", c.SeedFraction)
	}
	if c.RelativeErrorThreshold < 0 {
		return fmt.Errorf("relative error threshold must not be negative, got %g", c.RelativeErrorThreshold)
	}
	return nil
}
