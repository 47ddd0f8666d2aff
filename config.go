package zoning

import "fmt"

// Config holds the tunables for one pipeline run. The zero value is not
// meaningful; build one with DefaultConfig and adjust it with Option
// functions, or set fields directly before calling Run.
type Config struct {
	// Seed seeds every deterministic random choice in the run: k-means
	// initialization and the per-zone farthest-point sampling RNG.
	Seed int64

	// MinZoneSizeHa drops zones smaller than this after polygonization.
	MinZoneSizeHa float64

	// MaxZones bounds the candidate cluster counts the selector evaluates.
	MaxZones int

	// ForceK, when non-nil, skips cluster-count selection and requires
	// exactly this many clusters.
	ForceK *int

	// PointsPerZone is the minimum number of sample points placed in each
	// zone (more are placed when floor(sqrt(zone pixel count)) exceeds it).
	PointsPerZone int

	// UsePCA enables dimensionality reduction in the Feature Preparer.
	UsePCA bool

	// PCAVariance is the minimum cumulative explained-variance ratio PCA
	// must retain when UsePCA is true.
	PCAVariance float64
}

// Option configures a Config. Options validate eagerly: an invalid value
// returns an error immediately rather than surfacing later in the run.
type Option func(*Config) error

// DefaultConfig returns the spec's documented defaults.
func DefaultConfig() Config {
	return Config{
		Seed:          42,
		MinZoneSizeHa: 0.5,
		MaxZones:      10,
		ForceK:        nil,
		PointsPerZone: 5,
		UsePCA:        false,
		PCAVariance:   0.95,
	}
}

// New builds a Config starting from DefaultConfig and applying opts in
// order. The first option to fail aborts and returns its error.
func New(opts ...Option) (Config, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return Config{}, fmt.Errorf("zoning: invalid config option: %w", err)
		}
	}
	return cfg, nil
}

// WithSeed sets the deterministic seed.
func WithSeed(seed int64) Option {
	return func(c *Config) error {
		c.Seed = seed
		return nil
	}
}

// WithMinZoneSizeHa sets the minimum surviving zone area in hectares.
func WithMinZoneSizeHa(ha float64) Option {
	return func(c *Config) error {
		if ha < 0 {
			return fmt.Errorf("min zone size must be >= 0, got %g", ha)
		}
		c.MinZoneSizeHa = ha
		return nil
	}
}

// WithMaxZones sets the upper bound on candidate cluster counts.
func WithMaxZones(n int) Option {
	return func(c *Config) error {
		if n < 2 {
			return fmt.Errorf("max zones must be >= 2, got %d", n)
		}
		c.MaxZones = n
		return nil
	}
}

// WithForceK forces the cluster count, bypassing the Cluster Selector.
func WithForceK(k int) Option {
	return func(c *Config) error {
		if k < 2 {
			return fmt.Errorf("force_k must be >= 2, got %d", k)
		}
		c.ForceK = &k
		return nil
	}
}

// WithPointsPerZone sets the minimum sample count per zone.
func WithPointsPerZone(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return fmt.Errorf("points per zone must be >= 1, got %d", n)
		}
		c.PointsPerZone = n
		return nil
	}
}

// WithPCA enables PCA with the given explained-variance-ratio cutoff.
func WithPCA(variance float64) Option {
	return func(c *Config) error {
		if variance <= 0 || variance > 1 {
			return fmt.Errorf("pca variance must be in (0, 1], got %g", variance)
		}
		c.UsePCA = true
		c.PCAVariance = variance
		return nil
	}
}

// validate checks the fields of a Config that are not already guarded by
// the Option constructors above, used when a caller builds a Config
// literal directly instead of going through New.
func (c Config) validate() error {
	if c.MaxZones < 2 {
		return fmt.Errorf("max zones must be >= 2, got %d", c.MaxZones)
	}
	if c.PointsPerZone < 1 {
		return fmt.Errorf("points per zone must be >= 1, got %d", c.PointsPerZone)
	}
	if c.MinZoneSizeHa < 0 {
		return fmt.Errorf("min zone size must be >= 0, got %g", c.MinZoneSizeHa)
	}
	if c.ForceK != nil && *c.ForceK < 2 {
		return fmt.Errorf("force_k must be >= 2, got %d", *c.ForceK)
	}
	if c.UsePCA && (c.PCAVariance <= 0 || c.PCAVariance > 1) {
		return fmt.Errorf("pca variance must be in (0, 1], got %g", c.PCAVariance)
	}
	return nil
}
