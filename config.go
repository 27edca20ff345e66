package sketch

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds process-level tuning for a Canvas. Fields map to SKETCH_*
// environment variables when loaded through LoadConfig.
type Config struct {
	CurveCacheSize       int     `envconfig:"CURVE_CACHE_SIZE" default:"200"`
	CoefficientCacheSize int     `envconfig:"COEFFICIENT_CACHE_SIZE" default:"64"`
	DefaultTension       float64 `envconfig:"DEFAULT_TENSION" default:"0.5"`
	DefaultSegments      int     `envconfig:"DEFAULT_SEGMENTS" default:"25"`
	Debug                bool    `envconfig:"DEBUG" default:"false"`
	IsolateDrawErrors    bool    `envconfig:"ISOLATE_DRAW_ERRORS" default:"true"`
}

// DefaultConfig returns the built-in defaults without consulting the
// environment.
func DefaultConfig() Config {
	return Config{
		CurveCacheSize:       DefaultCurveCacheSize,
		CoefficientCacheSize: 64,
		DefaultTension:       DefaultTension,
		DefaultSegments:      DefaultSegments,
		IsolateDrawErrors:    true,
	}
}

// LoadConfig reads SKETCH_* environment variables over the defaults.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("sketch", &cfg); err != nil {
		return Config{}, fmt.Errorf("sketch: load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects sizes that cannot back a cache.
func (c Config) Validate() error {
	if c.CurveCacheSize <= 0 {
		return fmt.Errorf("sketch: curve cache size %d: %w", c.CurveCacheSize, ErrInvalidSize)
	}
	if c.CoefficientCacheSize <= 0 {
		return fmt.Errorf("sketch: coefficient cache size %d: %w", c.CoefficientCacheSize, ErrInvalidSize)
	}
	if c.DefaultSegments <= 0 {
		return fmt.Errorf("sketch: default segments %d: %w", c.DefaultSegments, ErrInvalidSize)
	}
	return nil
}

// curveOptions returns the config's curve defaults applied to opts.
func (c Config) curveOptions(opts CurveOptions) CurveOptions {
	if opts.tensionUnset() {
		opts.Tension = c.DefaultTension
	}
	if opts.Segments == 0 {
		opts.Segments = c.DefaultSegments
	}
	return opts
}
