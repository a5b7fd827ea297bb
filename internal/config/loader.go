package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/openrec/skillrank/internal/domain/model"
	"github.com/openrec/skillrank/internal/domain/rating"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SKILLRANK_CONFIG is set
//  3. env (prefix SKILLRANK_)
func Load() (*Config, error) {
	// Start with defaults
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SKILLRANK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: SKILLRANK_DATASET_PATH, SKILLRANK_BASE_RATE, ...
	// Map env keys like SKILLRANK_BASE_RATE -> base_rate (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SKILLRANK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "skillrank_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations the engine cannot run with.
func (c *Config) validate() error {
	if c.DatasetPath == "" {
		return fmt.Errorf("%w: dataset_path must not be empty", ErrInvalidConfig)
	}
	switch model.RunType(c.RunType) {
	case model.RunTypeFull, model.RunTypeIncremental:
	default:
		return fmt.Errorf("%w: unknown run_type %q", ErrInvalidConfig, c.RunType)
	}
	switch c.Algorithm {
	case rating.AlgorithmGaussian, rating.AlgorithmScalar:
	default:
		return fmt.Errorf("%w: unknown algorithm %q", ErrInvalidConfig, c.Algorithm)
	}
	if c.BaseRate <= 0 || c.RatingScale <= 0 {
		return fmt.Errorf("%w: base_rate and rating_scale must be positive", ErrInvalidConfig)
	}
	if c.DecaySlowFactor <= 0 || c.DecaySlowFactor >= 1 ||
		c.DecayFastFactor <= 0 || c.DecayFastFactor >= 1 {
		return fmt.Errorf("%w: decay factors must be in (0, 1)", ErrInvalidConfig)
	}
	if c.DecayFastFactor > c.DecaySlowFactor {
		return fmt.Errorf("%w: decay_fast_factor must not exceed decay_slow_factor", ErrInvalidConfig)
	}
	return nil
}
