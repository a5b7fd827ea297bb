// Package config defines process configuration and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults.
// - Layer file and environment overrides on top via Load.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"github.com/openrec/skillrank/internal/domain/model"
	"github.com/openrec/skillrank/internal/domain/rating"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// MetricsAddr configures the diagnostics HTTP listen address, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`

	// DatasetPath points at the JSON dataset with seasons, games, rosters
	// and players.
	DatasetPath string `koanf:"dataset_path"`

	// CheckpointPath points at the JSON checkpoint file. Empty keeps
	// checkpoints in memory only.
	CheckpointPath string `koanf:"checkpoint_path"`

	// OutputPath is where the exported rankings are written. Empty writes
	// to stdout.
	OutputPath string `koanf:"output_path"`

	// RunType selects "full" or "incremental".
	RunType string `koanf:"run_type"`

	// SeasonDepth limits how many most-recent seasons are rated. Zero
	// rates all seasons.
	SeasonDepth int `koanf:"season_depth"`

	// Algorithm selects the rating variant: gaussian or scalar.
	Algorithm string `koanf:"algorithm"`

	// Rating parameters.
	Baseline          float64 `koanf:"baseline"`
	InitialSigma      float64 `koanf:"initial_sigma"`
	SigmaFloor        float64 `koanf:"sigma_floor"`
	SigmaShrink       float64 `koanf:"sigma_shrink"`
	BaseRate          float64 `koanf:"base_rate"`
	RatingScale       float64 `koanf:"rating_scale"`
	SeasonDecayFactor float64 `koanf:"season_decay_factor"`
	PlayoffMultiplier float64 `koanf:"playoff_multiplier"`

	// Inactivity decay parameters.
	DecaySlowFactor float64 `koanf:"decay_slow_factor"`
	DecayFastFactor float64 `koanf:"decay_fast_factor"`
	SigmaGrowth     float64 `koanf:"sigma_growth"`
	SigmaMax        float64 `koanf:"sigma_max"`

	// JournalCapacity bounds the async progress journal.
	JournalCapacity int `koanf:"journal_capacity"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		MetricsAddr:       ":9090",
		DatasetPath:       "dataset.json",
		CheckpointPath:    "checkpoint.json",
		RunType:           string(model.RunTypeFull),
		Algorithm:         rating.AlgorithmGaussian,
		Baseline:          1200,
		InitialSigma:      200,
		SigmaFloor:        40,
		SigmaShrink:       0.94,
		BaseRate:          32,
		RatingScale:       400,
		SeasonDecayFactor: 0.82,
		PlayoffMultiplier: 1.8,
		DecaySlowFactor:   0.98,
		DecayFastFactor:   0.90,
		SigmaGrowth:       6,
		SigmaMax:          350,
		JournalCapacity:   1024,
	}
}

// Parameters converts the rating configuration into the parameter echo
// attached to every calculation run.
func (c *Config) Parameters() model.Parameters {
	return model.Parameters{
		Algorithm:         c.Algorithm,
		Baseline:          c.Baseline,
		InitialSigma:      c.InitialSigma,
		SigmaFloor:        c.SigmaFloor,
		SigmaShrink:       c.SigmaShrink,
		SigmaGrowth:       c.SigmaGrowth,
		SigmaMax:          c.SigmaMax,
		BaseRate:          c.BaseRate,
		RatingScale:       c.RatingScale,
		SeasonDecayFactor: c.SeasonDecayFactor,
		PlayoffMultiplier: c.PlayoffMultiplier,
		DecaySlowFactor:   c.DecaySlowFactor,
		DecayFastFactor:   c.DecayFastFactor,
	}
}
