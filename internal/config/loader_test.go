package config_test

import (
	"errors"
	"os"
	"testing"

	"github.com/smartystreets/goconvey/convey"

	"github.com/openrec/skillrank/internal/config"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		convey.Convey("When loading config with defaults only", func() {
			// Clear any existing environment variables
			clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MetricsAddr, convey.ShouldEqual, ":9090")
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "dataset.json")
				convey.So(cfg.RunType, convey.ShouldEqual, "full")
				convey.So(cfg.Algorithm, convey.ShouldEqual, "gaussian")
				convey.So(cfg.Baseline, convey.ShouldEqual, 1200)
				convey.So(cfg.BaseRate, convey.ShouldEqual, 32)
				convey.So(cfg.RatingScale, convey.ShouldEqual, 400)
				convey.So(cfg.PlayoffMultiplier, convey.ShouldEqual, 1.8)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("SKILLRANK_DATASET_PATH", "/data/league.json")
			_ = os.Setenv("SKILLRANK_RUN_TYPE", "incremental")
			_ = os.Setenv("SKILLRANK_ALGORITHM", "scalar")
			_ = os.Setenv("SKILLRANK_BASE_RATE", "24")
			_ = os.Setenv("SKILLRANK_SEASON_DEPTH", "3")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/league.json")
				convey.So(cfg.RunType, convey.ShouldEqual, "incremental")
				convey.So(cfg.Algorithm, convey.ShouldEqual, "scalar")
				convey.So(cfg.BaseRate, convey.ShouldEqual, 24)
				convey.So(cfg.SeasonDepth, convey.ShouldEqual, 3)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			yamlContent := `
dataset_path: "/data/spring.json"
checkpoint_path: "/data/spring-checkpoint.json"
run_type: "incremental"
baseline: 1500
sigma_growth: 8
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SKILLRANK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/spring.json")
				convey.So(cfg.CheckpointPath, convey.ShouldEqual, "/data/spring-checkpoint.json")
				convey.So(cfg.RunType, convey.ShouldEqual, "incremental")
				convey.So(cfg.Baseline, convey.ShouldEqual, 1500)
				convey.So(cfg.SigmaGrowth, convey.ShouldEqual, 8)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
dataset_path: "/data/spring.json"
base_rate: 16
season_depth: 2
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SKILLRANK_CONFIG", tmpFile)
			_ = os.Setenv("SKILLRANK_BASE_RATE", "48") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.BaseRate, convey.ShouldEqual, 48)                     // Overridden by env
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/spring.json") // From file
				convey.So(cfg.SeasonDepth, convey.ShouldEqual, 2)                   // From file
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SKILLRANK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a load error", func() {
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("SKILLRANK_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			yamlContent := `
dataset_path: "/data/league.json"
playoff_multiplier: 2.0
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("SKILLRANK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.DatasetPath, convey.ShouldEqual, "/data/league.json") // From file
				convey.So(cfg.PlayoffMultiplier, convey.ShouldEqual, 2.0)           // From file
				convey.So(cfg.Baseline, convey.ShouldEqual, 1200)                   // From defaults
				convey.So(cfg.RatingScale, convey.ShouldEqual, 400)                 // From defaults
				convey.So(cfg.SigmaMax, convey.ShouldEqual, 350)                    // From defaults
			})
		})
	})
}

func TestConfigValidation(t *testing.T) {
	convey.Convey("Given config validation", t, func() {
		convey.Convey("When dataset_path is empty", func() {
			_ = os.Setenv("SKILLRANK_DATASET_PATH", "")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(err.Error(), convey.ShouldContainSubstring, "dataset_path")
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When run_type is unknown", func() {
			_ = os.Setenv("SKILLRANK_RUN_TYPE", "partial")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When algorithm is unknown", func() {
			_ = os.Setenv("SKILLRANK_ALGORITHM", "glicko")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When decay factors are out of range", func() {
			_ = os.Setenv("SKILLRANK_DECAY_SLOW_FACTOR", "1.5")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the fast decay factor exceeds the slow one", func() {
			_ = os.Setenv("SKILLRANK_DECAY_SLOW_FACTOR", "0.90")
			_ = os.Setenv("SKILLRANK_DECAY_FAST_FACTOR", "0.98")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When base_rate is not positive", func() {
			_ = os.Setenv("SKILLRANK_BASE_RATE", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load()

			convey.Convey("Then it should return a validation error", func() {
				convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

// Helper functions.

func clearConfigEnvVars() {
	envVars := []string{
		"SKILLRANK_CONFIG",
		"SKILLRANK_DATASET_PATH",
		"SKILLRANK_CHECKPOINT_PATH",
		"SKILLRANK_RUN_TYPE",
		"SKILLRANK_ALGORITHM",
		"SKILLRANK_BASE_RATE",
		"SKILLRANK_SEASON_DEPTH",
		"SKILLRANK_DECAY_SLOW_FACTOR",
		"SKILLRANK_DECAY_FAST_FACTOR",
	}
	for _, envVar := range envVars {
		_ = os.Unsetenv(envVar)
	}
}

func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "skillrank-config-*.yaml")
	if err != nil {
		panic(err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		panic(err)
	}

	if err := tmpFile.Close(); err != nil {
		panic(err)
	}

	return tmpFile.Name()
}
