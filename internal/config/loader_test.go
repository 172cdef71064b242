package config_test

import (
	"context"
	"errors"
	"os"
	"runtime"
	"testing"

	"github.com/okian/fastbreak/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			// Clear any existing environment variables
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MinGames, convey.ShouldEqual, 10)
				convey.So(cfg.ShortWindow, convey.ShouldEqual, 3)
				convey.So(cfg.LongWindow, convey.ShouldEqual, 10)
				convey.So(cfg.MatchThreshold, convey.ShouldEqual, 85)
				convey.So(cfg.ScoringSystem, convey.ShouldEqual, "league-default")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, runtime.NumCPU())
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			// Set environment variables
			_ = os.Setenv("FASTBREAK_MIN_GAMES", "5")
			_ = os.Setenv("FASTBREAK_SHORT_WINDOW", "2")
			_ = os.Setenv("FASTBREAK_LONG_WINDOW", "8")
			_ = os.Setenv("FASTBREAK_MATCH_THRESHOLD", "90")
			_ = os.Setenv("FASTBREAK_SCORING_SYSTEM", "points-only")
			_ = os.Setenv("FASTBREAK_WORKER_COUNT", "4")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MinGames, convey.ShouldEqual, 5)
				convey.So(cfg.ShortWindow, convey.ShouldEqual, 2)
				convey.So(cfg.LongWindow, convey.ShouldEqual, 8)
				convey.So(cfg.MatchThreshold, convey.ShouldEqual, 90)
				convey.So(cfg.ScoringSystem, convey.ShouldEqual, "points-only")
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 4)
			})
		})

		convey.Convey("When loading config with YAML file", func() {
			// Create a temporary YAML config file
			yamlContent := `
raw_data_dir: /var/lib/fastbreak/raw
processed_data_dir: /var/lib/fastbreak/out
seasons:
  - "2024"
  - "2025"
min_games: 12
match_threshold: 80
manual_overrides:
  "A. Wilson": "Aja Wilson"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			// Set the config file path
			_ = os.Setenv("FASTBREAK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.RawDataDir, convey.ShouldEqual, "/var/lib/fastbreak/raw")
				convey.So(cfg.ProcessedDataDir, convey.ShouldEqual, "/var/lib/fastbreak/out")
				convey.So(cfg.Seasons, convey.ShouldResemble, []string{"2024", "2025"})
				convey.So(cfg.MinGames, convey.ShouldEqual, 12)
				convey.So(cfg.MatchThreshold, convey.ShouldEqual, 80)
				convey.So(cfg.ManualOverrides["A. Wilson"], convey.ShouldEqual, "Aja Wilson")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
min_games: 12
match_threshold: 80
worker_count: 2
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			// Set both file and environment variables
			_ = os.Setenv("FASTBREAK_CONFIG", tmpFile)
			_ = os.Setenv("FASTBREAK_MIN_GAMES", "15")   // This should override the file
			_ = os.Setenv("FASTBREAK_WORKER_COUNT", "8") // This should override the file
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then environment variables should override file values", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MinGames, convey.ShouldEqual, 15)       // Overridden by env
				convey.So(cfg.MatchThreshold, convey.ShouldEqual, 80) // From file
				convey.So(cfg.WorkerCount, convey.ShouldEqual, 8)     // Overridden by env
			})
		})

		convey.Convey("When loading config with partial YAML file", func() {
			// Create a YAML file with only some fields
			yamlContent := `
min_games: 20
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FASTBREAK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should merge with defaults for missing fields", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.MinGames, convey.ShouldEqual, 20)       // From file
				convey.So(cfg.ShortWindow, convey.ShouldEqual, 3)     // From defaults
				convey.So(cfg.LongWindow, convey.ShouldEqual, 10)     // From defaults
				convey.So(cfg.MatchThreshold, convey.ShouldEqual, 85) // From defaults
			})
		})

		convey.Convey("When loading config with invalid YAML file", func() {
			invalidYaml := `invalid: yaml: content: [`
			tmpFile := createTempConfigFile(invalidYaml)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FASTBREAK_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(errors.Is(err, config.ErrLoadConfig), convey.ShouldBeTrue)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with non-existent file", func() {
			_ = os.Setenv("FASTBREAK_CONFIG", "/non/existent/file.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When loading config with invalid numeric environment variables", func() {
			_ = os.Setenv("FASTBREAK_MIN_GAMES", "not_a_number")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should return an error", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func TestConfigLoaderValidation(t *testing.T) {
	convey.Convey("Given a config loader with out-of-range values", t, func() {
		ctx := context.Background()

		cases := []struct {
			name    string
			envVar  string
			value   string
			message string
		}{
			{"zero min games", "FASTBREAK_MIN_GAMES", "0", "min_games"},
			{"zero short window", "FASTBREAK_SHORT_WINDOW", "0", "short_window"},
			{"long window below short", "FASTBREAK_LONG_WINDOW", "1", "long_window"},
			{"negative rest default", "FASTBREAK_REST_DAY_DEFAULT", "-1", "rest_day_default"},
			{"threshold above range", "FASTBREAK_MATCH_THRESHOLD", "101", "match_threshold"},
			{"threshold below range", "FASTBREAK_MATCH_THRESHOLD", "-1", "match_threshold"},
			{"zero workers", "FASTBREAK_WORKER_COUNT", "0", "worker_count"},
		}

		for _, tc := range cases {
			convey.Convey("When loading with "+tc.name, func() {
				_ = os.Setenv(tc.envVar, tc.value)
				defer clearConfigEnvVars()

				cfg, err := config.Load(ctx)

				convey.Convey("Then it should return a validation error", func() {
					convey.So(err, convey.ShouldNotBeNil)
					convey.So(errors.Is(err, config.ErrInvalidConfig), convey.ShouldBeTrue)
					convey.So(err.Error(), convey.ShouldContainSubstring, tc.message)
					convey.So(cfg, convey.ShouldBeNil)
				})
			})
		}
	})
}

// createTempConfigFile writes content to a temp YAML file and returns its path.
func createTempConfigFile(content string) string {
	tmpFile, err := os.CreateTemp("", "fastbreak-config-*.yaml")
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

// clearConfigEnvVars removes every environment variable the loader reads.
func clearConfigEnvVars() {
	for _, key := range []string{
		"FASTBREAK_CONFIG",
		"FASTBREAK_LOG_LEVEL",
		"FASTBREAK_RAW_DATA_DIR",
		"FASTBREAK_PROCESSED_DATA_DIR",
		"FASTBREAK_SEASONS",
		"FASTBREAK_MIN_GAMES",
		"FASTBREAK_SHORT_WINDOW",
		"FASTBREAK_LONG_WINDOW",
		"FASTBREAK_REST_DAY_DEFAULT",
		"FASTBREAK_SCORING_SYSTEM",
		"FASTBREAK_SCORING_RULESETS_FILE",
		"FASTBREAK_MATCH_THRESHOLD",
		"FASTBREAK_ROSTER_FILE",
		"FASTBREAK_OBSERVED_FILE",
		"FASTBREAK_FEATURES_FILE",
		"FASTBREAK_PLAYER_MAP_FILE",
		"FASTBREAK_WORKER_COUNT",
		"FASTBREAK_METRICS_ADDR",
	} {
		_ = os.Unsetenv(key)
	}
}
