// Package config defines pipeline configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"context"
	"runtime"
)

// Config contains one pipeline run's configuration. Built once at startup
// and passed by reference into the components; nothing here mutates after
// Load returns.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// RawDataDir holds the per-season gamelog tables.
	RawDataDir string `koanf:"raw_data_dir"`

	// ProcessedDataDir receives the pipeline's output tables.
	ProcessedDataDir string `koanf:"processed_data_dir"`

	// Seasons lists the season labels whose gamelog files are included.
	Seasons []string `koanf:"seasons"`

	// MinGames is the global minimum career game count per player.
	MinGames int `koanf:"min_games"`

	// ShortWindow and LongWindow size the trailing rolling means, in games.
	ShortWindow int `koanf:"short_window"`
	LongWindow  int `koanf:"long_window"`

	// RestDayDefault is the rest-days value assumed for a player's first game.
	RestDayDefault float64 `koanf:"rest_day_default"`

	// ScoringSystem names the ruleset applied to box scores.
	ScoringSystem string `koanf:"scoring_system"`

	// ScoringRulesetsFile optionally points at a YAML file of named rulesets.
	ScoringRulesetsFile string `koanf:"scoring_rulesets_file"`

	// MatchThreshold is the entity-resolution confidence gate in [0, 100].
	MatchThreshold int `koanf:"match_threshold"`

	// ManualOverrides maps observed names to canonical names, checked
	// before any fuzzy matching.
	ManualOverrides map[string]string `koanf:"manual_overrides"`

	// RosterFile is the source-of-record roster (names plus identifiers).
	RosterFile string `koanf:"roster_file"`

	// ObservedFile is the secondary roster whose names need resolving.
	ObservedFile string `koanf:"observed_file"`

	// FeaturesFile and PlayerMapFile name the two output tables, relative
	// to ProcessedDataDir unless absolute.
	FeaturesFile  string `koanf:"features_file"`
	PlayerMapFile string `koanf:"player_map_file"`

	// WorkerCount bounds concurrent per-player feature computation.
	WorkerCount int `koanf:"worker_count"`

	// MetricsAddr optionally exposes a Prometheus scrape endpoint for the
	// duration of the run; empty disables it.
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention; it is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		RawDataDir:       "data/raw",
		ProcessedDataDir: "data/processed",
		Seasons:          []string{"2023", "2024", "2025"},
		MinGames:         10,
		ShortWindow:      3,
		LongWindow:       10,
		RestDayDefault:   7,
		ScoringSystem:    "league-default",
		MatchThreshold:   85,
		ManualOverrides:  map[string]string{},
		RosterFile:       "data/raw/roster_2025.csv",
		ObservedFile:     "data/processed/rival_roster_2025.csv",
		FeaturesFile:     "training_features.csv",
		PlayerMapFile:    "player_mapping.csv",
		WorkerCount:      runtime.NumCPU(),
	}
}
