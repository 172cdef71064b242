package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if FASTBREAK_CONFIG is set
//  3. env (prefix FASTBREAK_)
func Load(ctx context.Context) (*Config, error) {
	// Start with defaults
	base := New(ctx)

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("FASTBREAK_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// Environment variables: FASTBREAK_MIN_GAMES, FASTBREAK_SEASONS, ...
	// Map env keys like FASTBREAK_MIN_GAMES -> min_games (flat keys)
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("FASTBREAK_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "fastbreak_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate rejects configurations no pipeline run could honor.
func (c *Config) validate() error {
	switch {
	case len(c.Seasons) == 0:
		return fmt.Errorf("%w: seasons must not be empty", ErrInvalidConfig)
	case c.MinGames < 1:
		return fmt.Errorf("%w: min_games must be at least 1", ErrInvalidConfig)
	case c.ShortWindow < 1:
		return fmt.Errorf("%w: short_window must be at least 1", ErrInvalidConfig)
	case c.LongWindow < c.ShortWindow:
		return fmt.Errorf("%w: long_window must be at least short_window", ErrInvalidConfig)
	case c.RestDayDefault < 0:
		return fmt.Errorf("%w: rest_day_default must not be negative", ErrInvalidConfig)
	case c.MatchThreshold < 0 || c.MatchThreshold > 100:
		return fmt.Errorf("%w: match_threshold must be within [0, 100]", ErrInvalidConfig)
	case c.WorkerCount < 1:
		return fmt.Errorf("%w: worker_count must be at least 1", ErrInvalidConfig)
	}
	return nil
}
