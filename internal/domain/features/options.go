package features

import (
	"github.com/okian/fastbreak/pkg/logger"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMinGames sets the global minimum game count per player.
func WithMinGames(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minGames = n
		}
	}
}

// WithWindows sets the short and long trailing window sizes.
func WithWindows(short, long int) Option {
	return func(e *Engine) {
		if short > 0 && long >= short {
			e.shortWindow = short
			e.longWindow = long
		}
	}
}

// WithRestDefault sets the rest-days value for a player's first game, the
// fully-rested assumption rather than a missing value.
func WithRestDefault(days float64) Option {
	return func(e *Engine) {
		if days >= 0 {
			e.restDefault = days
		}
	}
}

// WithWorkers sets how many player groups are computed concurrently.
// Output is identical to a sequential run at any setting.
func WithWorkers(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.workers = n
		}
	}
}

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
