package resolve

import (
	"github.com/okian/fastbreak/pkg/logger"
)

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithThreshold sets the confidence gate. Scores below it are dropped
// rather than risk a silent mis-identification.
func WithThreshold(threshold int) Option {
	return func(r *Resolver) {
		if threshold >= 0 && threshold <= perfectScore {
			r.threshold = threshold
		}
	}
}

// WithOverrides sets the manual correction table, observed name to
// canonical name. An override always wins over fuzzy matching.
func WithOverrides(overrides map[string]string) Option {
	return func(r *Resolver) {
		if overrides != nil {
			r.overrides = overrides
		}
	}
}

// WithLogger sets a custom logger for the resolver.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}
