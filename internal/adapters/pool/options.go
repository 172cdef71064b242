package pool

// Option applies a configuration option to the Pool.
type Option func(*Pool)

// WithSize sets the number of worker goroutines.
func WithSize(size int) Option {
	return func(p *Pool) {
		if size > 0 {
			p.size = size
		}
	}
}

// WithName sets the pool name used in interruption errors.
func WithName(name string) Option {
	return func(p *Pool) {
		if name != "" {
			p.name = name
		}
	}
}
