// Package pool provides a bounded worker pool for running independent
// group computations concurrently. Tasks must not share mutable state; the
// pool guarantees completion, not ordering, so deterministic output is the
// caller's contract (each task writes only its own group's slots).
package pool

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// Task is one unit of group work.
type Task func(ctx context.Context) error

// Pool runs batches of tasks over a fixed number of workers.
type Pool struct {
	size int
	name string
}

// New creates a Pool with configuration options.
func New(opts ...Option) *Pool {
	p := &Pool{
		size: runtime.NumCPU(),
		name: "pool",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes every task and waits for all of them. The first error is
// returned along with any later ones, joined; remaining tasks still run so
// a batch degrades loudly rather than half-silently.
func (p *Pool) Run(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	workers := p.size
	if workers > len(tasks) {
		workers = len(tasks)
	}
	if workers < 1 {
		workers = 1
	}

	taskCh := make(chan Task)
	errCh := make(chan error, len(tasks))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range taskCh {
				if err := ctx.Err(); err != nil {
					errCh <- fmt.Errorf("%s interrupted: %w", p.name, err)
					continue
				}
				if err := task(ctx); err != nil {
					errCh <- err
				}
			}
		}()
	}

	for _, task := range tasks {
		taskCh <- task
	}
	close(taskCh)
	wg.Wait()
	close(errCh)

	var errs []error
	for err := range errCh {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
