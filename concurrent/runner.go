package concurrent

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// WorkerFunc processes a single item. Workers report failures inside R; the
// runner never aborts a batch.
type WorkerFunc[T any, R any] func(ctx context.Context, item T) R

// RunnerConfig configures the concurrent runner
type RunnerConfig struct {
	MaxConcurrency int // 0 means unlimited concurrency
	LogPrefix      string
	Logger         *slog.Logger
}

// Runner fans a batch of items out to goroutines and gathers the results in
// input order.
type Runner[T any, R any] struct {
	config RunnerConfig
}

func NewRunner[T any, R any](config RunnerConfig) *Runner[T, R] {
	if config.LogPrefix == "" {
		config.LogPrefix = "Runner"
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	return &Runner[T, R]{
		config: config,
	}
}

// Run executes worker for every item and returns results[i] for items[i].
func (r *Runner[T, R]) Run(ctx context.Context, items []T, worker WorkerFunc[T, R]) []R {
	results := make([]R, len(items))
	if len(items) == 0 {
		return results
	}

	var g errgroup.Group
	if r.config.MaxConcurrency > 0 {
		g.SetLimit(r.config.MaxConcurrency)
	}

	r.config.Logger.Debug(r.config.LogPrefix+": start", "items", len(items), "max_concurrency", r.config.MaxConcurrency)
	for i, item := range items {
		g.Go(func() error {
			results[i] = worker(ctx, item)
			return nil
		})
	}
	_ = g.Wait()
	r.config.Logger.Debug(r.config.LogPrefix+": complete", "items", len(items))

	return results
}
