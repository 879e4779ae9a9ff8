// Package maintenance provides the adapter that runs the periodic content
// housekeeping loop.
package maintenance

import (
	"context"
	"errors"
	"log/slog"
	"time"
)

// Housekeeper is the interface for one housekeeping pass.
type Housekeeper interface {
	Tick(ctx context.Context, now time.Time) error
}

// Runner drives the housekeeping service on a fixed interval. It constructs
// nothing itself; the service arrives fully wired.
type Runner struct {
	svc      Housekeeper
	interval time.Duration
	logger   *slog.Logger
}

// RunnerOptions holds the dependencies for creating a Runner.
type RunnerOptions struct {
	Service  Housekeeper
	Interval time.Duration
	Logger   *slog.Logger
}

// NewRunner creates a new maintenance runner with the given options.
func NewRunner(opts RunnerOptions) (*Runner, error) {
	if opts.Service == nil {
		return nil, errors.New("maintenance service is required")
	}
	interval := opts.Interval
	if interval <= 0 {
		interval = time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Runner{
		svc:      opts.Service,
		interval: interval,
		logger:   logger,
	}, nil
}

// Run starts the housekeeping loop and runs until the context is cancelled.
// It calls Tick at the configured interval. Tick errors are logged and the
// loop keeps running.
func (r *Runner) Run(ctx context.Context) error {
	r.logger.InfoContext(ctx, "starting maintenance runner", "interval", r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.InfoContext(ctx, "maintenance runner stopping", "reason", ctx.Err())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()

		case now := <-ticker.C:
			if err := r.svc.Tick(ctx, now); err != nil {
				r.logger.ErrorContext(ctx, "maintenance tick failed", "error", err)
				// Continue running despite errors
			}
		}
	}
}
