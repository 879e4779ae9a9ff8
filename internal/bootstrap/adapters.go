package bootstrap

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luminaryawards/program-api/internal/adapters/maintenance"
	"github.com/luminaryawards/program-api/internal/service"
)

// MaintenanceRunnerConfig contains configuration for the maintenance loop.
type MaintenanceRunnerConfig struct {
	Service  *service.MaintenanceService
	Interval time.Duration
	Logger   *slog.Logger
}

// RunMaintenance starts the content maintenance loop. It blocks until the
// context is cancelled.
func RunMaintenance(ctx context.Context, cfg MaintenanceRunnerConfig) error {
	runner, err := maintenance.NewRunner(maintenance.RunnerOptions{
		Service:  cfg.Service,
		Interval: cfg.Interval,
		Logger:   cfg.Logger,
	})
	if err != nil {
		return fmt.Errorf("create maintenance runner: %w", err)
	}

	return runner.Run(ctx)
}
