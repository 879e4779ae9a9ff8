package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/luminaryawards/program-api/internal/core"
)

// MaintenanceServiceOptions groups dependencies for MaintenanceService.
type MaintenanceServiceOptions struct {
	PostRepo         core.PostRepository
	AnnouncementRepo core.AnnouncementRepository
	// AnnouncementRetention is how long an expired announcement is kept
	// before being pruned; defaults to 30 days.
	AnnouncementRetention time.Duration
	Logger                *slog.Logger
}

const defaultAnnouncementRetention = 30 * 24 * time.Hour

// MaintenanceService performs the periodic content housekeeping pass:
// flipping scheduled posts live and pruning long-expired announcements.
type MaintenanceService struct {
	posts         core.PostRepository
	announcements core.AnnouncementRepository
	retention     time.Duration
	logger        *slog.Logger
}

// NewMaintenanceService constructs a new MaintenanceService.
func NewMaintenanceService(opts MaintenanceServiceOptions) *MaintenanceService {
	retention := opts.AnnouncementRetention
	if retention <= 0 {
		retention = defaultAnnouncementRetention
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &MaintenanceService{
		posts:         opts.PostRepo,
		announcements: opts.AnnouncementRepo,
		retention:     retention,
		logger:        logger,
	}
}

// Tick runs one housekeeping pass at the given instant. Both steps run even
// when the first fails; errors are joined into the return.
func (s *MaintenanceService) Tick(ctx context.Context, now time.Time) error {
	var publishErr, pruneErr error

	published, publishErr := s.posts.PublishDue(ctx, now)
	if publishErr != nil {
		publishErr = fmt.Errorf("publish due posts: %w", publishErr)
	} else if published > 0 {
		s.logger.InfoContext(ctx, "published scheduled posts", "count", published)
	}

	pruned, pruneErr := s.announcements.DeleteExpired(ctx, now.Add(-s.retention))
	if pruneErr != nil {
		pruneErr = fmt.Errorf("prune expired announcements: %w", pruneErr)
	} else if pruned > 0 {
		s.logger.InfoContext(ctx, "pruned expired announcements", "count", pruned)
	}

	if publishErr != nil && pruneErr != nil {
		return fmt.Errorf("%w; %w", publishErr, pruneErr)
	}
	if publishErr != nil {
		return publishErr
	}
	return pruneErr
}
