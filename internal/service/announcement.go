package service

import (
	"context"
	"time"

	"github.com/luminaryawards/program-api/internal/core"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// AnnouncementServiceOptions groups dependencies for AnnouncementService.
type AnnouncementServiceOptions struct {
	AnnouncementRepo core.AnnouncementRepository
}

// AnnouncementService orchestrates site-wide announcement banners.
type AnnouncementService struct {
	announcements core.AnnouncementRepository
}

// NewAnnouncementService constructs a new AnnouncementService.
func NewAnnouncementService(opts AnnouncementServiceOptions) *AnnouncementService {
	return &AnnouncementService{announcements: opts.AnnouncementRepo}
}

// Create creates an announcement.
func (s *AnnouncementService) Create(ctx context.Context, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	return s.announcements.Create(ctx, req)
}

// GetByID retrieves an announcement by ID.
func (s *AnnouncementService) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	return s.announcements.GetByID(ctx, id)
}

// ListActive returns announcements currently in their display window,
// ordered most severe first.
func (s *AnnouncementService) ListActive(ctx context.Context) ([]*model.Announcement, error) {
	return s.announcements.ListActive(ctx, time.Now())
}

// ListAll returns a page of announcements for the back office, active or not.
func (s *AnnouncementService) ListAll(ctx context.Context, limit, offset int) ([]*model.Announcement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.announcements.ListAll(ctx, limit, offset)
}

// Update updates an announcement.
func (s *AnnouncementService) Update(ctx context.Context, id string, req model.UpdateAnnouncementRequest) (*model.Announcement, error) {
	return s.announcements.Update(ctx, id, req)
}

// Delete deletes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id string) (bool, error) {
	return s.announcements.Delete(ctx, id)
}
