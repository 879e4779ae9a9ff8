package service

import (
	"context"

	"github.com/luminaryawards/program-api/internal/core"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// EventServiceOptions groups dependencies for EventService.
type EventServiceOptions struct {
	EventRepo core.EventRepository
}

// EventService orchestrates program event CRUD.
type EventService struct {
	events core.EventRepository
}

// NewEventService constructs a new EventService.
func NewEventService(opts EventServiceOptions) *EventService {
	return &EventService{events: opts.EventRepo}
}

// Create creates an event.
func (s *EventService) Create(ctx context.Context, req *model.CreateEventRequest) (*model.Event, error) {
	return s.events.Create(ctx, req)
}

// GetByID retrieves an event by ID.
func (s *EventService) GetByID(ctx context.Context, id string) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// GetBySlug retrieves an event by slug.
func (s *EventService) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	return s.events.GetBySlug(ctx, slug)
}

// List returns a page of events using normalized options.
func (s *EventService) List(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error) {
	return s.events.List(ctx, normalizeEventListOptions(opts))
}

// ListUpcoming returns published events that have not started yet,
// soonest first. Used by unauthenticated routes.
func (s *EventService) ListUpcoming(ctx context.Context, opts model.EventsListOptions) ([]*model.Event, error) {
	opts.UpcomingOnly = true
	opts.Published = nil
	return s.events.List(ctx, normalizeEventListOptions(opts))
}

// Update updates an event.
func (s *EventService) Update(ctx context.Context, id string, req model.UpdateEventRequest) (*model.Event, error) {
	return s.events.Update(ctx, id, req)
}

// Delete deletes an event.
func (s *EventService) Delete(ctx context.Context, id string) (bool, error) {
	return s.events.Delete(ctx, id)
}

func normalizeEventListOptions(opts model.EventsListOptions) model.EventsListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	// The repository picks the sort default: upcoming listings read
	// soonest-first, back-office listings newest-first.
	if opts.Dir == "" && opts.Sort != "" {
		opts.Dir = "desc"
	}

	return opts
}
