package service

import (
	"context"

	"github.com/luminaryawards/program-api/internal/core"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// AwardeeServiceOptions groups dependencies for AwardeeService.
type AwardeeServiceOptions struct {
	AwardeeRepo core.AwardeeRepository
}

// AwardeeService orchestrates awardee CRUD. Validation lives on the request
// types; the repository layer maps constraint violations to typed errors.
type AwardeeService struct {
	awardees core.AwardeeRepository
}

// NewAwardeeService constructs a new AwardeeService.
func NewAwardeeService(opts AwardeeServiceOptions) *AwardeeService {
	return &AwardeeService{awardees: opts.AwardeeRepo}
}

// Create creates an awardee.
func (s *AwardeeService) Create(ctx context.Context, req *model.CreateAwardeeRequest) (*model.Awardee, error) {
	return s.awardees.Create(ctx, req)
}

// GetByID retrieves an awardee by ID.
func (s *AwardeeService) GetByID(ctx context.Context, id string) (*model.Awardee, error) {
	return s.awardees.GetByID(ctx, id)
}

// GetBySlug retrieves an awardee by slug.
func (s *AwardeeService) GetBySlug(ctx context.Context, slug string) (*model.Awardee, error) {
	return s.awardees.GetBySlug(ctx, slug)
}

// List returns a page of awardees using normalized options.
func (s *AwardeeService) List(ctx context.Context, opts model.AwardeesListOptions) ([]*model.Awardee, error) {
	return s.awardees.List(ctx, normalizeAwardeeListOptions(opts))
}

// ListPublic returns a page of published awardees regardless of what the
// caller put in the Published filter. Used by unauthenticated routes.
func (s *AwardeeService) ListPublic(ctx context.Context, opts model.AwardeesListOptions) ([]*model.Awardee, error) {
	published := true
	opts.Published = &published
	return s.awardees.List(ctx, normalizeAwardeeListOptions(opts))
}

// Update updates an awardee.
func (s *AwardeeService) Update(ctx context.Context, id string, req model.UpdateAwardeeRequest) (*model.Awardee, error) {
	return s.awardees.Update(ctx, id, req)
}

// Delete deletes an awardee.
func (s *AwardeeService) Delete(ctx context.Context, id string) (bool, error) {
	return s.awardees.Delete(ctx, id)
}

func normalizeAwardeeListOptions(opts model.AwardeesListOptions) model.AwardeesListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Sort == "" {
		opts.Sort = "created_at"
	}
	if opts.Dir == "" {
		opts.Dir = "desc"
	}

	return opts
}
