package service

import (
	"context"

	"github.com/luminaryawards/program-api/internal/core"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// InquiryServiceOptions groups dependencies for InquiryService.
type InquiryServiceOptions struct {
	InquiryRepo core.InquiryRepository
}

// InquiryService handles public partnership/contact submissions and their
// back-office triage.
type InquiryService struct {
	inquiries core.InquiryRepository
}

// NewInquiryService constructs a new InquiryService.
func NewInquiryService(opts InquiryServiceOptions) *InquiryService {
	return &InquiryService{inquiries: opts.InquiryRepo}
}

// Create records a public submission.
func (s *InquiryService) Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.PartnershipInquiry, error) {
	return s.inquiries.Create(ctx, req)
}

// GetByID retrieves an inquiry by ID.
func (s *InquiryService) GetByID(ctx context.Context, id string) (*model.PartnershipInquiry, error) {
	return s.inquiries.GetByID(ctx, id)
}

// List returns a page of inquiries, optionally filtered by status.
func (s *InquiryService) List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.PartnershipInquiry, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	return s.inquiries.List(ctx, opts)
}

// Close marks an inquiry handled, attributing the action to the acting
// admin. Closing an already closed inquiry keeps the original closer.
func (s *InquiryService) Close(ctx context.Context, id, closedBy string) (*model.PartnershipInquiry, error) {
	return s.inquiries.Close(ctx, id, closedBy)
}
