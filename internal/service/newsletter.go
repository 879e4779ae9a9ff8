package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/luminaryawards/program-api/internal/core"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// NewsletterServiceOptions groups dependencies for NewsletterService.
type NewsletterServiceOptions struct {
	NewsletterRepo core.NewsletterRepository
}

// NewsletterService handles public newsletter signups and token-based
// unsubscribes.
type NewsletterService struct {
	subscribers core.NewsletterRepository
}

// NewNewsletterService constructs a new NewsletterService.
func NewNewsletterService(opts NewsletterServiceOptions) *NewsletterService {
	return &NewsletterService{subscribers: opts.NewsletterRepo}
}

// Subscribe registers an email address. Repeat signups are idempotent and
// resubscribing after an unsubscribe reactivates the address.
func (s *NewsletterService) Subscribe(ctx context.Context, req *model.SubscribeRequest) (*model.NewsletterSubscriber, error) {
	email, err := model.NormalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	// A fresh token per call; the repository keeps the original on conflict
	// so links in previously sent mail stay valid.
	token := uuid.NewString()
	sub, err := s.subscribers.Subscribe(ctx, email, token)
	if err != nil {
		return nil, fmt.Errorf("subscribe %s: %w", email, err)
	}
	return sub, nil
}

// Unsubscribe deactivates the subscriber holding the token. Returns false
// when the token is unknown or already used.
func (s *NewsletterService) Unsubscribe(ctx context.Context, req *model.UnsubscribeRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}
	return s.subscribers.UnsubscribeByToken(ctx, req.Token)
}

// List returns a page of subscribers for the back office.
func (s *NewsletterService) List(ctx context.Context, limit, offset int, activeOnly bool) ([]*model.NewsletterSubscriber, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.subscribers.List(ctx, limit, offset, activeOnly)
}
