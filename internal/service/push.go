package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"

	jmespath "github.com/jmespath-community/go-jmespath"
	"golang.org/x/sync/errgroup"

	"github.com/luminaryawards/program-api/internal/core"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/ports"
)

const defaultBroadcastConcurrency = 8

// AudienceEvaluator abstracts JMESPath operations for testability.
type AudienceEvaluator interface {
	Validate(expr string) error
	Evaluate(expr string, data any) (any, error)
}

// jmespathEvaluator implements AudienceEvaluator using go-jmespath.
type jmespathEvaluator struct{}

func (jmespathEvaluator) Validate(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return nil
	}
	_, err := jmespath.Compile(expr)
	return err
}

func (jmespathEvaluator) Evaluate(expr string, data any) (any, error) {
	return jmespath.Search(expr, data)
}

// PushServiceOptions groups dependencies for PushService.
type PushServiceOptions struct {
	SubscriptionRepo core.PushSubscriptionRepository
	Sender           ports.PushSender
	Evaluator        AudienceEvaluator
	// Concurrency bounds the broadcast fan-out; defaults to 8.
	Concurrency int
	Logger      *slog.Logger
}

// PushService manages browser push registrations and admin broadcasts.
// Audience targeting is a JMESPath expression evaluated against each
// subscription's attribute document.
type PushService struct {
	subs        core.PushSubscriptionRepository
	sender      ports.PushSender
	eval        AudienceEvaluator
	concurrency int
	logger      *slog.Logger
}

// NewPushService constructs a new PushService.
func NewPushService(opts PushServiceOptions) *PushService {
	eval := opts.Evaluator
	if eval == nil {
		eval = jmespathEvaluator{}
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultBroadcastConcurrency
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PushService{
		subs:        opts.SubscriptionRepo,
		sender:      opts.Sender,
		eval:        eval,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Register upserts a push subscription keyed by endpoint.
func (s *PushService) Register(ctx context.Context, req *model.RegisterPushRequest) (*model.PushSubscription, error) {
	return s.subs.Upsert(ctx, req)
}

// Unregister removes a subscription by endpoint. Returns false when the
// endpoint was not registered.
func (s *PushService) Unregister(ctx context.Context, req *model.UnregisterPushRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, err
	}
	return s.subs.DeleteByEndpoint(ctx, req.Endpoint)
}

// BroadcastResult summarizes one fan-out.
type BroadcastResult struct {
	Matched int `json:"matched"`
	Sent    int `json:"sent"`
	Failed  int `json:"failed"`
	Pruned  int `json:"pruned"`
}

// Broadcast delivers the message to every subscription whose attributes
// satisfy the audience expression. Individual delivery failures are logged
// and counted, never fatal to the rest of the fan-out; endpoints that report
// themselves gone are pruned.
func (s *PushService) Broadcast(ctx context.Context, req *model.BroadcastRequest) (*BroadcastResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := s.eval.Validate(req.Audience); err != nil {
		return nil, fmt.Errorf("invalid audience expression: %w", err)
	}

	subs, err := s.subs.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	targets, err := s.filterAudience(req.Audience, subs)
	if err != nil {
		return nil, err
	}

	// Delivery may be disabled by configuration; report the audience size
	// without sending anything.
	if s.sender == nil {
		s.logger.WarnContext(ctx, "push delivery disabled, broadcast not sent", "matched", len(targets))
		return &BroadcastResult{Matched: len(targets)}, nil
	}

	msg := model.PushMessage{Title: req.Title, Body: req.Body, URL: req.URL}
	var sent, failed, pruned atomic.Int64

	group, gctx := errgroup.WithContext(ctx)
	group.SetLimit(s.concurrency)
	for _, sub := range targets {
		group.Go(func() error {
			sendErr := s.sender.Send(gctx, *sub, msg)
			switch {
			case sendErr == nil:
				sent.Add(1)
			case errors.Is(sendErr, ports.ErrSubscriptionGone):
				pruned.Add(1)
				if _, delErr := s.subs.DeleteByEndpoint(gctx, sub.Endpoint); delErr != nil {
					s.logger.WarnContext(gctx, "failed to prune dead subscription",
						"endpoint", sub.Endpoint,
						"error", delErr,
					)
				}
			default:
				failed.Add(1)
				s.logger.WarnContext(gctx, "push delivery failed",
					"endpoint", sub.Endpoint,
					"error", sendErr,
				)
			}
			return nil
		})
	}
	if waitErr := group.Wait(); waitErr != nil {
		return nil, waitErr
	}

	return &BroadcastResult{
		Matched: len(targets),
		Sent:    int(sent.Load()),
		Failed:  int(failed.Load()),
		Pruned:  int(pruned.Load()),
	}, nil
}

// filterAudience returns the subscriptions whose attributes make the
// expression yield boolean true. An empty expression matches everyone.
func (s *PushService) filterAudience(expr string, subs []*model.PushSubscription) ([]*model.PushSubscription, error) {
	if strings.TrimSpace(expr) == "" {
		return subs, nil
	}
	targets := make([]*model.PushSubscription, 0, len(subs))
	for _, sub := range subs {
		attrs := sub.Attributes
		if attrs == nil {
			attrs = map[string]any{}
		}
		result, err := s.eval.Evaluate(expr, attrs)
		if err != nil {
			return nil, fmt.Errorf("evaluate audience expression: %w", err)
		}
		if matched, ok := result.(bool); ok && matched {
			targets = append(targets, sub)
		}
	}
	return targets, nil
}
