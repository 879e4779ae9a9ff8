package ratelimit

// Package ratelimit implements fixed-window request throttling for
// public-facing submission endpoints. Counters live behind the Store
// interface so the process-local map can be swapped for a shared Redis
// counter without touching call sites.

import (
	"context"
	"log/slog"
	"time"
)

// Policy names a throttling bucket and its fixed-window budget.
type Policy struct {
	// Bucket names the route category (e.g. "newsletter", "contact").
	Bucket string
	// MaxRequests is the number of requests admitted per window.
	MaxRequests int
	// Window is the fixed window length.
	Window time.Duration
}

// Result is the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Remaining int
	ResetAt   time.Time
}

// Store performs the check-then-increment for one (identifier, bucket) key.
// Implementations must treat the sequence as atomic with respect to
// concurrent callers on the same key.
type Store interface {
	Take(ctx context.Context, key string, policy Policy, now time.Time) (Result, error)
}

// Limiter bounds request rates per identifier and policy.
//
// The window is fixed, not sliding: a burst straddling a window boundary can
// admit up to twice MaxRequests in a short span. That imprecision is accepted
// for spam throttling; do not use this for correctness-critical quotas.
type Limiter struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

// LimiterOptions groups dependencies for NewLimiter.
type LimiterOptions struct {
	Store  Store
	Logger *slog.Logger
	// Now overrides the clock for tests.
	Now func() time.Time
}

// NewLimiter constructs a Limiter. A nil store yields a limiter that always
// allows, matching the fail-open policy.
func NewLimiter(opts LimiterOptions) *Limiter {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Limiter{store: opts.Store, logger: logger, now: now}
}

// Check reports whether one more request from identifier fits inside the
// policy's current window and consumes a slot when it does.
//
// Check never returns an error: a store fault degrades to allow (fail-open)
// so limiter trouble cannot block legitimate traffic. The asymmetry with the
// fail-closed admin guard is intentional.
func (l *Limiter) Check(ctx context.Context, identifier string, policy Policy) Result {
	if l.store == nil || policy.MaxRequests <= 0 || policy.Window <= 0 {
		return Result{Allowed: true, Remaining: policy.MaxRequests}
	}

	key := policy.Bucket + ":" + identifier
	res, err := l.store.Take(ctx, key, policy, l.now())
	if err != nil {
		l.logger.WarnContext(ctx, "rate limit store failed, allowing request",
			"bucket", policy.Bucket,
			"error", err,
		)
		return Result{Allowed: true, Remaining: 0, ResetAt: l.now().Add(policy.Window)}
	}
	return res
}
