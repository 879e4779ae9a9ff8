package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/luminaryawards/program-api/internal/ratelimit"
)

// RateLimitStore is a Redis-backed fixed-window counter store. Window keys
// carry the window start timestamp, so a new window is a new key and old
// windows expire on their own.
type RateLimitStore struct {
	client redis.UniversalClient
	prefix string
}

// NewRateLimitStore creates a Redis-backed rate limit store.
func NewRateLimitStore(client redis.UniversalClient) *RateLimitStore {
	return &RateLimitStore{client: client, prefix: "ratelimit:"}
}

// NewRateLimitStoreWithPrefix creates a Redis rate limit store with a custom key prefix.
func NewRateLimitStoreWithPrefix(client redis.UniversalClient, prefix string) *RateLimitStore {
	return &RateLimitStore{client: client, prefix: prefix}
}

// Take counts one request against the window containing now. INCR is atomic,
// so concurrent callers across processes cannot overshoot the budget.
//
// Windows are epoch-aligned via Truncate, unlike the in-memory store, which
// anchors a window at the first request it sees. Alignment keeps every
// replica counting against the same key for the same instant; the tradeoff
// is that a client's first window can be shorter than the full period.
func (s *RateLimitStore) Take(ctx context.Context, key string, policy ratelimit.Policy, now time.Time) (ratelimit.Result, error) {
	windowStart := now.Truncate(policy.Window)
	resetAt := windowStart.Add(policy.Window)
	redisKey := s.prefix + key + ":" + strconv.FormatInt(windowStart.Unix(), 10)

	count, err := s.client.Incr(ctx, redisKey).Result()
	if err != nil {
		return ratelimit.Result{}, fmt.Errorf("ratelimit incr: %w", err)
	}
	if count == 1 {
		// Keep the key a little past the window edge so Retry-After math
		// against a slightly skewed clock still finds it.
		if err := s.client.Expire(ctx, redisKey, policy.Window+time.Second).Err(); err != nil {
			return ratelimit.Result{}, fmt.Errorf("ratelimit expire: %w", err)
		}
	}

	remaining := policy.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return ratelimit.Result{
		Allowed:   count <= int64(policy.MaxRequests),
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}
