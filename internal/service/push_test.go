package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/ports"
)

// fakePushSubscriptionRepo implements core.PushSubscriptionRepository in memory.
type fakePushSubscriptionRepo struct {
	mu   sync.Mutex
	subs map[string]*model.PushSubscription

	listErr error
}

func newFakePushSubscriptionRepo(subs ...*model.PushSubscription) *fakePushSubscriptionRepo {
	repo := &fakePushSubscriptionRepo{subs: make(map[string]*model.PushSubscription)}
	for _, sub := range subs {
		repo.subs[sub.Endpoint] = sub
	}
	return repo
}

func (f *fakePushSubscriptionRepo) Upsert(_ context.Context, req *model.RegisterPushRequest) (*model.PushSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub := &model.PushSubscription{
		ID:         "sub-" + req.Endpoint,
		Endpoint:   req.Endpoint,
		P256dhKey:  req.P256dhKey,
		AuthKey:    req.AuthKey,
		Attributes: req.Attributes,
	}
	f.subs[req.Endpoint] = sub
	return sub, nil
}

func (f *fakePushSubscriptionRepo) DeleteByEndpoint(_ context.Context, endpoint string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.subs[endpoint]
	delete(f.subs, endpoint)
	return ok, nil
}

func (f *fakePushSubscriptionRepo) ListAll(_ context.Context) ([]*model.PushSubscription, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*model.PushSubscription, 0, len(f.subs))
	for _, sub := range f.subs {
		out = append(out, sub)
	}
	return out, nil
}

// fakePushSender records deliveries and fails configured endpoints.
type fakePushSender struct {
	mu       sync.Mutex
	sent     []string
	failWith map[string]error
}

func (f *fakePushSender) Send(_ context.Context, sub model.PushSubscription, _ model.PushMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failWith[sub.Endpoint]; ok {
		return err
	}
	f.sent = append(f.sent, sub.Endpoint)
	return nil
}

func pushSub(endpoint string, attrs map[string]any) *model.PushSubscription {
	return &model.PushSubscription{
		ID:         "sub-" + endpoint,
		Endpoint:   endpoint,
		P256dhKey:  "p256dh",
		AuthKey:    "auth",
		Attributes: attrs,
	}
}

func TestPushService_Broadcast_All(t *testing.T) {
	t.Parallel()
	repo := newFakePushSubscriptionRepo(
		pushSub("https://push.example/a", map[string]any{"locale": "en"}),
		pushSub("https://push.example/b", map[string]any{"locale": "fr"}),
	)
	sender := &fakePushSender{}
	service := NewPushService(PushServiceOptions{SubscriptionRepo: repo, Sender: sender})

	result, err := service.Broadcast(context.Background(), &model.BroadcastRequest{
		Title: "Gala tickets",
		Body:  "On sale now.",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, 2, result.Sent)
	assert.Zero(t, result.Failed)
	assert.Zero(t, result.Pruned)
}

func TestPushService_Broadcast_NoSenderReportsWithoutSending(t *testing.T) {
	t.Parallel()
	repo := newFakePushSubscriptionRepo(
		pushSub("https://push.example/a", map[string]any{"locale": "en"}),
	)
	service := NewPushService(PushServiceOptions{SubscriptionRepo: repo})

	result, err := service.Broadcast(context.Background(), &model.BroadcastRequest{
		Title: "Gala tickets",
		Body:  "On sale now.",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
	assert.Zero(t, result.Sent)
	assert.Zero(t, result.Failed)
}

func TestPushService_Broadcast_AudienceFilter(t *testing.T) {
	t.Parallel()
	repo := newFakePushSubscriptionRepo(
		pushSub("https://push.example/en", map[string]any{"locale": "en"}),
		pushSub("https://push.example/fr", map[string]any{"locale": "fr"}),
		pushSub("https://push.example/bare", nil),
	)
	sender := &fakePushSender{}
	service := NewPushService(PushServiceOptions{SubscriptionRepo: repo, Sender: sender})

	result, err := service.Broadcast(context.Background(), &model.BroadcastRequest{
		Title:    "Annonce",
		Body:     "Billets en vente.",
		Audience: "locale == 'fr'",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Matched)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, []string{"https://push.example/fr"}, sender.sent)
}

func TestPushService_Broadcast_InvalidAudience(t *testing.T) {
	t.Parallel()
	service := NewPushService(PushServiceOptions{
		SubscriptionRepo: newFakePushSubscriptionRepo(),
		Sender:           &fakePushSender{},
	})

	_, err := service.Broadcast(context.Background(), &model.BroadcastRequest{
		Title:    "Bad",
		Body:     "expression",
		Audience: "locale ==",
	})
	assert.ErrorContains(t, err, "invalid audience expression")
}

func TestPushService_Broadcast_PrunesGoneEndpoints(t *testing.T) {
	t.Parallel()
	repo := newFakePushSubscriptionRepo(
		pushSub("https://push.example/live", nil),
		pushSub("https://push.example/dead", nil),
	)
	sender := &fakePushSender{
		failWith: map[string]error{
			"https://push.example/dead": ports.ErrSubscriptionGone,
		},
	}
	service := NewPushService(PushServiceOptions{SubscriptionRepo: repo, Sender: sender})

	result, err := service.Broadcast(context.Background(), &model.BroadcastRequest{
		Title: "Cleanup",
		Body:  "pass",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Pruned)

	remaining, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "https://push.example/live", remaining[0].Endpoint)
}

func TestPushService_Broadcast_DeliveryFailureIsCounted(t *testing.T) {
	t.Parallel()
	repo := newFakePushSubscriptionRepo(
		pushSub("https://push.example/ok", nil),
		pushSub("https://push.example/flaky", nil),
	)
	sender := &fakePushSender{
		failWith: map[string]error{
			"https://push.example/flaky": errors.New("503 from push gateway"),
		},
	}
	service := NewPushService(PushServiceOptions{SubscriptionRepo: repo, Sender: sender})

	result, err := service.Broadcast(context.Background(), &model.BroadcastRequest{
		Title: "Partial",
		Body:  "failure",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Matched)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)

	// The flaky endpoint stays registered for the next broadcast.
	remaining, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, remaining, 2)
}

func TestPushService_Register_And_Unregister(t *testing.T) {
	t.Parallel()
	repo := newFakePushSubscriptionRepo()
	service := NewPushService(PushServiceOptions{SubscriptionRepo: repo, Sender: &fakePushSender{}})
	ctx := context.Background()

	sub, err := service.Register(ctx, &model.RegisterPushRequest{
		Endpoint:  "https://push.example/new",
		P256dhKey: "p256dh",
		AuthKey:   "auth",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://push.example/new", sub.Endpoint)

	ok, err := service.Unregister(ctx, &model.UnregisterPushRequest{Endpoint: "https://push.example/new"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = service.Unregister(ctx, &model.UnregisterPushRequest{Endpoint: "https://push.example/new"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPushService_Unregister_InvalidEndpoint(t *testing.T) {
	t.Parallel()
	service := NewPushService(PushServiceOptions{
		SubscriptionRepo: newFakePushSubscriptionRepo(),
		Sender:           &fakePushSender{},
	})

	_, err := service.Unregister(context.Background(), &model.UnregisterPushRequest{Endpoint: "http://insecure.example"})
	assert.Error(t, err)
}
