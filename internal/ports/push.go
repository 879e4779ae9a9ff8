package ports

import (
	"context"

	"github.com/luminaryawards/program-api/internal/domain/model"
)

// PushSender delivers one notification to one subscription endpoint.
// The transport (web-push, webhook relay) lives behind this port.
type PushSender interface {
	// Send returns ErrSubscriptionGone when the endpoint has permanently
	// rejected delivery and the subscription should be pruned.
	Send(ctx context.Context, sub model.PushSubscription, msg model.PushMessage) error
}

// ErrSubscriptionGone signals a permanently dead push endpoint.
type subscriptionGoneError struct{}

func (subscriptionGoneError) Error() string { return "push subscription gone" }

// ErrSubscriptionGone is returned by PushSender implementations when the
// remote endpoint reports the subscription no longer exists.
var ErrSubscriptionGone error = subscriptionGoneError{}
