package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

const maxPushEndpointLen = 2048

// PushSubscription represents one browser push registration.
// Attributes is a free-form document (locale, topics, platform) that
// broadcast audience expressions are evaluated against.
type PushSubscription struct {
	ID         string         `json:"id"         db:"id"`
	Endpoint   string         `json:"endpoint"   db:"endpoint"`
	P256dhKey  string         `json:"p256dh_key" db:"p256dh_key"`
	AuthKey    string         `json:"auth_key"   db:"auth_key"`
	Attributes map[string]any `json:"attributes" db:"attributes"`
	CreatedAt  time.Time      `json:"created_at" db:"created_at"`
}

// PushMessage is the payload delivered to each subscription.
type PushMessage struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	URL   string `json:"url,omitempty"`
}

// RegisterPushRequest represents a public push-subscription registration.
type RegisterPushRequest struct {
	Endpoint   string         `json:"endpoint"`
	P256dhKey  string         `json:"p256dh_key"`
	AuthKey    string         `json:"auth_key"`
	Attributes map[string]any `json:"attributes,omitempty"`
}

// UnregisterPushRequest removes a push subscription by endpoint.
type UnregisterPushRequest struct {
	Endpoint string `json:"endpoint"`
}

// BroadcastRequest is an admin-triggered notification fan-out.
// Audience, when set, is a JMESPath expression evaluated against each
// subscription's attributes; subscriptions where it yields true receive
// the message. Empty means everyone.
type BroadcastRequest struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	URL      string `json:"url,omitempty"`
	Audience string `json:"audience,omitempty"`
}

// validatePushEndpoint checks the endpoint is an absolute https URL.
func validatePushEndpoint(raw string) error {
	if raw == "" {
		return errors.New("endpoint is required")
	}
	if len(raw) > maxPushEndpointLen {
		return errors.New("endpoint is too long")
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme != "https" || u.Host == "" {
		return errors.New("endpoint must be an absolute https URL")
	}
	return nil
}

// Validate validates RegisterPushRequest.
func (r *RegisterPushRequest) Validate() error {
	if err := validatePushEndpoint(r.Endpoint); err != nil {
		return err
	}
	if strings.TrimSpace(r.P256dhKey) == "" {
		return errors.New("p256dh_key is required")
	}
	if strings.TrimSpace(r.AuthKey) == "" {
		return errors.New("auth_key is required")
	}
	return nil
}

// Validate validates UnregisterPushRequest.
func (r *UnregisterPushRequest) Validate() error {
	return validatePushEndpoint(r.Endpoint)
}

// Validate validates BroadcastRequest. Audience syntax is checked by the
// push service, which owns the expression compiler.
func (r *BroadcastRequest) Validate() error {
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxNameLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Body) == "" {
		return errors.New("body is required and cannot be empty")
	}
	return nil
}
