// Package push delivers broadcast notifications to registered push
// endpoints through a web-push relay.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/ports"
)

// Config captures the relay connection settings.
type Config struct {
	// RelayURL is the web-push relay that signs and forwards payloads.
	// When empty, deliveries go straight to each subscription endpoint.
	RelayURL string
	// VAPIDSubject identifies the sender to push services (mailto: or URL).
	VAPIDSubject string
	Timeout      time.Duration
	RetryLimit   int
	Client       *http.Client
}

// Sender posts encrypted-payload envelopes to push endpoints. It implements
// ports.PushSender.
type Sender struct {
	relayURL     string
	vapidSubject string
	retryLimit   int
	client       *http.Client
}

var _ ports.PushSender = (*Sender)(nil)

// NewSender builds a push sender. Callers should pass a validated config.
func NewSender(cfg Config) *Sender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	retries := cfg.RetryLimit
	if retries < 0 {
		retries = 0
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Sender{
		relayURL:     strings.TrimSpace(cfg.RelayURL),
		vapidSubject: strings.TrimSpace(cfg.VAPIDSubject),
		retryLimit:   retries,
		client:       hc,
	}
}

// envelope is the JSON body handed to the relay for one delivery.
type envelope struct {
	Endpoint  string            `json:"endpoint"`
	P256dhKey string            `json:"p256dh_key"`
	AuthKey   string            `json:"auth_key"`
	Subject   string            `json:"subject,omitempty"`
	Message   model.PushMessage `json:"message"`
}

// Send delivers one message to one subscription. A 404 or 410 from the
// endpoint means the subscription is permanently dead and is reported as
// ports.ErrSubscriptionGone so the caller can prune it.
func (s *Sender) Send(ctx context.Context, sub model.PushSubscription, msg model.PushMessage) error {
	body, err := json.Marshal(envelope{
		Endpoint:  sub.Endpoint,
		P256dhKey: sub.P256dhKey,
		AuthKey:   sub.AuthKey,
		Subject:   s.vapidSubject,
		Message:   msg,
	})
	if err != nil {
		return fmt.Errorf("encode push envelope: %w", err)
	}

	target := s.relayURL
	if target == "" {
		target = sub.Endpoint
	}

	attempts := s.retryLimit + 1
	var lastErr error
	for attempt := range attempts {
		err = s.post(ctx, target, body)
		if err == nil || errors.Is(err, ports.ErrSubscriptionGone) {
			return err
		}
		lastErr = err
		if attempt < attempts-1 {
			// Simple linear backoff to avoid thundering retries.
			delay := time.Duration(attempt+1) * 200 * time.Millisecond
			timer := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				if !timer.Stop() {
					<-timer.C
				}
				return ctx.Err()
			case <-timer.C:
			}
		}
	}

	return lastErr
}

func (s *Sender) post(ctx context.Context, target string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("TTL", "86400")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("push request failed: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		if drainErr := drainBody(resp); drainErr != nil {
			return errors.Join(ports.ErrSubscriptionGone, drainErr)
		}
		return ports.ErrSubscriptionGone
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readErrorResponse(resp)
	}

	return drainBody(resp)
}

func drainBody(resp *http.Response) error {
	if _, err := io.Copy(io.Discard, resp.Body); err != nil {
		closeErr := resp.Body.Close()
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("drain push response body: %w", err),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("drain push response body: %w", err)
	}
	if err := resp.Body.Close(); err != nil {
		return fmt.Errorf("close response body: %w", err)
	}
	return nil
}

func readErrorResponse(resp *http.Response) error {
	respBody, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
	closeErr := resp.Body.Close()
	if readErr != nil {
		if closeErr != nil {
			return errors.Join(
				fmt.Errorf("read push error response: %w", readErr),
				fmt.Errorf("close response body: %w", closeErr),
			)
		}
		return fmt.Errorf("read push error response: %w", readErr)
	}
	if closeErr != nil {
		return fmt.Errorf("close response body: %w", closeErr)
	}

	return fmt.Errorf("push endpoint %s: %s", resp.Status, strings.TrimSpace(string(respBody)))
}
