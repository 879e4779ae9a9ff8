package model

import (
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/idna"
)

const maxEmailLen = 320

// NewsletterSubscriber represents one newsletter signup.
type NewsletterSubscriber struct {
	ID               string     `json:"id"                          db:"id"`
	Email            string     `json:"email"                       db:"email"`
	UnsubscribeToken string     `json:"-"                           db:"unsubscribe_token"`
	SubscribedAt     time.Time  `json:"subscribed_at"               db:"subscribed_at"`
	UnsubscribedAt   *time.Time `json:"unsubscribed_at,omitempty"   db:"unsubscribed_at"`
}

// Active reports whether the subscriber should receive mail.
func (s *NewsletterSubscriber) Active() bool { return s.UnsubscribedAt == nil }

// SubscribeRequest represents a public newsletter signup.
type SubscribeRequest struct {
	Email string `json:"email"`
}

// UnsubscribeRequest removes a subscriber via their opaque token.
type UnsubscribeRequest struct {
	Token string `json:"token"`
}

// NormalizeEmail lower-cases the address and converts an internationalized
// domain to its ASCII (punycode) form so lookups and the unique constraint
// see one canonical spelling.
func NormalizeEmail(raw string) (string, error) {
	addr := strings.ToLower(strings.TrimSpace(raw))
	if addr == "" {
		return "", errors.New("email is required")
	}
	if utf8.RuneCountInString(addr) > maxEmailLen {
		return "", errors.New("email is too long")
	}
	parsed, err := mail.ParseAddress(addr)
	if err != nil {
		return "", errors.New("email is not a valid address")
	}
	at := strings.LastIndex(parsed.Address, "@")
	if at <= 0 || at == len(parsed.Address)-1 {
		return "", errors.New("email is not a valid address")
	}
	local, domain := parsed.Address[:at], parsed.Address[at+1:]
	asciiDomain, err := idna.Lookup.ToASCII(domain)
	if err != nil {
		return "", errors.New("email domain is not valid")
	}
	return local + "@" + asciiDomain, nil
}

// Validate validates and canonicalizes SubscribeRequest.
func (r *SubscribeRequest) Validate() error {
	email, err := NormalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email
	return nil
}

// Validate validates UnsubscribeRequest.
func (r *UnsubscribeRequest) Validate() error {
	if strings.TrimSpace(r.Token) == "" {
		return errors.New("token is required")
	}
	return nil
}
