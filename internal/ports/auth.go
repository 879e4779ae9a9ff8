package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
)

// BeginInput carries inputs for initiating an auth flow.
type BeginInput struct {
	RedirectURL string
}

// ExchangeInput groups parameters for the code/token exchange.
type ExchangeInput struct {
	Code  string
	State string
	Nonce string
}

// AuthProvider initiates and completes an authentication flow against an IdP.
type AuthProvider interface {
	// Begin starts the login flow and returns the provider auth URL, an opaque state, and a nonce.
	Begin(ctx context.Context, in BeginInput) (authURL, state, nonce string, err error)

	// Exchange completes the login flow, verifying state and nonce, and returns the authenticated identity.
	Exchange(ctx context.Context, in ExchangeInput) (domainauth.Identity, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// TokenDecoder extracts session claims from a raw bearer token without a
// live HTTP context. Used by tooling and debugging paths; decoding does not
// imply the token is trusted.
type TokenDecoder interface {
	Decode(raw string) (domainauth.SessionClaims, domainauth.Identity, error)
}

// StoredRoleReader is the persisted-record side of the admin guard: one
// point lookup of the authoritative role, performed with a privileged
// service credential rather than the end-user's own permissions.
type StoredRoleReader interface {
	GetRoleByID(ctx context.Context, userID string) (domainauth.Role, error)
}
