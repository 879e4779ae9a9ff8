package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth uses OAuth/OIDC for authentication.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// OAuthConfig contains OAuth/OIDC configuration.
type OAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"     envDefault:"program-api"`
	ClientSecret string `env:"CLIENT_SECRET" envDefault:"program-api"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid profile email"`
	DiscoveryURL string `env:"DISCOVERY_URL"`
	LogoutURL    string `env:"LOGOUT_URL"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	UserID string `env:"USER_ID" envDefault:"dev-user"`
	Email  string `env:"EMAIL"   envDefault:"dev@example.com"`
	// Role is placed in the session's primary role claim. Leave empty to
	// exercise the stored-record fallback locally.
	Role string `env:"ROLE" envDefault:"admin"`
}

// GuardConfig tunes the admin guard's stored-record fallback.
type GuardConfig struct {
	// FallbackTimeout bounds the single stored-record role read the guard
	// performs when session claims did not resolve to admin.
	FallbackTimeout time.Duration `env:"FALLBACK_TIMEOUT" envDefault:"2s"`
}

// Sanitize applies guardrails to guard configuration values.
func (g *GuardConfig) Sanitize() {
	if g.FallbackTimeout <= 0 {
		g.FallbackTimeout = 2 * time.Second
	}
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which authentication provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// OAuth configuration (used when Mode=oauth).
	OAuth OAuthConfig `envPrefix:"OAUTH_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// Guard configuration for admin authorization.
	Guard GuardConfig `envPrefix:"AUTH_GUARD_"`

	// SessionDuration is the lifetime of a login session.
	SessionDuration time.Duration `env:"AUTH_SESSION_DURATION" envDefault:"12h"`
}

// Sanitize applies guardrails to authentication configuration values.
func (a *AuthConfig) Sanitize() {
	a.Guard.Sanitize()
	if a.SessionDuration <= 0 {
		a.SessionDuration = 12 * time.Hour
	}
}
