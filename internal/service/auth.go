package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/luminaryawards/program-api/internal/core"
	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
	"github.com/luminaryawards/program-api/internal/domain/model"
	apperrors "github.com/luminaryawards/program-api/internal/errors"
	"github.com/luminaryawards/program-api/internal/ports"
)

// defaultFallbackTimeout bounds the guard's stored-record read so a slow
// database cannot stall admin requests indefinitely.
const defaultFallbackTimeout = 2 * time.Second

// GuardConfig tunes the admin guard's fallback behavior.
type GuardConfig struct {
	// FallbackTimeout bounds the single stored-record role read.
	FallbackTimeout time.Duration
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.AuthProvider
	Sessions ports.SessionStore
	// Users is the persisted-record store: sign-in upserts land here and the
	// guard's fallback role read comes from here.
	Users  core.UserRepository
	Guard  GuardConfig
	Logger *slog.Logger
}

// AuthService orchestrates authentication flows and per-request
// authorization. Role resolution is claim-first: the resolver inspects the
// session's claim candidates, and only when none of them normalizes does the
// guard fall back to one read of the stored user record.
type AuthService struct {
	provider        ports.AuthProvider
	sessions        ports.SessionStore
	users           core.UserRepository
	resolver        *domainauth.RoleResolver
	fallbackTimeout time.Duration
	logger          *slog.Logger
}

var errSessionExpired = errors.New("session expired")

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	timeout := opts.Guard.FallbackTimeout
	if timeout <= 0 {
		timeout = defaultFallbackTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		provider:        opts.Provider,
		sessions:        opts.Sessions,
		users:           opts.Users,
		resolver:        domainauth.NewRoleResolver(),
		fallbackTimeout: timeout,
		logger:          logger,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates an authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	input := ports.BeginInput{RedirectURL: redirectURL}
	authURL, state, nonce, err := s.provider.Begin(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin completes an authentication flow by exchanging the code for
// an identity, refreshing the stored user record, and persisting a session.
// The session carries the raw claim candidates; roles are resolved per
// request, never at login time.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}

	exchangeInput := ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	}
	identity, err := s.provider.Exchange(ctx, exchangeInput)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	// Refresh the stored record so the fallback path and the back office
	// always see a current email. Failure here is not fatal to login: the
	// claim path still works, and the stored role simply stays as it was.
	if s.users != nil {
		_, upsertErr := s.users.Upsert(ctx, &model.UpsertUserRequest{
			ID:          identity.UserID,
			Email:       identity.Email,
			DisplayName: displayName(identity),
		})
		if upsertErr != nil {
			s.logger.WarnContext(ctx, "user record upsert failed during login",
				"user_id", identity.UserID,
				"error", upsertErr,
			)
		}
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    identity.UserID,
		FirstName: identity.FirstName,
		LastName:  identity.LastName,
		Email:     identity.Email,
		Claims:    identity.Claims,
		ExpiresAt: identity.ExpiresAt,
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{
		Session: session,
	}, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Check if session is expired
	if time.Now().After(session.ExpiresAt) {
		// Clean up expired session
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// Resolve builds the per-request AuthContext for a session without imposing
// any privilege requirement. A nil session yields an anonymous context.
func (s *AuthService) Resolve(sess *domainauth.Session) domainauth.AuthContext {
	if sess == nil {
		return domainauth.AuthContext{RoleSource: domainauth.RoleSourceNone}
	}
	res := s.resolver.Resolve(sess.Claims)
	return domainauth.AuthContext{
		UserID:          sess.UserID,
		Email:           sess.Email,
		ResolvedRole:    res.Role,
		RoleSource:      res.Source,
		IsAuthenticated: true,
	}
}

// Authorize is the admin guard. It admits a request only when the session
// resolves to an admin-grade role, checking claims first and falling back to
// exactly one bounded read of the stored user record. The fallback also
// covers claims that are stale against a freshly promoted stored role.
//
// Denials are deliberate and fail-closed:
//   - nil session -> Unauthorized
//   - claims do not yield admin and the stored record is non-admin, missing,
//     or the read errors -> Forbidden
//
// An infrastructure error on the fallback read never admits the request; the
// error is attached as the denial's cause for logging.
func (s *AuthService) Authorize(ctx context.Context, sess *domainauth.Session) (domainauth.AuthContext, error) {
	if sess == nil {
		return domainauth.AuthContext{RoleSource: domainauth.RoleSourceNone},
			apperrors.Unauthorized("authentication required")
	}

	authCtx := domainauth.AuthContext{
		UserID:          sess.UserID,
		Email:           sess.Email,
		IsAuthenticated: true,
	}

	res := s.resolver.Resolve(sess.Claims)
	if res.Source != domainauth.RoleSourceNone {
		authCtx.ResolvedRole = res.Role
		authCtx.RoleSource = res.Source
		if res.Role.IsAdmin() {
			return authCtx, nil
		}
	}

	role, err := s.storedRole(ctx, sess.UserID)
	if err != nil {
		s.logger.WarnContext(ctx, "stored role fallback failed, denying",
			"user_id", sess.UserID,
			"error", err,
		)
		denial := apperrors.Forbidden("admin privileges required")
		denial.Cause = err
		return authCtx, denial
	}

	if role.IsAdmin() {
		authCtx.ResolvedRole = role
		authCtx.RoleSource = domainauth.RoleSourceStoredRecord
		return authCtx, nil
	}
	if authCtx.RoleSource == "" || authCtx.RoleSource == domainauth.RoleSourceNone {
		authCtx.ResolvedRole = role
		authCtx.RoleSource = domainauth.RoleSourceStoredRecord
	}
	return authCtx, apperrors.Forbidden("admin privileges required")
}

// storedRole performs the guard's single fallback read under its own timeout.
func (s *AuthService) storedRole(ctx context.Context, userID string) (domainauth.Role, error) {
	if s.users == nil {
		return "", errors.New("no stored-record reader configured")
	}
	rctx, cancel := context.WithTimeout(ctx, s.fallbackTimeout)
	defer cancel()
	return s.users.GetRoleByID(rctx, userID)
}

func displayName(id domainauth.Identity) string {
	switch {
	case id.FirstName != "" && id.LastName != "":
		return id.FirstName + " " + id.LastName
	case id.FirstName != "":
		return id.FirstName
	default:
		return id.LastName
	}
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// Use UUID for session ID - it's URL-safe and has good entropy
	id := uuid.New()
	return id.String()
}
