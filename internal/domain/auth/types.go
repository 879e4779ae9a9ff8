package auth

// Package auth contains domain-level types for authentication, sessions,
// and role resolution. It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleSuperAdmin Role = "superadmin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
	RoleUser       Role = "user"
	RoleGuest      Role = "guest"
)

// roleRank orders roles by privilege. Unknown roles are absent and rank
// below everything, including guest.
var roleRank = map[Role]int{
	RoleGuest:      0,
	RoleUser:       1,
	RoleEditor:     2,
	RoleAdmin:      3,
	RoleSuperAdmin: 4,
}

// ParseRole normalizes a raw candidate value into a Role.
// Strings are trimmed and lower-cased before matching against the fixed
// vocabulary. Anything else (numbers, objects, empty strings, unknown
// tokens) is rejected; there is no default role.
func ParseRole(raw any) (Role, bool) {
	var s string
	switch v := raw.(type) {
	case Role:
		s = string(v)
	case string:
		s = v
	default:
		return "", false
	}

	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := roleRank[r]; !ok {
		return "", false
	}
	return r, true
}

// Valid reports whether r is one of the recognized roles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether r carries at least the privilege of required.
// Unrecognized roles on either side never satisfy the check.
func (r Role) AtLeast(required Role) bool {
	ur, ok := roleRank[r]
	if !ok {
		return false
	}
	rr, ok := roleRank[required]
	if !ok {
		return false
	}
	return ur >= rr
}

// IsAdmin reports whether r may perform privileged mutations.
func (r Role) IsAdmin() bool { return r == RoleAdmin || r == RoleSuperAdmin }

// RoleSource tags where a resolved role came from.
type RoleSource string

const (
	RoleSourceSessionClaim RoleSource = "session-claim"
	RoleSourceStoredRecord RoleSource = "stored-record"
	RoleSourceLegacyField  RoleSource = "legacy-field"
	RoleSourceNone         RoleSource = "none"
)

// AuthContext is the per-request authorization result. It is computed fresh
// for every request and never persisted.
type AuthContext struct {
	UserID          string
	Email           string
	ResolvedRole    Role
	RoleSource      RoleSource
	IsAuthenticated bool
}

// SessionClaims holds the role-bearing fields carried by a session token.
// Values are kept as raw `any` because providers routinely hand back
// malformed shapes (numbers, nested objects) that must not be trusted.
type SessionClaims struct {
	Role             any `json:"role,omitempty"`
	UserMetadataRole any `json:"user_metadata_role,omitempty"`
	AppMetadataRole  any `json:"app_metadata_role,omitempty"`
	LegacyRole       any `json:"legacy_role,omitempty"`
}

// Identity represents the authenticated principal returned by an IdP.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier (e.g., sub)
	FirstName string
	LastName  string
	Email     string
	Claims    SessionClaims
	ExpiresAt time.Time // absolute expiry from IdP token
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Email     string        `json:"email"`
	Claims    SessionClaims `json:"claims"`
	ExpiresAt time.Time     `json:"expires_at"`
}
