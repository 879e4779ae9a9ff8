package token

// Package token decodes raw session tokens into their role-bearing claims
// without signature verification. It backs the admin back office's token
// inspection form and the CLI's decode subcommand; nothing decoded here is
// treated as authenticated.

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
)

// legacyRoleClaim mirrors the namespaced custom claim older tokens carry.
const legacyRoleClaim = "https://claims/role"

// Decoder extracts session claims from a raw JWT.
type Decoder struct{}

// NewDecoder creates a token decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode parses raw without verifying its signature and returns the claim
// candidates alongside the identity fields the token asserts. Malformed
// role locations pass through untouched; the resolver decides usability.
func (d *Decoder) Decode(raw string) (domainauth.SessionClaims, domainauth.Identity, error) {
	raw = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "Bearer "))
	if raw == "" {
		return domainauth.SessionClaims{}, domainauth.Identity{}, errors.New("token is required")
	}

	mapClaims := jwt.MapClaims{}
	if _, _, err := new(jwt.Parser).ParseUnverified(raw, mapClaims); err != nil {
		return domainauth.SessionClaims{}, domainauth.Identity{}, fmt.Errorf("parse token: %w", err)
	}

	claims := domainauth.SessionClaims{
		Role:       mapClaims["role"],
		LegacyRole: mapClaims[legacyRoleClaim],
	}
	if um, ok := mapClaims["user_metadata"].(map[string]any); ok {
		claims.UserMetadataRole = um["role"]
	}
	if am, ok := mapClaims["app_metadata"].(map[string]any); ok {
		claims.AppMetadataRole = am["role"]
	}

	identity := domainauth.Identity{
		UserID:    stringClaim(mapClaims, "sub"),
		Email:     stringClaim(mapClaims, "email"),
		FirstName: stringClaim(mapClaims, "given_name"),
		LastName:  stringClaim(mapClaims, "family_name"),
		Claims:    claims,
	}
	if exp, err := mapClaims.GetExpirationTime(); err == nil && exp != nil {
		identity.ExpiresAt = exp.Time
	} else {
		identity.ExpiresAt = time.Time{}
	}

	return claims, identity, nil
}

func stringClaim(m jwt.MapClaims, key string) string {
	s, _ := m[key].(string)
	return s
}
