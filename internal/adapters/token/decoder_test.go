package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
)

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte("test-key"))
	require.NoError(t, err)
	return s
}

func TestDecoder_Decode_AllRoleLocations(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	raw := signedToken(t, jwt.MapClaims{
		"sub":           "user-42",
		"email":         "admin@example.com",
		"given_name":    "Ada",
		"family_name":   "Li",
		"role":          "Editor",
		"user_metadata": map[string]any{"role": "admin"},
		"app_metadata":  map[string]any{"role": float64(3)},
		legacyRoleClaim: "user",
		"exp":           exp.Unix(),
	})

	claims, identity, err := NewDecoder().Decode(raw)
	require.NoError(t, err)

	assert.Equal(t, "Editor", claims.Role)
	assert.Equal(t, "admin", claims.UserMetadataRole)
	assert.Equal(t, float64(3), claims.AppMetadataRole)
	assert.Equal(t, "user", claims.LegacyRole)

	assert.Equal(t, "user-42", identity.UserID)
	assert.Equal(t, "admin@example.com", identity.Email)
	assert.Equal(t, "Ada", identity.FirstName)
	assert.Equal(t, "Li", identity.LastName)
	assert.WithinDuration(t, exp, identity.ExpiresAt, time.Second)
}

func TestDecoder_Decode_ResolverAgreement(t *testing.T) {
	// The decoded candidates feed the same resolver the guard uses, so a
	// malformed top-level role must fall through to the metadata role.
	raw := signedToken(t, jwt.MapClaims{
		"sub":           "user-42",
		"role":          float64(1),
		"user_metadata": map[string]any{"role": "editor"},
	})

	claims, _, err := NewDecoder().Decode(raw)
	require.NoError(t, err)

	res := domainauth.NewRoleResolver().Resolve(claims)
	assert.Equal(t, domainauth.RoleEditor, res.Role)
	assert.Equal(t, "user_metadata.role", res.Claim)
}

func TestDecoder_Decode_BearerPrefix(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "user-42", "role": "admin"})

	claims, identity, err := NewDecoder().Decode("Bearer " + raw)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "user-42", identity.UserID)
}

func TestDecoder_Decode_MissingLocationsStayNil(t *testing.T) {
	raw := signedToken(t, jwt.MapClaims{"sub": "user-42"})

	claims, _, err := NewDecoder().Decode(raw)
	require.NoError(t, err)
	assert.Nil(t, claims.Role)
	assert.Nil(t, claims.UserMetadataRole)
	assert.Nil(t, claims.AppMetadataRole)
	assert.Nil(t, claims.LegacyRole)

	res := domainauth.NewRoleResolver().Resolve(claims)
	assert.Equal(t, domainauth.RoleSourceNone, res.Source)
}

func TestDecoder_Decode_Errors(t *testing.T) {
	d := NewDecoder()

	_, _, err := d.Decode("")
	require.Error(t, err)

	_, _, err = d.Decode("not-a-jwt")
	require.Error(t, err)
}
