package main

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
)

func TestIsLikelyRemoteHost(t *testing.T) {
	tests := []struct {
		host string
		want bool
	}{
		{"localhost", false},
		{"LOCALHOST", false},
		{"127.0.0.1", false},
		{"::1", false},
		{"db.local", false},
		{"", false},
		{"10.0.0.5", true},
		{"db.prod.luminaryawards.org", true},
		{"192.168.1.20", true},
	}

	for _, tt := range tests {
		t.Run(tt.host, func(t *testing.T) {
			assert.Equal(t, tt.want, isLikelyRemoteHost(tt.host))
		})
	}
}

func TestRenderTTL(t *testing.T) {
	assert.Equal(t, "no expiry", renderTTL(-1*time.Second))
	assert.Equal(t, "key missing", renderTTL(-2*time.Second))
	assert.Equal(t, "5m0s", renderTTL(5*time.Minute))
}

func TestParseGrantRoleFlags(t *testing.T) {
	opts, err := parseGrantRoleFlags([]string{"--user-id", "u-1", "--role", "Editor", "--yes"})
	require.NoError(t, err)
	assert.Equal(t, "u-1", opts.UserID)
	assert.Equal(t, domainauth.RoleEditor, opts.Role)
	assert.True(t, opts.Yes)

	_, err = parseGrantRoleFlags([]string{"--role", "editor"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--user-id is required")

	_, err = parseGrantRoleFlags([]string{"--user-id", "u-1", "--role", "owner"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid role")
}

func TestParseDBResetFlags(t *testing.T) {
	opts, err := parseDBResetFlags([]string{"--seed", "--yes", "--timeout", "30s"})
	require.NoError(t, err)
	assert.True(t, opts.Seed)
	assert.True(t, opts.Yes)
	assert.False(t, opts.AllowRemote)
	assert.Equal(t, 30*time.Second, opts.Timeout)

	_, err = parseDBResetFlags([]string{"--timeout", "0s"})
	require.Error(t, err)
}

func TestCommandsRegistry(t *testing.T) {
	cmds := commands()
	for _, name := range []string{
		"migrate", "db-reset", "db-seed",
		"grant-role", "decode-token",
		"list-sessions", "clear-rate-limits",
	} {
		cmd, ok := cmds[name]
		require.True(t, ok, "command %q should be registered", name)
		assert.Equal(t, name, cmd.name)
		assert.NotEmpty(t, cmd.description)
		assert.NotNil(t, cmd.run)
	}
}

func TestRenderDecodedTokenShowsResolution(t *testing.T) {
	claims := domainauth.SessionClaims{
		Role:             42,
		UserMetadataRole: "editor",
		AppMetadataRole:  "admin",
	}
	identity := domainauth.Identity{
		UserID:    "auth0|abc",
		Email:     "editor@example.com",
		FirstName: "Ana",
		LastName:  "Ruiz",
		Claims:    claims,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	var buf strings.Builder
	require.NoError(t, renderDecodedToken(&buf, claims, identity))

	out := buf.String()
	assert.Contains(t, out, "auth0|abc")
	assert.Contains(t, out, "editor@example.com")
	assert.Contains(t, out, "42 (not a recognized role)")
	assert.Contains(t, out, "role:   editor")
	assert.Contains(t, out, `claim "user_metadata.role"`)
	assert.NotContains(t, out, "role:   admin")
}

func TestRenderDecodedTokenNoCandidates(t *testing.T) {
	var buf strings.Builder
	require.NoError(t, renderDecodedToken(&buf, domainauth.SessionClaims{}, domainauth.Identity{}))

	out := buf.String()
	assert.Contains(t, out, "(absent)")
	assert.Contains(t, out, "treated as guest")
}

func TestRenderClaimCandidate(t *testing.T) {
	assert.Equal(t, "(absent)", renderClaimCandidate(nil))
	assert.Equal(t, "admin", renderClaimCandidate("admin"))
	assert.Equal(t, "root (not a recognized role)", renderClaimCandidate("root"))
}
