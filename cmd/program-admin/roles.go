package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/luminaryawards/program-api/internal/adapters/token"
	"github.com/luminaryawards/program-api/internal/data"
	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
)

const grantRoleTimeout = time.Minute

type grantRoleOptions struct {
	UserID string
	Role   domainauth.Role
	Yes    bool
}

func parseGrantRoleFlags(args []string) (grantRoleOptions, error) {
	fs := flag.NewFlagSet("grant-role", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var (
		userID  string
		rawRole string
		yes     bool
	)
	fs.StringVar(&userID, "user-id", "", "Identifier of the stored user record")
	fs.StringVar(&rawRole, "role", "", "Role to store (guest, user, editor, admin, superadmin)")
	fs.BoolVar(&yes, "yes", false, "Skip confirmation prompt")

	if err := fs.Parse(args); err != nil {
		return grantRoleOptions{}, err
	}

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return grantRoleOptions{}, errors.New("--user-id is required")
	}

	role, ok := domainauth.ParseRole(rawRole)
	if !ok {
		return grantRoleOptions{}, fmt.Errorf(
			"invalid role %q; valid options: guest, user, editor, admin, superadmin",
			rawRole,
		)
	}

	return grantRoleOptions{UserID: userID, Role: role, Yes: yes}, nil
}

func runGrantRole(cmdCtx *commandContext, args []string) error {
	opts, err := parseGrantRoleFlags(args)
	if err != nil {
		return err
	}

	if confirmErr := confirmAction(confirmOptions{
		Yes:    opts.Yes,
		Action: fmt.Sprintf("store role %q", opts.Role),
		Target: fmt.Sprintf("user %q", opts.UserID),
	}); confirmErr != nil {
		return confirmErr
	}

	return withDatabase(cmdCtx, grantRoleTimeout, func(ctx context.Context, db *sql.DB) error {
		users := data.NewUserRepo(db)

		current, getErr := users.GetByID(ctx, opts.UserID)
		if getErr != nil {
			if errors.Is(getErr, data.ErrUserNotFound) {
				return fmt.Errorf("user %q has no stored record; users are created on first login or via seeding", opts.UserID)
			}
			return fmt.Errorf("load user: %w", getErr)
		}

		updated, updateErr := users.UpdateRole(ctx, opts.UserID, opts.Role)
		if updateErr != nil {
			return fmt.Errorf("update role: %w", updateErr)
		}

		cmdCtx.Logger.Info("stored role updated",
			"user_id", updated.ID,
			"email", updated.Email,
			"previous_role", current.Role,
			"role", updated.Role,
		)
		return writef(os.Stdout, "User %s (%s): role %s -> %s\n", updated.ID, updated.Email, current.Role, updated.Role)
	})
}

type decodeTokenOptions struct {
	Token string
}

func parseDecodeTokenFlags(args []string) (decodeTokenOptions, error) {
	fs := flag.NewFlagSet("decode-token", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var raw string
	fs.StringVar(&raw, "token", "", "Raw session token to decode (reads stdin when omitted)")

	if err := fs.Parse(args); err != nil {
		return decodeTokenOptions{}, err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		stdinToken, readErr := readTokenFromStdin()
		if readErr != nil {
			return decodeTokenOptions{}, readErr
		}
		raw = stdinToken
	}
	if raw == "" {
		return decodeTokenOptions{}, errors.New("--token is required (or pipe the token on stdin)")
	}

	return decodeTokenOptions{Token: raw}, nil
}

func readTokenFromStdin() (string, error) {
	info, err := os.Stdin.Stat()
	if err != nil {
		return "", nil
	}
	// Only consume stdin when it is piped; an interactive terminal means the
	// caller simply forgot --token.
	if info.Mode()&os.ModeCharDevice != 0 {
		return "", nil
	}
	buf := make([]byte, 16*1024)
	n, readErr := os.Stdin.Read(buf)
	if n == 0 && readErr != nil {
		return "", nil
	}
	return strings.TrimSpace(string(buf[:n])), nil
}

func runDecodeToken(cmdCtx *commandContext, args []string) error {
	opts, err := parseDecodeTokenFlags(args)
	if err != nil {
		return err
	}

	claims, identity, decodeErr := token.NewDecoder().Decode(opts.Token)
	if decodeErr != nil {
		return fmt.Errorf("decode token: %w", decodeErr)
	}

	if writeErr := renderDecodedToken(os.Stdout, claims, identity); writeErr != nil {
		return writeErr
	}

	cmdCtx.Logger.Debug("token decoded", "user_id", identity.UserID)
	return nil
}

func renderDecodedToken(w io.Writer, claims domainauth.SessionClaims, identity domainauth.Identity) error {
	if err := writef(w, "\nIdentity\n"); err != nil {
		return err
	}
	if err := writef(w, "  user_id:    %s\n", orPlaceholder(identity.UserID)); err != nil {
		return err
	}
	if err := writef(w, "  email:      %s\n", orPlaceholder(identity.Email)); err != nil {
		return err
	}
	if err := writef(w, "  name:       %s\n", orPlaceholder(strings.TrimSpace(identity.FirstName+" "+identity.LastName))); err != nil {
		return err
	}
	if err := writef(w, "  expires_at: %s\n", renderExpiry(identity.ExpiresAt)); err != nil {
		return err
	}

	if err := writef(w, "\nRole claim candidates (in resolution order)\n"); err != nil {
		return err
	}
	for _, src := range domainauth.DefaultClaimSources {
		if err := writef(w, "  %-20s %s\n", src.Name+":", renderClaimCandidate(src.Extract(claims))); err != nil {
			return err
		}
	}

	resolution := domainauth.NewRoleResolver().Resolve(claims)
	if err := writef(w, "\nResolution\n"); err != nil {
		return err
	}
	if resolution.Claim == "" {
		return writef(w, "  no candidate normalized to a recognized role; requests would be treated as guest\n")
	}
	if err := writef(w, "  role:   %s\n", resolution.Role); err != nil {
		return err
	}
	if err := writef(w, "  source: %s (claim %q)\n", resolution.Source, resolution.Claim); err != nil {
		return err
	}
	return nil
}

func renderClaimCandidate(v any) string {
	if v == nil {
		return "(absent)"
	}
	if _, ok := domainauth.ParseRole(v); ok {
		return fmt.Sprintf("%v", v)
	}
	return fmt.Sprintf("%v (not a recognized role)", v)
}

func renderExpiry(t time.Time) string {
	if t.IsZero() {
		return "(none)"
	}
	return fmt.Sprintf("%s (%s)", t.Format(time.RFC3339), time.Until(t).Round(time.Second))
}

func orPlaceholder(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
