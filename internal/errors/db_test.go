package errors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestMapDBError_NilError(t *testing.T) {
	if err := MapDBError(nil); err != nil {
		t.Errorf("MapDBError(nil) = %v, want nil", err)
	}
}

func TestMapDBError_ContextErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode ErrorCode
	}{
		{name: "deadline exceeded", err: context.DeadlineExceeded, wantCode: ErrCodeTimeout},
		{name: "canceled", err: context.Canceled, wantCode: ErrCodeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapDBError(tt.err)
			var appErr *AppError
			if !errors.As(got, &appErr) {
				t.Fatalf("MapDBError(%v) = %T, want *AppError", tt.err, got)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %v, want %v", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestMapDBError_NoRows(t *testing.T) {
	got := MapDBError(pgx.ErrNoRows)
	if !IsNotFound(got) {
		t.Errorf("MapDBError(pgx.ErrNoRows) code = %v, want not_found", GetCode(got))
	}
}

func TestMapDBError_UniqueViolation(t *testing.T) {
	tests := []struct {
		name      string
		pgErr     *pgconn.PgError
		wantField string
	}{
		{
			name: "column name metadata",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ColumnName:     "slug",
				ConstraintName: "awardees_slug_key",
			},
			wantField: "slug",
		},
		{
			name: "field from detail",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "newsletter_subscribers_email_key",
				Detail:         `Key (email)=(someone@example.com) already exists.`,
			},
			wantField: "email",
		},
		{
			name: "field inferred from constraint",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.UniqueViolation,
				ConstraintName: "posts_slug_key",
			},
			wantField: "slug",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapDBError(tt.pgErr)
			if !IsConflict(got) {
				t.Fatalf("code = %v, want conflict", GetCode(got))
			}
			if GetField(got) != tt.wantField {
				t.Errorf("field = %q, want %q", GetField(got), tt.wantField)
			}
		})
	}
}

func TestMapDBError_ForeignKeyViolation(t *testing.T) {
	tests := []struct {
		name         string
		pgErr        *pgconn.PgError
		wantContains string
	}{
		{
			name: "parent still referenced",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "posts_author_id_fkey",
				Detail:         `Key (id)=(user-123) is still referenced from table "posts".`,
			},
			wantContains: "Post",
		},
		{
			name: "missing parent",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "posts_author_id_fkey",
				Detail:         `Key (author_id)=(user-123) is not present in table "users".`,
			},
			wantContains: "does not exist",
		},
		{
			name: "table name metadata only",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "posts_author_id_fkey",
				TableName:      "posts",
			},
			wantContains: "in use",
		},
		{
			name: "constraint name only",
			pgErr: &pgconn.PgError{
				Code:           pgerrcode.ForeignKeyViolation,
				ConstraintName: "posts_author_id_fkey",
			},
			wantContains: "author",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapDBError(tt.pgErr)
			if !IsForeignKey(got) {
				t.Fatalf("code = %v, want foreign_key", GetCode(got))
			}
			var appErr *AppError
			errors.As(got, &appErr)
			if !strings.Contains(appErr.Message, tt.wantContains) {
				t.Errorf("message %q does not contain %q", appErr.Message, tt.wantContains)
			}
		})
	}
}

func TestMapDBError_NotNullViolation(t *testing.T) {
	pgErr := &pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		ColumnName: "full_name",
	}
	got := MapDBError(pgErr)
	if !IsValidation(got) {
		t.Fatalf("code = %v, want validation", GetCode(got))
	}
	if GetField(got) != "full_name" {
		t.Errorf("field = %q, want full_name", GetField(got))
	}
}

func TestMapDBError_CheckViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.CheckViolation}
	got := MapDBError(pgErr)
	if !IsValidation(got) {
		t.Fatalf("code = %v, want validation", GetCode(got))
	}
}

func TestMapDBError_UnknownPgError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: pgerrcode.SerializationFailure}
	got := MapDBError(pgErr)
	if !IsInternal(got) {
		t.Fatalf("code = %v, want internal", GetCode(got))
	}
}

func TestMapDBError_UnrecognizedErrorPassesThrough(t *testing.T) {
	orig := errors.New("boom")
	if got := MapDBError(orig); !errors.Is(got, orig) {
		t.Errorf("MapDBError(%v) = %v, want original error", orig, got)
	}
}

func TestInferFieldFromConstraint(t *testing.T) {
	tests := []struct {
		name           string
		constraintName string
		want           string
	}{
		{name: "standard key suffix", constraintName: "posts_slug_key", want: "slug"},
		{name: "unique suffix", constraintName: "awardees_slug_unique", want: "slug"},
		{name: "multi column ambiguous", constraintName: "events_starts_at_ends_at_key", want: ""},
		{name: "expression index", constraintName: "users_lower_key", want: ""},
		{name: "empty", constraintName: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := inferFieldFromConstraint(tt.constraintName); got != tt.want {
				t.Errorf("inferFieldFromConstraint(%q) = %q, want %q", tt.constraintName, got, tt.want)
			}
		})
	}
}

func TestMapTableToDomain(t *testing.T) {
	tests := []struct {
		name      string
		tableName string
		want      string
	}{
		{name: "users", tableName: "users", want: "User"},
		{name: "awardees", tableName: "awardees", want: "Awardee"},
		{name: "posts", tableName: "posts", want: "Post"},
		{name: "newsletter", tableName: "newsletter_subscribers", want: "Newsletter Subscriber"},
		{name: "with spaces", tableName: "  events  ", want: "Event"},
		{name: "unknown falls back", tableName: "mystery_things", want: "Mystery Things"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapTableToDomain(tt.tableName); got != tt.want {
				t.Errorf("mapTableToDomain(%q) = %q, want %q", tt.tableName, got, tt.want)
			}
		})
	}
}
