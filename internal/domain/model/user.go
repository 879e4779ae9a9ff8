package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
)

// User is the persisted record for an account. Its role field is the system
// of record that the admin guard falls back to when session claims disagree.
type User struct {
	ID          string          `json:"id"           db:"id"`
	Email       string          `json:"email"        db:"email"`
	DisplayName string          `json:"display_name" db:"display_name"`
	Role        domainauth.Role `json:"role"         db:"role"`
	CreatedAt   time.Time       `json:"created_at"   db:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"   db:"updated_at"`
}

// UpsertUserRequest creates or refreshes a user record at sign-in time.
type UpsertUserRequest struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	DisplayName string          `json:"display_name"`
	Role        domainauth.Role `json:"role,omitempty"`
}

// UpdateRoleRequest changes a user's stored role. Admin-gated.
type UpdateRoleRequest struct {
	Role domainauth.Role `json:"role"`
}

// UsersListOptions controls paging and filtering for listing users.
type UsersListOptions struct {
	Limit  int
	Offset int
	Q      *string
	Role   *domainauth.Role
}

// Validate validates UpsertUserRequest.
func (r *UpsertUserRequest) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("id is required")
	}
	email, err := NormalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email
	if utf8.RuneCountInString(r.DisplayName) > maxNameLen {
		return errors.New("display_name cannot exceed 255 characters")
	}
	if r.Role == "" {
		r.Role = domainauth.RoleUser
	}
	if !r.Role.Valid() {
		return errors.New("invalid role")
	}
	return nil
}

// Validate validates UpdateRoleRequest. Unknown role strings are rejected,
// never defaulted.
func (r *UpdateRoleRequest) Validate() error {
	role, ok := domainauth.ParseRole(string(r.Role))
	if !ok {
		return errors.New("invalid role")
	}
	r.Role = role
	return nil
}
