package service

import (
	"context"

	"github.com/luminaryawards/program-api/internal/core"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// UserServiceOptions groups dependencies for UserService.
type UserServiceOptions struct {
	UserRepo core.UserRepository
}

// UserService exposes back-office account management. Sign-in upserts are
// handled by AuthService; this service covers the admin surface only.
type UserService struct {
	users core.UserRepository
}

// NewUserService constructs a new UserService.
func NewUserService(opts UserServiceOptions) *UserService {
	return &UserService{users: opts.UserRepo}
}

// GetByID retrieves a user by ID.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.users.GetByID(ctx, id)
}

// List returns a page of users using normalized options.
func (s *UserService) List(ctx context.Context, opts model.UsersListOptions) ([]*model.User, error) {
	return s.users.List(ctx, normalizeUsersListOptions(opts))
}

// UpdateRole changes a user's stored role. The stored role is the record the
// admin guard trusts, so writes go straight through with no caching.
func (s *UserService) UpdateRole(ctx context.Context, id string, req model.UpdateRoleRequest) (*model.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.users.UpdateRole(ctx, id, req.Role)
}

func normalizeUsersListOptions(opts model.UsersListOptions) model.UsersListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	return opts
}
