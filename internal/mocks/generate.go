// Package mocks provides mock implementations for testing the program API.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetRoleByID(gomock.Any(), "user-1").Return(domainauth.RoleAdmin, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// GetByID, GetRoleByID, Upsert, UpdateRole, List
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/luminaryawards/program-api/internal/core UserRepository

// Generate mock for AwardeeRepository interface from internal/core package.
// This creates MockAwardeeRepository with methods for all AwardeeRepository interface methods:
// Create, GetByID, GetBySlug, List, Update, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=awardee_repository_mock.go github.com/luminaryawards/program-api/internal/core AwardeeRepository
