package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/mocks"
)

const testAwardeeID = "awardee-123"

// newAwardeeService creates a mock repository and service for testing.
func newAwardeeService(t *testing.T) (*mocks.MockAwardeeRepository, *AwardeeService) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockAwardeeRepository(ctrl)
	service := NewAwardeeService(AwardeeServiceOptions{AwardeeRepo: repo})

	return repo, service
}

func TestAwardeeService_Create(t *testing.T) {
	t.Parallel()
	repo, service := newAwardeeService(t)

	ctx := context.Background()
	req := &model.CreateAwardeeRequest{
		Slug:       "maria-ortiz",
		FullName:   "Maria Ortiz",
		CohortYear: 2024,
		Category:   model.AwardeeCategoryLeadership,
		Citation:   "For a decade of community leadership.",
	}

	expected := &model.Awardee{
		ID:         testAwardeeID,
		Slug:       "maria-ortiz",
		FullName:   "Maria Ortiz",
		CohortYear: 2024,
		Category:   model.AwardeeCategoryLeadership,
		Published:  true,
		CreatedAt:  time.Now(),
	}

	repo.EXPECT().
		Create(ctx, req).
		Return(expected, nil).
		Times(1)

	awardee, err := service.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, expected, awardee)
}

func TestAwardeeService_List_NormalizesOptions(t *testing.T) {
	t.Parallel()
	repo, service := newAwardeeService(t)
	ctx := context.Background()

	repo.EXPECT().
		List(ctx, model.AwardeesListOptions{
			Limit:  50,
			Offset: 0,
			Sort:   "created_at",
			Dir:    "desc",
		}).
		Return([]*model.Awardee{}, nil).
		Times(1)

	// Zero values must be replaced with module defaults before the
	// repository sees them.
	_, err := service.List(ctx, model.AwardeesListOptions{Limit: 0, Offset: -5})
	require.NoError(t, err)
}

func TestAwardeeService_ListPublic_ForcesPublishedFilter(t *testing.T) {
	t.Parallel()
	repo, service := newAwardeeService(t)
	ctx := context.Background()

	unpublished := false
	repo.EXPECT().
		List(ctx, gomock.Cond(func(opts model.AwardeesListOptions) bool {
			return opts.Published != nil && *opts.Published
		})).
		Return([]*model.Awardee{}, nil).
		Times(1)

	// A caller-supplied filter asking for unpublished rows must not leak
	// through the public listing path.
	_, err := service.ListPublic(ctx, model.AwardeesListOptions{Published: &unpublished})
	require.NoError(t, err)
}

func TestAwardeeService_Delete(t *testing.T) {
	t.Parallel()
	repo, service := newAwardeeService(t)
	ctx := context.Background()

	repo.EXPECT().
		Delete(ctx, testAwardeeID).
		Return(true, nil).
		Times(1)

	ok, err := service.Delete(ctx, testAwardeeID)
	require.NoError(t, err)
	assert.True(t, ok)
}
