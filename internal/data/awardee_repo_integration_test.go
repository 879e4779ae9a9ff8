package data_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminaryawards/program-api/internal/data"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/testutil"
)

func TestAwardeeRepoCRUD(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := data.NewAwardeeRepo(db)

		created, err := repo.Create(ctx, testutil.NewAwardeeRequest().
			WithSlug("amara-okafor").
			WithFullName("Amara Okafor").
			WithCategory(model.AwardeeCategoryInnovation).
			Featured().
			Published(true).
			Build())
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, "amara-okafor", created.Slug)
		assert.True(t, created.Featured)
		assert.True(t, created.Published)

		bySlug, err := repo.GetBySlug(ctx, "amara-okafor")
		require.NoError(t, err)
		assert.Equal(t, created.ID, bySlug.ID)

		// Duplicate slug is rejected.
		_, err = repo.Create(ctx, testutil.NewAwardeeRequest().
			WithSlug("amara-okafor").
			WithFullName("Other Person").
			Build())
		require.ErrorIs(t, err, data.ErrAwardeeSlugExists)

		updated, err := repo.Update(ctx, created.ID, model.UpdateAwardeeRequest{
			Citation: testutil.StringPtr("For pioneering community health tooling."),
			Featured: testutil.BoolPtr(false),
		})
		require.NoError(t, err)
		assert.Equal(t, "For pioneering community health tooling.", updated.Citation)
		assert.False(t, updated.Featured)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, created.ID)
		require.ErrorIs(t, err, data.ErrAwardeeNotFound)
	})
}

func TestAwardeeRepoListFilters(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := data.NewAwardeeRepo(db)

		_, err := repo.Create(ctx, testutil.NewAwardeeRequest().
			WithSlug("lena-vasquez").
			WithFullName("Lena Vasquez").
			WithCohortYear(2023).
			WithCategory(model.AwardeeCategoryLeadership).
			Published(true).
			Build())
		require.NoError(t, err)

		_, err = repo.Create(ctx, testutil.NewAwardeeRequest().
			WithSlug("tomas-lindqvist").
			WithFullName("Tomas Lindqvist").
			WithCohortYear(2024).
			WithCategory(model.AwardeeCategoryArts).
			Published(false).
			Build())
		require.NoError(t, err)

		published := true
		listed, err := repo.List(ctx, model.AwardeesListOptions{
			Limit:     10,
			Published: &published,
		})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "lena-vasquez", listed[0].Slug)

		year := 2024
		listed, err = repo.List(ctx, model.AwardeesListOptions{
			Limit:      10,
			CohortYear: &year,
		})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "tomas-lindqvist", listed[0].Slug)

		q := "vasq"
		listed, err = repo.List(ctx, model.AwardeesListOptions{Limit: 10, Q: &q})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, "Lena Vasquez", listed[0].FullName)
	})
}
