package data_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
	"github.com/luminaryawards/program-api/internal/data"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/testutil"
)

func seedAuthor(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	users := data.NewUserRepo(db)
	user, err := users.Upsert(context.Background(), testutil.UserUpsertRequest(id, domainauth.RoleEditor))
	require.NoError(t, err)
	return user.ID
}

func TestPostRepoCRUD(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := data.NewPostRepo(db)
		authorID := seedAuthor(t, db, "author-1")

		created, err := repo.Create(ctx, testutil.LivePostRequest("live-1", authorID))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)
		assert.Equal(t, authorID, created.AuthorID)
		assert.True(t, created.Live)

		_, err = repo.Create(ctx, testutil.LivePostRequest("live-1", authorID))
		require.ErrorIs(t, err, data.ErrPostSlugExists)

		updated, err := repo.Update(ctx, created.ID, model.UpdatePostRequest{
			Title: testutil.StringPtr("Updated Title"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Updated Title", updated.Title)

		deleted, err := repo.Delete(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		_, err = repo.GetByID(ctx, created.ID)
		require.ErrorIs(t, err, data.ErrPostNotFound)
	})
}

func TestPostRepoPublishDue(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		base := testutil.TestTime()
		repo := data.NewPostRepoWithTimeProvider(db, testutil.NewTestTimeProvider(base))
		authorID := seedAuthor(t, db, "author-2")

		due, err := repo.Create(ctx, testutil.ScheduledPostRequest("due", authorID, base.Add(30*time.Minute)))
		require.NoError(t, err)
		assert.False(t, due.Live)

		future, err := repo.Create(ctx, testutil.ScheduledPostRequest("future", authorID, base.Add(48*time.Hour)))
		require.NoError(t, err)
		assert.False(t, future.Live)

		draft, err := repo.Create(ctx, testutil.DraftPostRequest("draft", authorID))
		require.NoError(t, err)
		assert.False(t, draft.Live)

		published, err := repo.PublishDue(ctx, base.Add(time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, published)

		refreshed, err := repo.GetByID(ctx, due.ID)
		require.NoError(t, err)
		assert.True(t, refreshed.Live)

		refreshed, err = repo.GetByID(ctx, future.ID)
		require.NoError(t, err)
		assert.False(t, refreshed.Live)

		refreshed, err = repo.GetByID(ctx, draft.ID)
		require.NoError(t, err)
		assert.False(t, refreshed.Live)
	})
}
