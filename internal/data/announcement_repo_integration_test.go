package data_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminaryawards/program-api/internal/data"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/testutil"
)

func TestAnnouncementRepoActiveWindow(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := data.NewAnnouncementRepo(db)

		active, err := repo.Create(ctx, testutil.AnnouncementRequest("Ceremony date confirmed"))
		require.NoError(t, err)

		// Window already closed.
		closedEnds := time.Now().Add(-time.Hour)
		closed := testutil.AnnouncementRequest("Nominations closed")
		closed.StartsAt = time.Now().Add(-48 * time.Hour)
		closed.EndsAt = &closedEnds
		_, err = repo.Create(ctx, closed)
		require.NoError(t, err)

		// Window not yet open.
		upcoming := testutil.AnnouncementRequest("Gala reminder")
		upcoming.StartsAt = time.Now().Add(24 * time.Hour)
		upcoming.EndsAt = nil
		_, err = repo.Create(ctx, upcoming)
		require.NoError(t, err)

		listed, err := repo.ListActive(ctx, time.Now())
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, active.ID, listed[0].ID)

		all, err := repo.ListAll(ctx, 10, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)
	})
}

func TestAnnouncementRepoDeleteExpired(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := data.NewAnnouncementRepo(db)

		oldEnds := time.Now().Add(-72 * time.Hour)
		expired := testutil.AnnouncementRequest("Old notice")
		expired.StartsAt = time.Now().Add(-96 * time.Hour)
		expired.EndsAt = &oldEnds
		_, err := repo.Create(ctx, expired)
		require.NoError(t, err)

		kept, err := repo.Create(ctx, testutil.AnnouncementRequest("Current notice"))
		require.NoError(t, err)

		removed, err := repo.DeleteExpired(ctx, time.Now().Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		_, err = repo.GetByID(ctx, kept.ID)
		require.NoError(t, err)
	})
}

func TestEventRepoUpcomingList(t *testing.T) {
	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := data.NewEventRepo(db)

		upcoming, err := repo.Create(ctx, testutil.EventRequest("gala"))
		require.NoError(t, err)

		past := testutil.EventRequest("workshop")
		past.StartsAt = time.Now().Add(-72 * time.Hour)
		_, err = repo.Create(ctx, past)
		require.NoError(t, err)

		_, err = repo.Create(ctx, testutil.EventRequest("gala"))
		require.ErrorIs(t, err, data.ErrEventSlugExists)

		listed, err := repo.List(ctx, model.EventsListOptions{Limit: 10, UpcomingOnly: true})
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, upcoming.ID, listed[0].ID)
	})
}
