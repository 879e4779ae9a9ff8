package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/luminaryawards/program-api/internal/data/pgxutil"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// ErrAnnouncementNotFound is returned when an announcement is not found.
var ErrAnnouncementNotFound = errors.New("announcement not found")

// AnnouncementRepo provides database operations for site announcements.
type AnnouncementRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAnnouncementRepo creates a new AnnouncementRepo with real time provider.
func NewAnnouncementRepo(db *sql.DB) *AnnouncementRepo {
	return &AnnouncementRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAnnouncementRepoWithTimeProvider creates a new AnnouncementRepo with a custom time provider (useful for tests).
func NewAnnouncementRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AnnouncementRepo {
	return &AnnouncementRepo{DB: db, timeProvider: tp}
}

// Create inserts a new announcement.
func (r *AnnouncementRepo) Create(ctx context.Context, req *model.CreateAnnouncementRequest) (*model.Announcement, error) {
	if req == nil {
		return nil, errors.New("create announcement request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.Announcement
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO announcements (
				title, body, severity, starts_at, ends_at, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6
			) RETURNING id, title, body, severity, starts_at, ends_at, created_at, updated_at
		`,
			strings.TrimSpace(req.Title),
			req.Body,
			req.Severity,
			req.StartsAt.UTC(),
			req.EndsAt,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Announcement])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create announcement: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an announcement by ID.
func (r *AnnouncementRepo) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	var out model.Announcement
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, announcementGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Announcement])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to get announcement by ID: %w", err)
	}
	return &out, nil
}

// ListActive retrieves announcements whose window covers now, most severe first.
func (r *AnnouncementRepo) ListActive(ctx context.Context, now time.Time) ([]*model.Announcement, error) {
	return r.list(ctx, announcementListActiveQuery, "failed to list active announcements", now.UTC())
}

// ListAll retrieves all announcements with pagination, newest first.
func (r *AnnouncementRepo) ListAll(ctx context.Context, limit, offset int) ([]*model.Announcement, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return r.list(ctx, announcementListAllQuery, "failed to list announcements", limit, offset)
}

// Update updates fields of an announcement.
func (r *AnnouncementRepo) Update(ctx context.Context, id string, req model.UpdateAnnouncementRequest) (*model.Announcement, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Announcement
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		args = append(args, id)
		query := "UPDATE announcements SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING id, title, body, severity, starts_at, ends_at, created_at, updated_at"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Announcement])
		return e
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAnnouncementNotFound
		}
		return nil, fmt.Errorf("failed to update announcement: %w", err)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating an announcement based on the request.
func (r *AnnouncementRepo) buildUpdateClause(req model.UpdateAnnouncementRequest) (string, []any) {
	setParts := make([]string, 0, 6)
	args := make([]any, 0, 6)
	nextIdx := func() int { return len(args) + 1 }

	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Body != nil {
		setParts = append(setParts, fmt.Sprintf("body = $%d", nextIdx()))
		args = append(args, *req.Body)
	}
	if req.Severity != nil {
		setParts = append(setParts, fmt.Sprintf("severity = $%d", nextIdx()))
		args = append(args, *req.Severity)
	}
	if req.StartsAt != nil {
		setParts = append(setParts, fmt.Sprintf("starts_at = $%d", nextIdx()))
		args = append(args, req.StartsAt.UTC())
	}
	if req.EndsAt != nil {
		setParts = append(setParts, fmt.Sprintf("ends_at = $%d", nextIdx()))
		args = append(args, req.EndsAt.UTC())
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes an announcement by ID.
func (r *AnnouncementRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete announcement: %w", err)
	}
	return rows > 0, nil
}

// DeleteExpired removes announcements whose window closed before cutoff.
// Returns the number of rows removed.
func (r *AnnouncementRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			DELETE FROM announcements
			WHERE ends_at IS NOT NULL AND ends_at < $1
		`, cutoff.UTC())
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired announcements: %w", err)
	}
	return int(rows), nil
}

// --- helpers ---

const (
	announcementGetByIDQuery = `
		SELECT id, title, body, severity, starts_at, ends_at, created_at, updated_at
		FROM announcements
		WHERE id = $1`

	announcementListActiveQuery = `
		SELECT id, title, body, severity, starts_at, ends_at, created_at, updated_at
		FROM announcements
		WHERE starts_at <= $1 AND (ends_at IS NULL OR ends_at > $1)
		ORDER BY CASE severity WHEN 'urgent' THEN 0 WHEN 'notice' THEN 1 ELSE 2 END, starts_at DESC`

	announcementListAllQuery = `
		SELECT id, title, body, severity, starts_at, ends_at, created_at, updated_at
		FROM announcements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

// list executes a query and collects announcement rows.
func (r *AnnouncementRepo) list(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) ([]*model.Announcement, error) {
	var rowsOut []model.Announcement
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Announcement])
		return err
	}); err != nil {
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	res := make([]*model.Announcement, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
