package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/luminaryawards/program-api/internal/data/pgxutil"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// NewsletterRepo provides database operations for newsletter subscribers.
type NewsletterRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewNewsletterRepo creates a new NewsletterRepo with real time provider.
func NewNewsletterRepo(db *sql.DB) *NewsletterRepo {
	return &NewsletterRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewNewsletterRepoWithTimeProvider creates a new NewsletterRepo with a custom time provider (useful for tests).
func NewNewsletterRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *NewsletterRepo {
	return &NewsletterRepo{DB: db, timeProvider: tp}
}

// Subscribe upserts a subscriber by email. Resubscribing clears
// unsubscribed_at and keeps the original unsubscribe token, so links in
// previously sent mail stay valid.
func (r *NewsletterRepo) Subscribe(ctx context.Context, email, token string) (*model.NewsletterSubscriber, error) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.New("email is required")
	}
	if strings.TrimSpace(token) == "" {
		return nil, errors.New("unsubscribe token is required")
	}

	now := r.timeProvider.Now().UTC()
	var out model.NewsletterSubscriber
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO newsletter_subscribers (email, unsubscribe_token, subscribed_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET
				unsubscribed_at = NULL,
				subscribed_at = EXCLUDED.subscribed_at
			RETURNING id, email, unsubscribe_token, subscribed_at, unsubscribed_at
		`, email, token, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.NewsletterSubscriber])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}
	return &out, nil
}

// UnsubscribeByToken marks the subscriber holding token as unsubscribed.
// Returns false when the token matches nothing or is already unsubscribed.
func (r *NewsletterRepo) UnsubscribeByToken(ctx context.Context, token string) (bool, error) {
	if strings.TrimSpace(token) == "" {
		return false, errors.New("unsubscribe token is required")
	}

	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE newsletter_subscribers SET unsubscribed_at = $2
			WHERE unsubscribe_token = $1 AND unsubscribed_at IS NULL
		`, token, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to unsubscribe: %w", err)
	}
	return rows > 0, nil
}

// List retrieves subscribers with pagination, newest signups first.
func (r *NewsletterRepo) List(ctx context.Context, limit, offset int, activeOnly bool) ([]*model.NewsletterSubscriber, error) {
	if limit <= 0 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	query := newsletterListQuery
	if activeOnly {
		query = newsletterListActiveQuery
	}

	var rowsOut []model.NewsletterSubscriber
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.NewsletterSubscriber])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	res := make([]*model.NewsletterSubscriber, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

const (
	newsletterListQuery = `
		SELECT id, email, unsubscribe_token, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers
		ORDER BY subscribed_at DESC
		LIMIT $1 OFFSET $2`

	newsletterListActiveQuery = `
		SELECT id, email, unsubscribe_token, subscribed_at, unsubscribed_at
		FROM newsletter_subscribers
		WHERE unsubscribed_at IS NULL
		ORDER BY subscribed_at DESC
		LIMIT $1 OFFSET $2`
)
