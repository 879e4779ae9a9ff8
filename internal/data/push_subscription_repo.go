package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/luminaryawards/program-api/internal/data/pgxutil"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// PushSubscriptionRepo provides database operations for browser push registrations.
type PushSubscriptionRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPushSubscriptionRepo creates a new PushSubscriptionRepo with real time provider.
func NewPushSubscriptionRepo(db *sql.DB) *PushSubscriptionRepo {
	return &PushSubscriptionRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPushSubscriptionRepoWithTimeProvider creates a new PushSubscriptionRepo with a custom time provider (useful for tests).
func NewPushSubscriptionRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PushSubscriptionRepo {
	return &PushSubscriptionRepo{DB: db, timeProvider: tp}
}

// Upsert registers a push subscription keyed by endpoint. Re-registering an
// existing endpoint refreshes its keys and attributes.
func (r *PushSubscriptionRepo) Upsert(ctx context.Context, req *model.RegisterPushRequest) (*model.PushSubscription, error) {
	if req == nil {
		return nil, errors.New("register push request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	attrs := req.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}

	now := r.timeProvider.Now().UTC()
	var out model.PushSubscription
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO push_subscriptions (endpoint, p256dh_key, auth_key, attributes, created_at)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (endpoint) DO UPDATE SET
				p256dh_key = EXCLUDED.p256dh_key,
				auth_key = EXCLUDED.auth_key,
				attributes = EXCLUDED.attributes
			RETURNING id, endpoint, p256dh_key, auth_key, attributes, created_at
		`, req.Endpoint, req.P256dhKey, req.AuthKey, attrs, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PushSubscription])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upsert push subscription: %w", err)
	}
	return &out, nil
}

// DeleteByEndpoint removes a subscription by its endpoint URL.
func (r *PushSubscriptionRepo) DeleteByEndpoint(ctx context.Context, endpoint string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM push_subscriptions WHERE endpoint = $1`, endpoint)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete push subscription: %w", err)
	}
	return rows > 0, nil
}

// ListAll retrieves every registered subscription for broadcast fan-out.
func (r *PushSubscriptionRepo) ListAll(ctx context.Context) ([]*model.PushSubscription, error) {
	var rowsOut []model.PushSubscription
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, endpoint, p256dh_key, auth_key, attributes, created_at
			FROM push_subscriptions
			ORDER BY created_at
		`)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.PushSubscription])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list push subscriptions: %w", err)
	}
	res := make([]*model.PushSubscription, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}
