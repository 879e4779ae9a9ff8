package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/luminaryawards/program-api/internal/data/database"
	"github.com/luminaryawards/program-api/internal/data/pgxutil"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// InquiryRepo provides database operations for partnership inquiries.
type InquiryRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewInquiryRepo creates a new InquiryRepo with real time provider.
func NewInquiryRepo(db *sql.DB) *InquiryRepo {
	return &InquiryRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewInquiryRepoWithTimeProvider creates a new InquiryRepo with a custom time provider (useful for tests).
func NewInquiryRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *InquiryRepo {
	return &InquiryRepo{DB: db, timeProvider: tp}
}

// Create inserts a new partnership inquiry in the open state.
func (r *InquiryRepo) Create(ctx context.Context, req *model.CreateInquiryRequest) (*model.PartnershipInquiry, error) {
	if req == nil {
		return nil, errors.New("create inquiry request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	var out model.PartnershipInquiry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO partnership_inquiries (
				name, email, organization, message, status, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6
			) RETURNING id, name, email, organization, message, status, closed_by, created_at, updated_at
		`, req.Name, req.Email, req.Organization, req.Message, model.InquiryStatusOpen, now)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PartnershipInquiry])
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return &out, nil
}

// GetByID retrieves an inquiry by ID.
func (r *InquiryRepo) GetByID(ctx context.Context, id string) (*model.PartnershipInquiry, error) {
	var out model.PartnershipInquiry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, inquiryGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PartnershipInquiry])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to get inquiry by ID: %w", err)
	}
	return &out, nil
}

// List retrieves inquiries with optional status filter, newest first.
func (r *InquiryRepo) List(ctx context.Context, opts model.InquiriesListOptions) ([]*model.PartnershipInquiry, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(
			"id", "name", "email", "organization", "message",
			"status", "closed_by", "created_at", "updated_at",
		),
		database.WithLimit(limit),
		database.WithOffset(offset),
		database.WithOrderBy("created_at", sortDirDesc),
	}
	if opts.Status != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("status", database.Equal, string(*opts.Status)),
		))
	}

	query, args := database.BuildListQuery(database.NewListQueryOptions("partnership_inquiries", queryOpts...))

	var rowsOut []model.PartnershipInquiry
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.PartnershipInquiry])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	res := make([]*model.PartnershipInquiry, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Close marks an inquiry closed and records who closed it. Closing an
// already-closed inquiry is a no-op that returns the current row.
func (r *InquiryRepo) Close(ctx context.Context, id, closedBy string) (*model.PartnershipInquiry, error) {
	var out model.PartnershipInquiry
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			UPDATE partnership_inquiries
			SET status = $2,
			    closed_by = COALESCE(closed_by, $3),
			    updated_at = $4
			WHERE id = $1
			RETURNING id, name, email, organization, message, status, closed_by, created_at, updated_at
		`, id, model.InquiryStatusClosed, closedBy, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.PartnershipInquiry])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInquiryNotFound
		}
		return nil, fmt.Errorf("failed to close inquiry: %w", err)
	}
	return &out, nil
}

const inquiryGetByIDQuery = `
	SELECT id, name, email, organization, message, status, closed_by, created_at, updated_at
	FROM partnership_inquiries
	WHERE id = $1`
