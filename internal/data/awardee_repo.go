package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/luminaryawards/program-api/internal/data/database"
	"github.com/luminaryawards/program-api/internal/data/pgxutil"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"
)

var (
	// ErrAwardeeNotFound is returned when an awardee is not found.
	ErrAwardeeNotFound = errors.New("awardee not found")
	// ErrAwardeeSlugExists is returned when attempting to create/update an awardee with a duplicate slug.
	ErrAwardeeSlugExists = errors.New("awardee slug already exists")
)

// AwardeeRepo provides database operations for awardees.
type AwardeeRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAwardeeRepo creates a new AwardeeRepo with real time provider.
func NewAwardeeRepo(db *sql.DB) *AwardeeRepo {
	return &AwardeeRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAwardeeRepoWithTimeProvider creates a new AwardeeRepo with a custom time provider (useful for tests).
func NewAwardeeRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AwardeeRepo {
	return &AwardeeRepo{DB: db, timeProvider: tp}
}

// Create inserts a new awardee.
func (r *AwardeeRepo) Create(ctx context.Context, req *model.CreateAwardeeRequest) (*model.Awardee, error) {
	if req == nil {
		return nil, errors.New("create awardee request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Default published to true if not specified (matches DB default)
	published := true
	if req.Published != nil {
		published = *req.Published
	}

	now := r.timeProvider.Now().UTC()
	var out model.Awardee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO awardees (
				slug, full_name, cohort_year, category, citation, bio, photo_url, featured, published, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
			) RETURNING id, slug, full_name, cohort_year, category, citation, bio, photo_url, featured, published, created_at, updated_at
		`,
			req.Slug,
			strings.TrimSpace(req.FullName),
			req.CohortYear,
			req.Category,
			strings.TrimSpace(req.Citation),
			req.Bio,
			req.PhotoURL,
			req.Featured,
			published,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Awardee])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves an awardee by ID.
func (r *AwardeeRepo) GetByID(ctx context.Context, id string) (*model.Awardee, error) {
	return r.getByQuery(ctx, awardeeGetByIDQuery, "failed to get awardee by ID", id)
}

// GetBySlug retrieves an awardee by slug.
func (r *AwardeeRepo) GetBySlug(ctx context.Context, slug string) (*model.Awardee, error) {
	return r.getByQuery(ctx, awardeeGetBySlugQuery, "failed to get awardee by slug", strings.ToLower(strings.TrimSpace(slug)))
}

// List retrieves awardees with optional filters and sorting.
func (r *AwardeeRepo) List(ctx context.Context, opts model.AwardeesListOptions) ([]*model.Awardee, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := r.buildAwardeeQueryOptions(opts, limit, offset)
	query, args := database.BuildListQuery(queryOpts)

	var rowsOut []model.Awardee
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Awardee])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list awardees: %w", err)
	}
	res := make([]*model.Awardee, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of an awardee.
func (r *AwardeeRepo) Update(ctx context.Context, id string, req model.UpdateAwardeeRequest) (*model.Awardee, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Awardee
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		args = append(args, id)
		query := "UPDATE awardees SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING id, slug, full_name, cohort_year, category, citation, bio, photo_url, featured, published, created_at, updated_at"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Awardee])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating an awardee based on the request.
func (r *AwardeeRepo) buildUpdateClause(req model.UpdateAwardeeRequest) (string, []any) {
	setParts := make([]string, 0, 10)
	args := make([]any, 0, 10)
	nextIdx := func() int { return len(args) + 1 }

	if req.Slug != nil {
		setParts = append(setParts, fmt.Sprintf("slug = $%d", nextIdx()))
		args = append(args, *req.Slug)
	}
	if req.FullName != nil {
		setParts = append(setParts, fmt.Sprintf("full_name = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.FullName))
	}
	if req.CohortYear != nil {
		setParts = append(setParts, fmt.Sprintf("cohort_year = $%d", nextIdx()))
		args = append(args, *req.CohortYear)
	}
	if req.Category != nil {
		setParts = append(setParts, fmt.Sprintf("category = $%d", nextIdx()))
		args = append(args, *req.Category)
	}
	if req.Citation != nil {
		setParts = append(setParts, fmt.Sprintf("citation = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Citation))
	}
	if req.Bio != nil {
		setParts = append(setParts, fmt.Sprintf("bio = $%d", nextIdx()))
		args = append(args, *req.Bio)
	}
	if req.PhotoURL != nil {
		if strings.TrimSpace(*req.PhotoURL) == "" {
			setParts = append(setParts, "photo_url = NULL")
		} else {
			setParts = append(setParts, fmt.Sprintf("photo_url = $%d", nextIdx()))
			args = append(args, *req.PhotoURL)
		}
	}
	if req.Featured != nil {
		setParts = append(setParts, fmt.Sprintf("featured = $%d", nextIdx()))
		args = append(args, *req.Featured)
	}
	if req.Published != nil {
		setParts = append(setParts, fmt.Sprintf("published = $%d", nextIdx()))
		args = append(args, *req.Published)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes an awardee by ID.
func (r *AwardeeRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM awardees WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete awardee: %w", err)
	}
	return rows > 0, nil
}

// --- helpers ---

const (
	awardeeGetByIDQuery = `
		SELECT id, slug, full_name, cohort_year, category, citation, bio, photo_url,
		       featured, published, created_at, updated_at
		FROM awardees
		WHERE id = $1`

	awardeeGetBySlugQuery = `
		SELECT id, slug, full_name, cohort_year, category, citation, bio, photo_url,
		       featured, published, created_at, updated_at
		FROM awardees
		WHERE slug = $1`
)

// awardeeColumns returns the standard column list for awardee queries.
func awardeeColumns() []string {
	return []string{
		"id",
		"slug",
		"full_name",
		"cohort_year",
		"category",
		"citation",
		"bio",
		"photo_url",
		"featured",
		"published",
		"created_at",
		"updated_at",
	}
}

// buildAwardeeQueryOptions builds query options for awardee listing with filters and sorting.
func (r *AwardeeRepo) buildAwardeeQueryOptions(
	opts model.AwardeesListOptions,
	limit, offset int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(awardeeColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("full_name", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.CohortYear != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("cohort_year", database.Equal, *opts.CohortYear),
		))
	}
	if opts.Category != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("category", database.Equal, string(*opts.Category)),
		))
	}
	if opts.Featured != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("featured", database.Equal, *opts.Featured),
		))
	}
	if opts.Published != nil {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("published", database.Equal, *opts.Published),
		))
	}

	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"full_name":   "full_name",
		"cohort_year": "cohort_year",
		"created_at":  "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	return database.NewListQueryOptions("awardees", queryOpts...)
}

// validateSortOptions validates and returns a safe sort column and direction.
// Unknown columns fall back to created_at, unknown directions to DESC.
func validateSortOptions(sort, dir string, allowedSorts map[string]string) (string, string) {
	sortCol := "created_at"
	sortDir := sortDirDesc

	if sort != "" {
		if validSort, ok := allowedSorts[strings.ToLower(strings.TrimSpace(sort))]; ok {
			sortCol = validSort
		}
	}
	if dir != "" {
		allowedDirs := map[string]string{
			"asc":  sortDirAsc,
			"desc": sortDirDesc,
		}
		if validDir, ok := allowedDirs[strings.ToLower(strings.TrimSpace(dir))]; ok {
			sortDir = validDir
		}
	}
	return sortCol, sortDir
}

// getByQuery executes a query and returns a single awardee.
func (r *AwardeeRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.Awardee, error) {
	var awardee model.Awardee
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		awardee, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Awardee])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAwardeeNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &awardee, nil
}

func (r *AwardeeRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrAwardeeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrAwardeeSlugExists
	}
	return err
}
