package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/luminaryawards/program-api/internal/data/database"
	"github.com/luminaryawards/program-api/internal/data/pgxutil"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

var (
	// ErrPostNotFound is returned when a post is not found.
	ErrPostNotFound = errors.New("post not found")
	// ErrPostSlugExists is returned when attempting to create/update a post with a duplicate slug.
	ErrPostSlugExists = errors.New("post slug already exists")
)

// PostRepo provides database operations for blog posts.
type PostRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPostRepo creates a new PostRepo with real time provider.
func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPostRepoWithTimeProvider creates a new PostRepo with a custom time provider (useful for tests).
func NewPostRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PostRepo {
	return &PostRepo{DB: db, timeProvider: tp}
}

// Create inserts a new post. A post whose published_at is already in the past
// goes live immediately; a future published_at waits for the publisher loop.
func (r *PostRepo) Create(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error) {
	if req == nil {
		return nil, errors.New("create post request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	now := r.timeProvider.Now().UTC()
	live := req.PublishedAt != nil && !req.PublishedAt.After(now)

	var out model.Post
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO posts (
				slug, title, summary, body, author_id, tags, published_at, live, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6, $7, $8, $9
			) RETURNING id, slug, title, summary, body, author_id, tags, published_at, live, created_at, updated_at
		`,
			req.Slug,
			strings.TrimSpace(req.Title),
			req.Summary,
			req.Body,
			req.AuthorID,
			req.Tags,
			req.PublishedAt,
			live,
			now,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Post])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err, false)
	}
	return &out, nil
}

// GetByID retrieves a post by ID.
func (r *PostRepo) GetByID(ctx context.Context, id string) (*model.Post, error) {
	return r.getByQuery(ctx, postGetByIDQuery, "failed to get post by ID", id)
}

// GetBySlug retrieves a post by slug.
func (r *PostRepo) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return r.getByQuery(ctx, postGetBySlugQuery, "failed to get post by slug", strings.ToLower(strings.TrimSpace(slug)))
}

// List retrieves posts with optional filters and sorting.
func (r *PostRepo) List(ctx context.Context, opts model.PostsListOptions) ([]*model.Post, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := max(opts.Offset, 0)

	queryOpts := []database.ListQueryOption{
		database.WithColumns(postColumns()...),
		database.WithLimit(limit),
		database.WithOffset(offset),
	}

	if opts.Q != nil && strings.TrimSpace(*opts.Q) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("title", database.ILike, "%"+strings.TrimSpace(*opts.Q)+"%"),
		))
	}
	if opts.Tag != nil && strings.TrimSpace(*opts.Tag) != "" {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereRawCond("$1 = ANY(tags)", strings.TrimSpace(*opts.Tag)),
		))
	}
	if opts.PublicOnly {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereRawCond("live = TRUE AND published_at <= $1", r.timeProvider.Now().UTC()),
		))
	}

	sortCol, sortDir := validateSortOptions(opts.Sort, opts.Dir, map[string]string{
		"title":        "title",
		"published_at": "published_at",
		"created_at":   "created_at",
	})
	queryOpts = append(queryOpts, database.WithOrderBy(sortCol, sortDir))

	query, args := database.BuildListQuery(database.NewListQueryOptions("posts", queryOpts...))

	var rowsOut []model.Post
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Post])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	res := make([]*model.Post, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Update updates fields of a post.
func (r *PostRepo) Update(ctx context.Context, id string, req model.UpdatePostRequest) (*model.Post, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	var out model.Post
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		setClause, args := r.buildUpdateClause(req)
		args = append(args, id)
		query := "UPDATE posts SET " + setClause + " WHERE id = $" + strconv.Itoa(len(args)) +
			" RETURNING id, slug, title, summary, body, author_id, tags, published_at, live, created_at, updated_at"
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		var e error
		out, e = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Post])
		return e
	})
	if err != nil {
		return nil, r.mapWriteErr(err, true)
	}
	return &out, nil
}

// buildUpdateClause builds the SQL SET clause and args for updating a post based on the request.
func (r *PostRepo) buildUpdateClause(req model.UpdatePostRequest) (string, []any) {
	setParts := make([]string, 0, 8)
	args := make([]any, 0, 8)
	nextIdx := func() int { return len(args) + 1 }

	if req.Slug != nil {
		setParts = append(setParts, fmt.Sprintf("slug = $%d", nextIdx()))
		args = append(args, *req.Slug)
	}
	if req.Title != nil {
		setParts = append(setParts, fmt.Sprintf("title = $%d", nextIdx()))
		args = append(args, strings.TrimSpace(*req.Title))
	}
	if req.Summary != nil {
		setParts = append(setParts, fmt.Sprintf("summary = $%d", nextIdx()))
		args = append(args, *req.Summary)
	}
	if req.Body != nil {
		setParts = append(setParts, fmt.Sprintf("body = $%d", nextIdx()))
		args = append(args, *req.Body)
	}
	if req.Tags != nil {
		setParts = append(setParts, fmt.Sprintf("tags = $%d", nextIdx()))
		args = append(args, req.Tags)
	}
	if req.PublishedAt != nil {
		setParts = append(setParts, fmt.Sprintf("published_at = $%d", nextIdx()))
		args = append(args, *req.PublishedAt)
		// Rescheduling into the future takes the post off the public site
		// until the publisher loop flips it again.
		if req.Live == nil && req.PublishedAt.After(r.timeProvider.Now().UTC()) {
			setParts = append(setParts, "live = FALSE")
		}
	}
	if req.Live != nil {
		setParts = append(setParts, fmt.Sprintf("live = $%d", nextIdx()))
		args = append(args, *req.Live)
	}

	setParts = append(setParts, fmt.Sprintf("updated_at = $%d", nextIdx()))
	args = append(args, r.timeProvider.Now().UTC())
	return strings.Join(setParts, ", "), args
}

// Delete deletes a post by ID.
func (r *PostRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete post: %w", err)
	}
	return rows > 0, nil
}

// PublishDue flips scheduled posts live once their publish time has passed.
// Returns the number of posts published.
func (r *PostRepo) PublishDue(ctx context.Context, now time.Time) (int, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `
			UPDATE posts SET live = TRUE, updated_at = $1
			WHERE live = FALSE AND published_at IS NOT NULL AND published_at <= $1
		`, now.UTC())
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to publish due posts: %w", err)
	}
	return int(rows), nil
}

// --- helpers ---

const (
	postGetByIDQuery = `
		SELECT id, slug, title, summary, body, author_id, tags, published_at, live, created_at, updated_at
		FROM posts
		WHERE id = $1`

	postGetBySlugQuery = `
		SELECT id, slug, title, summary, body, author_id, tags, published_at, live, created_at, updated_at
		FROM posts
		WHERE slug = $1`
)

// postColumns returns the standard column list for post queries.
func postColumns() []string {
	return []string{
		"id",
		"slug",
		"title",
		"summary",
		"body",
		"author_id",
		"tags",
		"published_at",
		"live",
		"created_at",
		"updated_at",
	}
}

// getByQuery executes a query and returns a single post.
func (r *PostRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.Post, error) {
	var post model.Post
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		post, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Post])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPostNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &post, nil
}

func (r *PostRepo) mapWriteErr(err error, includeNotFound bool) error {
	if err == nil {
		return nil
	}
	if includeNotFound && errors.Is(err, pgx.ErrNoRows) {
		return ErrPostNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrPostSlugExists
	}
	return err
}
