package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luminaryawards/program-api/internal/data"
	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/service"
)

type fakePostRepo struct {
	createFunc    func(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error)
	getBySlugFunc func(ctx context.Context, slug string) (*model.Post, error)
	listFunc      func(ctx context.Context, opts model.PostsListOptions) ([]*model.Post, error)
}

func (f *fakePostRepo) Create(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error) {
	if f.createFunc != nil {
		return f.createFunc(ctx, req)
	}
	return nil, data.ErrPostNotFound
}

func (f *fakePostRepo) GetByID(_ context.Context, _ string) (*model.Post, error) {
	return nil, data.ErrPostNotFound
}

func (f *fakePostRepo) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	if f.getBySlugFunc != nil {
		return f.getBySlugFunc(ctx, slug)
	}
	return nil, data.ErrPostNotFound
}

func (f *fakePostRepo) List(ctx context.Context, opts model.PostsListOptions) ([]*model.Post, error) {
	if f.listFunc != nil {
		return f.listFunc(ctx, opts)
	}
	return nil, nil
}

func (f *fakePostRepo) Update(_ context.Context, _ string, _ model.UpdatePostRequest) (*model.Post, error) {
	return nil, data.ErrPostNotFound
}

func (f *fakePostRepo) Delete(_ context.Context, _ string) (bool, error) { return false, nil }

func (f *fakePostRepo) PublishDue(_ context.Context, _ time.Time) (int, error) { return 0, nil }

func newPostHandlers(repo *fakePostRepo) *PostHandlers {
	return &PostHandlers{Svc: service.NewPostService(service.PostServiceOptions{PostRepo: repo})}
}

func adminContext(r *http.Request, userID string) *http.Request {
	authCtx := domainauth.AuthContext{
		UserID:          userID,
		ResolvedRole:    domainauth.RoleAdmin,
		RoleSource:      domainauth.RoleSourceSessionClaim,
		IsAuthenticated: true,
	}
	return r.WithContext(SetAuthContextInContext(r.Context(), authCtx))
}

func TestPostHandlers_Create_AuthorFromGuard(t *testing.T) {
	var gotAuthor string
	repo := &fakePostRepo{
		createFunc: func(_ context.Context, req *model.CreatePostRequest) (*model.Post, error) {
			gotAuthor = req.AuthorID
			return &model.Post{ID: "p-1", Slug: req.Slug, Title: req.Title, AuthorID: req.AuthorID}, nil
		},
	}
	h := newPostHandlers(repo)

	// author_id in the body must be ignored in favor of the guard identity.
	body := `{"slug":"announcing-2026-cohort","title":"Announcing the 2026 Cohort",` +
		`"body":"We are delighted to introduce...","author_id":"spoofed"}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", strings.NewReader(body))
	req = adminContext(req, "admin-7")
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "admin-7", gotAuthor)
}

func TestPostHandlers_Create_NoGuardContext(t *testing.T) {
	h := newPostHandlers(&fakePostRepo{})

	body := `{"slug":"announcing-2026-cohort","title":"Announcing","body":"..."}`
	req := httptest.NewRequest(http.MethodPost, "/api/admin/posts", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPostHandlers_GetPublicBySlug_DraftReadsAsNotFound(t *testing.T) {
	repo := &fakePostRepo{
		getBySlugFunc: func(_ context.Context, slug string) (*model.Post, error) {
			return &model.Post{ID: "p-1", Slug: slug, Title: "Draft", Live: false}, nil
		},
	}
	h := newPostHandlers(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/draft-post", nil)
	req.SetPathValue("slug", "draft-post")
	rec := httptest.NewRecorder()
	h.GetPublicBySlug(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPostHandlers_GetPublicBySlug_Live(t *testing.T) {
	published := time.Now().Add(-time.Hour)
	repo := &fakePostRepo{
		getBySlugFunc: func(_ context.Context, slug string) (*model.Post, error) {
			return &model.Post{ID: "p-1", Slug: slug, Title: "Live Post", Live: true, PublishedAt: &published}, nil
		},
	}
	h := newPostHandlers(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/posts/live-post", nil)
	req.SetPathValue("slug", "live-post")
	rec := httptest.NewRecorder()
	h.GetPublicBySlug(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Live Post"`)
}

func TestPostHandlers_ListPublic_SetsPublicOnly(t *testing.T) {
	var gotOpts model.PostsListOptions
	repo := &fakePostRepo{
		listFunc: func(_ context.Context, opts model.PostsListOptions) ([]*model.Post, error) {
			gotOpts = opts
			return []*model.Post{}, nil
		},
	}
	h := newPostHandlers(repo)

	req := httptest.NewRequest(http.MethodGet, "/api/posts?tag=ceremony", nil)
	rec := httptest.NewRecorder()
	h.ListPublic(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, gotOpts.PublicOnly)
	require.NotNil(t, gotOpts.Tag)
	assert.Equal(t, "ceremony", *gotOpts.Tag)
}
