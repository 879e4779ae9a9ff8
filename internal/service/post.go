package service

import (
	"context"
	"time"

	"github.com/luminaryawards/program-api/internal/core"
	"github.com/luminaryawards/program-api/internal/domain/model"
	apperrors "github.com/luminaryawards/program-api/internal/errors"
)

// PostServiceOptions groups dependencies for PostService.
type PostServiceOptions struct {
	PostRepo core.PostRepository
}

// PostService orchestrates blog post CRUD. Scheduled publishing is handled
// by the maintenance publisher, which calls PublishDue on a ticker.
type PostService struct {
	posts core.PostRepository
}

// NewPostService constructs a new PostService.
func NewPostService(opts PostServiceOptions) *PostService {
	return &PostService{posts: opts.PostRepo}
}

// Create creates a post. AuthorID must already carry the acting admin's ID.
func (s *PostService) Create(ctx context.Context, req *model.CreatePostRequest) (*model.Post, error) {
	return s.posts.Create(ctx, req)
}

// GetByID retrieves a post by ID.
func (s *PostService) GetByID(ctx context.Context, id string) (*model.Post, error) {
	return s.posts.GetByID(ctx, id)
}

// GetBySlug retrieves a post by slug.
func (s *PostService) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return s.posts.GetBySlug(ctx, slug)
}

// GetPublicBySlug retrieves a post by slug for the public site. Posts that
// exist but are not yet visible read as not found, so the URL leaks nothing
// about scheduled content.
func (s *PostService) GetPublicBySlug(ctx context.Context, slug string) (*model.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !post.IsPublic(time.Now()) {
		return nil, apperrors.NotFound("post not found")
	}
	return post, nil
}

// List returns a page of posts using normalized options.
func (s *PostService) List(ctx context.Context, opts model.PostsListOptions) ([]*model.Post, error) {
	return s.posts.List(ctx, normalizePostListOptions(opts))
}

// ListPublic returns live, published posts for unauthenticated routes.
func (s *PostService) ListPublic(ctx context.Context, opts model.PostsListOptions) ([]*model.Post, error) {
	opts.PublicOnly = true
	normalized := normalizePostListOptions(opts)
	if opts.Sort == "" {
		normalized.Sort = "published_at"
	}
	return s.posts.List(ctx, normalized)
}

// Update updates a post.
func (s *PostService) Update(ctx context.Context, id string, req model.UpdatePostRequest) (*model.Post, error) {
	return s.posts.Update(ctx, id, req)
}

// Delete deletes a post.
func (s *PostService) Delete(ctx context.Context, id string) (bool, error) {
	return s.posts.Delete(ctx, id)
}

func normalizePostListOptions(opts model.PostsListOptions) model.PostsListOptions {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}
	if opts.Sort == "" {
		opts.Sort = "created_at"
	}
	if opts.Dir == "" {
		opts.Dir = "desc"
	}

	return opts
}
