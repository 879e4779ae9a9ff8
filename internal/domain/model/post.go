package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// maxTagLen bounds an individual tag.
	maxTagLen = 64
	// maxTags bounds the number of tags on a post.
	maxTags = 10
)

// Post represents a blog post. A post with a nil PublishedAt is a draft; a
// future PublishedAt is scheduled and flipped live by the publisher loop.
type Post struct {
	ID          string     `json:"id"                     db:"id"`
	Slug        string     `json:"slug"                   db:"slug"`
	Title       string     `json:"title"                  db:"title"`
	Summary     string     `json:"summary"                db:"summary"`
	Body        string     `json:"body"                   db:"body"`
	AuthorID    string     `json:"author_id"              db:"author_id"`
	Tags        []string   `json:"tags"                   db:"tags"`
	PublishedAt *time.Time `json:"published_at,omitempty" db:"published_at"`
	Live        bool       `json:"live"                   db:"live"`
	CreatedAt   time.Time  `json:"created_at"             db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"             db:"updated_at"`
}

// IsPublic reports whether the post is visible on the public site at t.
func (p *Post) IsPublic(t time.Time) bool {
	return p.Live && p.PublishedAt != nil && !p.PublishedAt.After(t)
}

// PostsListOptions controls paging and filtering for listing posts.
// Notes:
// - Sort supports: "created_at", "published_at", "title" (case-insensitive).
// - Dir supports: "asc", "desc" (case-insensitive); values are normalized internally.
// - Q matches title via ILIKE substring.
// - PublicOnly narrows to live posts with published_at <= now.
type PostsListOptions struct {
	Limit      int
	Offset     int
	Q          *string
	Tag        *string
	PublicOnly bool
	Sort       string
	Dir        string
}

// CreatePostRequest represents parameters to create a Post.
type CreatePostRequest struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Summary     string     `json:"summary,omitempty"`
	Body        string     `json:"body"`
	AuthorID    string     `json:"-"` // set from the authenticated admin, never from the request body
	Tags        []string   `json:"tags,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
}

// UpdatePostRequest represents parameters to update a Post.
type UpdatePostRequest struct {
	Slug        *string    `json:"slug,omitempty"`
	Title       *string    `json:"title,omitempty"`
	Summary     *string    `json:"summary,omitempty"`
	Body        *string    `json:"body,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	Live        *bool      `json:"live,omitempty"`
}

// validateTags validates that tags are non-empty and within bounds.
func validateTags(tags []string) error {
	if len(tags) > maxTags {
		return errors.New("a post cannot carry more than 10 tags")
	}
	for _, tag := range tags {
		t := strings.TrimSpace(tag)
		if t == "" {
			return errors.New("tags cannot be empty")
		}
		if utf8.RuneCountInString(t) > maxTagLen {
			return errors.New("tags cannot exceed 64 characters")
		}
	}
	return nil
}

// Validate validates CreatePostRequest.
func (r *CreatePostRequest) Validate() error {
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	if err := validateSlug(r.Slug); err != nil {
		return err
	}
	title := strings.TrimSpace(r.Title)
	if title == "" {
		return errors.New("title is required and cannot be empty")
	}
	if utf8.RuneCountInString(title) > maxNameLen {
		return errors.New("title cannot exceed 255 characters")
	}
	if strings.TrimSpace(r.Body) == "" {
		return errors.New("body is required and cannot be empty")
	}
	return validateTags(r.Tags)
}

// HasUpdates reports whether any field is set in UpdatePostRequest.
func (r *UpdatePostRequest) HasUpdates() bool {
	return r.Slug != nil || r.Title != nil || r.Summary != nil || r.Body != nil ||
		r.Tags != nil || r.PublishedAt != nil || r.Live != nil
}

// Validate validates UpdatePostRequest, ensuring at least one field is set and values are sane.
func (r *UpdatePostRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
	}
	if r.Slug != nil {
		s := strings.ToLower(strings.TrimSpace(*r.Slug))
		if err := validateSlug(s); err != nil {
			return err
		}
		*r.Slug = s
	}
	if r.Title != nil {
		t := strings.TrimSpace(*r.Title)
		if t == "" {
			return errors.New("title cannot be empty")
		}
		if utf8.RuneCountInString(t) > maxNameLen {
			return errors.New("title cannot exceed 255 characters")
		}
	}
	if r.Body != nil && strings.TrimSpace(*r.Body) == "" {
		return errors.New("body cannot be empty")
	}
	return validateTags(r.Tags)
}
