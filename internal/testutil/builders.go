// Package testutil provides testing utilities and helpers for the awards program service.
package testutil

import (
	"fmt"
	"time"

	domainauth "github.com/luminaryawards/program-api/internal/domain/auth"
	"github.com/luminaryawards/program-api/internal/domain/model"
)

// AwardeeRequestBuilder provides a fluent interface for building CreateAwardeeRequest objects for testing.
type AwardeeRequestBuilder struct {
	req *model.CreateAwardeeRequest
}

// NewAwardeeRequest creates a new AwardeeRequestBuilder with sensible defaults.
func NewAwardeeRequest() *AwardeeRequestBuilder {
	return &AwardeeRequestBuilder{
		req: &model.CreateAwardeeRequest{
			Slug:       "test-awardee",
			FullName:   "Test Awardee",
			CohortYear: 2024,
			Category:   model.AwardeeCategoryLeadership,
			Citation:   "For outstanding contributions.",
		},
	}
}

// WithSlug sets the slug.
func (b *AwardeeRequestBuilder) WithSlug(slug string) *AwardeeRequestBuilder {
	b.req.Slug = slug
	return b
}

// WithFullName sets the full name.
func (b *AwardeeRequestBuilder) WithFullName(name string) *AwardeeRequestBuilder {
	b.req.FullName = name
	return b
}

// WithCohortYear sets the cohort year.
func (b *AwardeeRequestBuilder) WithCohortYear(year int) *AwardeeRequestBuilder {
	b.req.CohortYear = year
	return b
}

// WithCategory sets the award category.
func (b *AwardeeRequestBuilder) WithCategory(category model.AwardeeCategory) *AwardeeRequestBuilder {
	b.req.Category = category
	return b
}

// WithCitation sets the citation.
func (b *AwardeeRequestBuilder) WithCitation(citation string) *AwardeeRequestBuilder {
	b.req.Citation = citation
	return b
}

// WithPhotoURL sets the photo URL.
func (b *AwardeeRequestBuilder) WithPhotoURL(url string) *AwardeeRequestBuilder {
	b.req.PhotoURL = &url
	return b
}

// Featured marks the awardee as featured.
func (b *AwardeeRequestBuilder) Featured() *AwardeeRequestBuilder {
	b.req.Featured = true
	return b
}

// Published sets the published flag.
func (b *AwardeeRequestBuilder) Published(published bool) *AwardeeRequestBuilder {
	b.req.Published = &published
	return b
}

// Build returns the constructed CreateAwardeeRequest.
func (b *AwardeeRequestBuilder) Build() *model.CreateAwardeeRequest {
	return b.req
}

// PostRequestBuilder provides a fluent interface for building CreatePostRequest objects for testing.
type PostRequestBuilder struct {
	req *model.CreatePostRequest
}

// NewPostRequest creates a new PostRequestBuilder with sensible defaults.
func NewPostRequest() *PostRequestBuilder {
	return &PostRequestBuilder{
		req: &model.CreatePostRequest{
			Slug:  "test-post",
			Title: "Test Post",
			Body:  "Test post body.",
		},
	}
}

// WithSlug sets the slug.
func (b *PostRequestBuilder) WithSlug(slug string) *PostRequestBuilder {
	b.req.Slug = slug
	return b
}

// WithTitle sets the title.
func (b *PostRequestBuilder) WithTitle(title string) *PostRequestBuilder {
	b.req.Title = title
	return b
}

// WithSummary sets the summary.
func (b *PostRequestBuilder) WithSummary(summary string) *PostRequestBuilder {
	b.req.Summary = summary
	return b
}

// WithBody sets the body.
func (b *PostRequestBuilder) WithBody(body string) *PostRequestBuilder {
	b.req.Body = body
	return b
}

// WithAuthor sets the author ID.
func (b *PostRequestBuilder) WithAuthor(authorID string) *PostRequestBuilder {
	b.req.AuthorID = authorID
	return b
}

// WithTags sets the tag list.
func (b *PostRequestBuilder) WithTags(tags ...string) *PostRequestBuilder {
	b.req.Tags = tags
	return b
}

// PublishedAt sets the publication time.
func (b *PostRequestBuilder) PublishedAt(at time.Time) *PostRequestBuilder {
	b.req.PublishedAt = &at
	return b
}

// Build returns the constructed CreatePostRequest.
func (b *PostRequestBuilder) Build() *model.CreatePostRequest {
	return b.req
}

// Common test request presets

// PublishedAwardeeRequest creates a published awardee request with a unique slug suffix.
func PublishedAwardeeRequest(suffix string) *model.CreateAwardeeRequest {
	return NewAwardeeRequest().
		WithSlug("awardee-" + suffix).
		WithFullName(fmt.Sprintf("Awardee %s", suffix)).
		Published(true).
		Build()
}

// DraftPostRequest creates a post request with no publication time.
func DraftPostRequest(suffix, authorID string) *model.CreatePostRequest {
	return NewPostRequest().
		WithSlug("post-" + suffix).
		WithTitle(fmt.Sprintf("Post %s", suffix)).
		WithAuthor(authorID).
		Build()
}

// LivePostRequest creates a post request already published in the past.
func LivePostRequest(suffix, authorID string) *model.CreatePostRequest {
	return NewPostRequest().
		WithSlug("post-" + suffix).
		WithTitle(fmt.Sprintf("Post %s", suffix)).
		WithAuthor(authorID).
		PublishedAt(time.Now().Add(-time.Hour)).
		Build()
}

// ScheduledPostRequest creates a post request scheduled for the future.
func ScheduledPostRequest(suffix, authorID string, at time.Time) *model.CreatePostRequest {
	return NewPostRequest().
		WithSlug("post-" + suffix).
		WithTitle(fmt.Sprintf("Post %s", suffix)).
		WithAuthor(authorID).
		PublishedAt(at).
		Build()
}

// UserUpsertRequest creates an upsert request for a stored user record.
func UserUpsertRequest(id string, role domainauth.Role) *model.UpsertUserRequest {
	return &model.UpsertUserRequest{
		ID:          id,
		Email:       id + "@example.com",
		DisplayName: "User " + id,
		Role:        role,
	}
}

// AnnouncementRequest creates an active announcement request.
func AnnouncementRequest(title string) *model.CreateAnnouncementRequest {
	ends := time.Now().Add(24 * time.Hour)
	return &model.CreateAnnouncementRequest{
		Title:    title,
		Body:     "Announcement body.",
		Severity: model.AnnouncementSeverityInfo,
		StartsAt: time.Now().Add(-time.Hour),
		EndsAt:   &ends,
	}
}

// EventRequest creates an upcoming published event request.
func EventRequest(suffix string) *model.CreateEventRequest {
	published := true
	return &model.CreateEventRequest{
		Slug:      "event-" + suffix,
		Title:     fmt.Sprintf("Event %s", suffix),
		StartsAt:  time.Now().Add(72 * time.Hour),
		Published: &published,
	}
}
