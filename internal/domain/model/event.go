package model

import (
	"errors"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"
)

// Event represents a program event (ceremony, summit, workshop).
type Event struct {
	ID              string     `json:"id"                         db:"id"`
	Slug            string     `json:"slug"                       db:"slug"`
	Title           string     `json:"title"                      db:"title"`
	Description     string     `json:"description"                db:"description"`
	Location        string     `json:"location"                   db:"location"`
	StartsAt        time.Time  `json:"starts_at"                  db:"starts_at"`
	EndsAt          *time.Time `json:"ends_at,omitempty"          db:"ends_at"`
	RegistrationURL *string    `json:"registration_url,omitempty" db:"registration_url"`
	Published       bool       `json:"published"                  db:"published"`
	CreatedAt       time.Time  `json:"created_at"                 db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"                 db:"updated_at"`
}

// EventsListOptions controls paging and filtering for listing events.
// UpcomingOnly narrows to published events starting at or after now.
type EventsListOptions struct {
	Limit        int
	Offset       int
	Q            *string
	UpcomingOnly bool
	Published    *bool
	Sort         string
	Dir          string
}

// CreateEventRequest represents parameters to create an Event.
type CreateEventRequest struct {
	Slug            string     `json:"slug"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Location        string     `json:"location,omitempty"`
	StartsAt        time.Time  `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	RegistrationURL *string    `json:"registration_url,omitempty"`
	Published       *bool      `json:"published,omitempty"`
}

// UpdateEventRequest represents parameters to update an Event.
type UpdateEventRequest struct {
	Slug            *string    `json:"slug,omitempty"`
	Title           *string    `json:"title,omitempty"`
	Description     *string    `json:"description,omitempty"`
	Location        *string    `json:"location,omitempty"`
	StartsAt        *time.Time `json:"starts_at,omitempty"`
	EndsAt          *time.Time `json:"ends_at,omitempty"`
	RegistrationURL *string    `json:"registration_url,omitempty"`
	Published       *bool      `json:"published,omitempty"`
}

// validateRegistrationURL checks the registration link is an absolute http(s) URL.
func validateRegistrationURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("registration_url must be an absolute http(s) URL")
	}
	return nil
}

// Validate validates CreateEventRequest.
func (r *CreateEventRequest) Validate() error {
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
	if r.StartsAt.IsZero() {
		return errors.New("starts_at is required")
	}
	if r.EndsAt != nil && !r.EndsAt.After(r.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	if r.RegistrationURL != nil {
		if err := validateRegistrationURL(*r.RegistrationURL); err != nil {
			return err
		}
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateEventRequest.
func (r *UpdateEventRequest) HasUpdates() bool {
	return r.Slug != nil || r.Title != nil || r.Description != nil || r.Location != nil ||
		r.StartsAt != nil || r.EndsAt != nil || r.RegistrationURL != nil || r.Published != nil
}

// Validate validates UpdateEventRequest.
func (r *UpdateEventRequest) Validate() error {
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
	if r.StartsAt != nil && r.EndsAt != nil && !r.EndsAt.After(*r.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	if r.RegistrationURL != nil {
		if err := validateRegistrationURL(*r.RegistrationURL); err != nil {
			return err
		}
	}
	return nil
}
