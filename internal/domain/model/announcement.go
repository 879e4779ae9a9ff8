package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

// AnnouncementSeverity controls how prominently an announcement is shown.
type AnnouncementSeverity string

const (
	AnnouncementSeverityInfo   AnnouncementSeverity = "info"
	AnnouncementSeverityNotice AnnouncementSeverity = "notice"
	AnnouncementSeverityUrgent AnnouncementSeverity = "urgent"
)

// Valid reports whether the severity is supported.
func (s AnnouncementSeverity) Valid() bool {
	switch s {
	case AnnouncementSeverityInfo, AnnouncementSeverityNotice, AnnouncementSeverityUrgent:
		return true
	default:
		return false
	}
}

// normalizeAnnouncementSeverity trims and lowercases the input, defaulting to info when empty.
func normalizeAnnouncementSeverity(v AnnouncementSeverity) AnnouncementSeverity {
	normalized := AnnouncementSeverity(strings.ToLower(strings.TrimSpace(string(v))))
	if normalized == "" {
		return AnnouncementSeverityInfo
	}
	return normalized
}

// Announcement represents a time-boxed site-wide announcement.
type Announcement struct {
	ID        string               `json:"id"                 db:"id"`
	Title     string               `json:"title"              db:"title"`
	Body      string               `json:"body"               db:"body"`
	Severity  AnnouncementSeverity `json:"severity"           db:"severity"`
	StartsAt  time.Time            `json:"starts_at"          db:"starts_at"`
	EndsAt    *time.Time           `json:"ends_at,omitempty"  db:"ends_at"`
	CreatedAt time.Time            `json:"created_at"         db:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"         db:"updated_at"`
}

// ActiveAt reports whether the announcement should be shown at t.
func (a *Announcement) ActiveAt(t time.Time) bool {
	if t.Before(a.StartsAt) {
		return false
	}
	return a.EndsAt == nil || t.Before(*a.EndsAt)
}

// CreateAnnouncementRequest represents parameters to create an Announcement.
type CreateAnnouncementRequest struct {
	Title    string               `json:"title"`
	Body     string               `json:"body"`
	Severity AnnouncementSeverity `json:"severity,omitempty"`
	StartsAt time.Time            `json:"starts_at"`
	EndsAt   *time.Time           `json:"ends_at,omitempty"`
}

// UpdateAnnouncementRequest represents parameters to update an Announcement.
type UpdateAnnouncementRequest struct {
	Title    *string               `json:"title,omitempty"`
	Body     *string               `json:"body,omitempty"`
	Severity *AnnouncementSeverity `json:"severity,omitempty"`
	StartsAt *time.Time            `json:"starts_at,omitempty"`
	EndsAt   *time.Time            `json:"ends_at,omitempty"`
}

// Validate validates CreateAnnouncementRequest.
func (r *CreateAnnouncementRequest) Validate() error {
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
	r.Severity = normalizeAnnouncementSeverity(r.Severity)
	if !r.Severity.Valid() {
		return errors.New("invalid severity")
	}
	if r.StartsAt.IsZero() {
		return errors.New("starts_at is required")
	}
	if r.EndsAt != nil && !r.EndsAt.After(r.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateAnnouncementRequest.
func (r *UpdateAnnouncementRequest) HasUpdates() bool {
	return r.Title != nil || r.Body != nil || r.Severity != nil || r.StartsAt != nil || r.EndsAt != nil
}

// Validate validates UpdateAnnouncementRequest.
func (r *UpdateAnnouncementRequest) Validate() error {
	if !r.HasUpdates() {
		return errors.New("at least one field must be updated")
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
	if r.Severity != nil {
		sev := normalizeAnnouncementSeverity(*r.Severity)
		if !sev.Valid() {
			return errors.New("invalid severity")
		}
		*r.Severity = sev
	}
	if r.StartsAt != nil && r.EndsAt != nil && !r.EndsAt.After(*r.StartsAt) {
		return errors.New("ends_at must be after starts_at")
	}
	return nil
}
