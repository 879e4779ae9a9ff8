// Package model defines the core data types and structures used throughout the awards program service.
package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// maxNameLen is the maximum allowed length for names and titles in characters.
	maxNameLen = 255
	// maxSlugLen bounds URL slugs.
	maxSlugLen = 120
	// minCohortYear is the first year the program ran.
	minCohortYear = 1990
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// AwardeeCategory names the award track an awardee was recognized in.
type AwardeeCategory string

const (
	AwardeeCategoryLeadership AwardeeCategory = "leadership"
	AwardeeCategoryInnovation AwardeeCategory = "innovation"
	AwardeeCategoryService    AwardeeCategory = "service"
	AwardeeCategoryArts       AwardeeCategory = "arts"
)

// Valid reports whether the category is supported.
func (c AwardeeCategory) Valid() bool {
	switch c {
	case AwardeeCategoryLeadership, AwardeeCategoryInnovation, AwardeeCategoryService, AwardeeCategoryArts:
		return true
	default:
		return false
	}
}

// ParseAwardeeCategory normalizes a category string and reports whether it is supported.
func ParseAwardeeCategory(value string) (AwardeeCategory, bool) {
	c := AwardeeCategory(strings.ToLower(strings.TrimSpace(value)))
	if c.Valid() {
		return c, true
	}
	return "", false
}

// Awardee represents one recognized program awardee.
type Awardee struct {
	ID         string          `json:"id"                  db:"id"`
	Slug       string          `json:"slug"                db:"slug"`
	FullName   string          `json:"full_name"           db:"full_name"`
	CohortYear int             `json:"cohort_year"         db:"cohort_year"`
	Category   AwardeeCategory `json:"category"            db:"category"`
	Citation   string          `json:"citation"            db:"citation"`
	Bio        string          `json:"bio"                 db:"bio"`
	PhotoURL   *string         `json:"photo_url,omitempty" db:"photo_url"`
	Featured   bool            `json:"featured"            db:"featured"`
	Published  bool            `json:"published"           db:"published"`
	CreatedAt  time.Time       `json:"created_at"          db:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"          db:"updated_at"`
}

// AwardeesListOptions controls paging and filtering for listing awardees.
// Notes:
// - Sort supports: "created_at", "full_name", "cohort_year" (case-insensitive).
// - Dir supports: "asc", "desc" (case-insensitive); values are normalized internally.
// - Q matches full_name via ILIKE substring.
type AwardeesListOptions struct {
	Limit      int
	Offset     int
	Q          *string
	CohortYear *int
	Category   *AwardeeCategory
	Featured   *bool
	Published  *bool
	Sort       string
	Dir        string
}

// CreateAwardeeRequest represents parameters to create an Awardee.
type CreateAwardeeRequest struct {
	Slug       string          `json:"slug"`
	FullName   string          `json:"full_name"`
	CohortYear int             `json:"cohort_year"`
	Category   AwardeeCategory `json:"category"`
	Citation   string          `json:"citation"`
	Bio        string          `json:"bio,omitempty"`
	PhotoURL   *string         `json:"photo_url,omitempty"`
	Featured   bool            `json:"featured,omitempty"`
	Published  *bool           `json:"published,omitempty"`
}

// UpdateAwardeeRequest represents parameters to update an Awardee.
type UpdateAwardeeRequest struct {
	Slug       *string          `json:"slug,omitempty"`
	FullName   *string          `json:"full_name,omitempty"`
	CohortYear *int             `json:"cohort_year,omitempty"`
	Category   *AwardeeCategory `json:"category,omitempty"`
	Citation   *string          `json:"citation,omitempty"`
	Bio        *string          `json:"bio,omitempty"`
	PhotoURL   *string          `json:"photo_url,omitempty"`
	Featured   *bool            `json:"featured,omitempty"`
	Published  *bool            `json:"published,omitempty"`
}

// validateSlug checks slug shape shared by create and update paths.
func validateSlug(slug string) error {
	if slug == "" {
		return errors.New("slug is required and cannot be empty")
	}
	if utf8.RuneCountInString(slug) > maxSlugLen {
		return errors.New("slug cannot exceed 120 characters")
	}
	if !slugPattern.MatchString(slug) {
		return errors.New("slug must contain only lowercase letters, digits, and hyphens")
	}
	return nil
}

// validateCohortYear bounds the cohort year to plausible program years.
func validateCohortYear(year int) error {
	if year < minCohortYear || year > time.Now().Year()+1 {
		return errors.New("cohort_year is out of range")
	}
	return nil
}

// Validate validates CreateAwardeeRequest.
func (r *CreateAwardeeRequest) Validate() error {
	r.Slug = strings.ToLower(strings.TrimSpace(r.Slug))
	if err := validateSlug(r.Slug); err != nil {
		return err
	}
	name := strings.TrimSpace(r.FullName)
	if name == "" {
		return errors.New("full_name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return errors.New("full_name cannot exceed 255 characters")
	}
	if err := validateCohortYear(r.CohortYear); err != nil {
		return err
	}
	category, ok := ParseAwardeeCategory(string(r.Category))
	if !ok {
		return errors.New("invalid category")
	}
	r.Category = category
	if strings.TrimSpace(r.Citation) == "" {
		return errors.New("citation is required and cannot be empty")
	}
	return nil
}

// HasUpdates reports whether any field is set in UpdateAwardeeRequest.
func (r *UpdateAwardeeRequest) HasUpdates() bool {
	return r.Slug != nil || r.FullName != nil || r.CohortYear != nil || r.Category != nil ||
		r.Citation != nil || r.Bio != nil || r.PhotoURL != nil || r.Featured != nil ||
		r.Published != nil
}

// Validate validates UpdateAwardeeRequest, ensuring at least one field is set and values are sane.
func (r *UpdateAwardeeRequest) Validate() error {
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
	if r.FullName != nil {
		n := strings.TrimSpace(*r.FullName)
		if n == "" {
			return errors.New("full_name cannot be empty")
		}
		if utf8.RuneCountInString(n) > maxNameLen {
			return errors.New("full_name cannot exceed 255 characters")
		}
	}
	if r.CohortYear != nil {
		if err := validateCohortYear(*r.CohortYear); err != nil {
			return err
		}
	}
	if r.Category != nil {
		category, ok := ParseAwardeeCategory(string(*r.Category))
		if !ok {
			return errors.New("invalid category")
		}
		*r.Category = category
	}
	if r.Citation != nil && strings.TrimSpace(*r.Citation) == "" {
		return errors.New("citation cannot be empty")
	}
	return nil
}
