package model

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"
)

const maxMessageLen = 5000

// InquiryStatus tracks the handling state of a partnership inquiry.
type InquiryStatus string

const (
	InquiryStatusOpen   InquiryStatus = "open"
	InquiryStatusClosed InquiryStatus = "closed"
)

// Valid reports whether the status is supported.
func (s InquiryStatus) Valid() bool {
	return s == InquiryStatusOpen || s == InquiryStatusClosed
}

// PartnershipInquiry represents a contact/partnership form submission.
type PartnershipInquiry struct {
	ID           string        `json:"id"                      db:"id"`
	Name         string        `json:"name"                    db:"name"`
	Email        string        `json:"email"                   db:"email"`
	Organization string        `json:"organization"            db:"organization"`
	Message      string        `json:"message"                 db:"message"`
	Status       InquiryStatus `json:"status"                  db:"status"`
	ClosedBy     *string       `json:"closed_by,omitempty"     db:"closed_by"`
	CreatedAt    time.Time     `json:"created_at"              db:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"              db:"updated_at"`
}

// CreateInquiryRequest represents a public partnership/contact submission.
type CreateInquiryRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
	Message      string `json:"message"`
}

// InquiriesListOptions controls paging and filtering for listing inquiries.
type InquiriesListOptions struct {
	Limit  int
	Offset int
	Status *InquiryStatus
}

// Validate validates and canonicalizes CreateInquiryRequest.
func (r *CreateInquiryRequest) Validate() error {
	name := strings.TrimSpace(r.Name)
	if name == "" {
		return errors.New("name is required and cannot be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return errors.New("name cannot exceed 255 characters")
	}
	r.Name = name

	email, err := NormalizeEmail(r.Email)
	if err != nil {
		return err
	}
	r.Email = email

	msg := strings.TrimSpace(r.Message)
	if msg == "" {
		return errors.New("message is required and cannot be empty")
	}
	if utf8.RuneCountInString(msg) > maxMessageLen {
		return errors.New("message cannot exceed 5000 characters")
	}
	r.Message = msg

	if utf8.RuneCountInString(r.Organization) > maxNameLen {
		return errors.New("organization cannot exceed 255 characters")
	}
	return nil
}
