// Package httpx provides HTTP handlers and utilities for the awards program API.
package httpx

import (
	"errors"
	"net/http"

	"github.com/luminaryawards/program-api/internal/data"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/service"
)

// AwardeeHandlers provides HTTP handlers for awardee operations.
type AwardeeHandlers struct {
	Svc *service.AwardeeService
}

const (
	maxContentListLimit = 100 // Maximum rows a single list call can return
)

// Create handles HTTP requests to create an awardee.
func (h *AwardeeHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAwardeeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	awardee, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAwardeeSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "slug_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, awardee)
}

// List handles HTTP requests to list awardees for the back office.
func (h *AwardeeHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := awardeeListOptionsFromQuery(r)

	awardees, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"awardees": awardees,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})
}

// ListPublic handles unauthenticated listing of published awardees.
func (h *AwardeeHandlers) ListPublic(w http.ResponseWriter, r *http.Request) {
	opts := awardeeListOptionsFromQuery(r)

	awardees, err := h.Svc.ListPublic(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"awardees": awardees,
		"limit":    opts.Limit,
		"offset":   opts.Offset,
	})
}

// GetBySlug handles public awardee profile lookups.
func (h *AwardeeHandlers) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("awardee slug is required")},
		)
		return
	}

	awardee, err := h.Svc.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, data.ErrAwardeeNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "awardee_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	// Unpublished profiles stay invisible on public routes.
	if !awardee.Published {
		WriteError(
			w,
			ErrorParams{Code: http.StatusNotFound, ErrCode: "awardee_not_found", Err: errors.New("awardee not found")},
		)
		return
	}

	WriteJSON(w, http.StatusOK, awardee)
}

// GetByID handles back-office awardee lookups.
func (h *AwardeeHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("awardee id is required")},
		)
		return
	}

	awardee, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrAwardeeNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "awardee_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, awardee)
}

// Update handles HTTP requests to update an awardee.
func (h *AwardeeHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("awardee id is required")},
		)
		return
	}

	var req model.UpdateAwardeeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	awardee, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAwardeeNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "awardee_not_found", Err: err})
		case errors.Is(err, data.ErrAwardeeSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "slug_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, awardee)
}

// Delete handles HTTP requests to delete an awardee.
func (h *AwardeeHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("awardee id is required")},
		)
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), id)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !deleted {
		WriteError(
			w,
			ErrorParams{Code: http.StatusNotFound, ErrCode: "awardee_not_found", Err: errors.New("awardee not found")},
		)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// awardeeListOptionsFromQuery maps query params onto list options.
func awardeeListOptionsFromQuery(r *http.Request) model.AwardeesListOptions {
	limit, offset := ParseLimitOffset(r, 50, maxContentListLimit)
	opts := model.AwardeesListOptions{
		Limit:  limit,
		Offset: offset,
		Sort:   r.URL.Query().Get("sort"),
		Dir:    r.URL.Query().Get("dir"),
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if year := parseIntQuery(r, "cohort_year", 0); year > 0 {
		opts.CohortYear = &year
	}
	if raw := r.URL.Query().Get("category"); raw != "" {
		if category, ok := model.ParseAwardeeCategory(raw); ok {
			opts.Category = &category
		}
	}
	if raw := r.URL.Query().Get("featured"); raw != "" {
		featured := raw == "true"
		opts.Featured = &featured
	}
	if raw := r.URL.Query().Get("published"); raw != "" {
		published := raw == "true"
		opts.Published = &published
	}
	return opts
}
