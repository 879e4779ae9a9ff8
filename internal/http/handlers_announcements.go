package httpx

import (
	"errors"
	"net/http"

	"github.com/luminaryawards/program-api/internal/data"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/service"
)

// AnnouncementHandlers provides HTTP handlers for announcement operations.
type AnnouncementHandlers struct {
	Svc *service.AnnouncementService
}

// Create handles HTTP requests to create an announcement.
func (h *AnnouncementHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAnnouncementRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	announcement, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, announcement)
}

// ListActive handles public retrieval of currently active announcements.
func (h *AnnouncementHandlers) ListActive(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.Svc.ListActive(r.Context())
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"announcements": announcements})
}

// ListAll handles back-office listing of all announcements, expired included.
func (h *AnnouncementHandlers) ListAll(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxContentListLimit)

	announcements, err := h.Svc.ListAll(r.Context(), limit, offset)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"announcements": announcements,
		"limit":         limit,
		"offset":        offset,
	})
}

// GetByID handles back-office announcement lookups.
func (h *AnnouncementHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("announcement id is required")},
		)
		return
	}

	announcement, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrAnnouncementNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "announcement_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, announcement)
}

// Update handles HTTP requests to update an announcement.
func (h *AnnouncementHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("announcement id is required")},
		)
		return
	}

	var req model.UpdateAnnouncementRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	announcement, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAnnouncementNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "announcement_not_found", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, announcement)
}

// Delete handles HTTP requests to delete an announcement.
func (h *AnnouncementHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("announcement id is required")},
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
			ErrorParams{Code: http.StatusNotFound, ErrCode: "announcement_not_found", Err: errors.New("announcement not found")},
		)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
