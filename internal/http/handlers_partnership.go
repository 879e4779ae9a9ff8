package httpx

import (
	"errors"
	"net/http"

	"github.com/luminaryawards/program-api/internal/data"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/service"
)

// InquiryHandlers provides HTTP handlers for partnership inquiry operations.
type InquiryHandlers struct {
	Svc *service.InquiryService
}

// Create handles public partnership/contact form submissions.
func (h *InquiryHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateInquiryRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	inquiry, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, inquiry)
}

// List handles back-office listing of inquiries, optionally filtered by status.
func (h *InquiryHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxContentListLimit)
	opts := model.InquiriesListOptions{Limit: limit, Offset: offset}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status := model.InquiryStatus(raw)
		if !status.Valid() {
			WriteError(
				w,
				ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: errors.New("invalid status")},
			)
			return
		}
		opts.Status = &status
	}

	inquiries, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"inquiries": inquiries,
		"limit":     opts.Limit,
		"offset":    opts.Offset,
	})
}

// GetByID handles back-office inquiry lookups.
func (h *InquiryHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("inquiry id is required")},
		)
		return
	}

	inquiry, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrInquiryNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "inquiry_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, inquiry)
}

// Close handles marking an inquiry as handled, attributed to the admin who
// closed it.
func (h *InquiryHandlers) Close(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("inquiry id is required")},
		)
		return
	}

	authCtx, ok := GetAuthContextFromContext(r.Context())
	if !ok {
		WriteError(
			w,
			ErrorParams{Code: http.StatusUnauthorized, ErrCode: "unauthorized", Err: errors.New("authentication required")},
		)
		return
	}

	inquiry, err := h.Svc.Close(r.Context(), id, authCtx.UserID)
	if err != nil {
		if errors.Is(err, data.ErrInquiryNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "inquiry_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "close_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, inquiry)
}
