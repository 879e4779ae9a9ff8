package httpx

import (
	"errors"
	"net/http"

	"github.com/luminaryawards/program-api/internal/data"
	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/service"
)

// EventHandlers provides HTTP handlers for program event operations.
type EventHandlers struct {
	Svc *service.EventService
}

// Create handles HTTP requests to create an event.
func (h *EventHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateEventRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	event, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEventSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "slug_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, event)
}

// List handles back-office listing of events, unpublished included.
func (h *EventHandlers) List(w http.ResponseWriter, r *http.Request) {
	opts := eventListOptionsFromQuery(r)

	events, err := h.Svc.List(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"limit":  opts.Limit,
		"offset": opts.Offset,
	})
}

// ListUpcoming handles public listing of published upcoming events.
func (h *EventHandlers) ListUpcoming(w http.ResponseWriter, r *http.Request) {
	opts := eventListOptionsFromQuery(r)

	events, err := h.Svc.ListUpcoming(r.Context(), opts)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"events": events,
		"limit":  opts.Limit,
		"offset": opts.Offset,
	})
}

// GetBySlug handles public event page lookups.
func (h *EventHandlers) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("event slug is required")},
		)
		return
	}

	event, err := h.Svc.GetBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, data.ErrEventNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "event_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	// Unpublished events stay invisible on public routes.
	if !event.Published {
		WriteError(
			w,
			ErrorParams{Code: http.StatusNotFound, ErrCode: "event_not_found", Err: errors.New("event not found")},
		)
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

// GetByID handles back-office event lookups.
func (h *EventHandlers) GetByID(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("event id is required")},
		)
		return
	}

	event, err := h.Svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, data.ErrEventNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "event_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

// Update handles HTTP requests to update an event.
func (h *EventHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("event id is required")},
		)
		return
	}

	var req model.UpdateEventRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	event, err := h.Svc.Update(r.Context(), id, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrEventNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "event_not_found", Err: err})
		case errors.Is(err, data.ErrEventSlugExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "slug_conflict", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, event)
}

// Delete handles HTTP requests to delete an event.
func (h *EventHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("event id is required")},
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
			ErrorParams{Code: http.StatusNotFound, ErrCode: "event_not_found", Err: errors.New("event not found")},
		)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func eventListOptionsFromQuery(r *http.Request) model.EventsListOptions {
	limit, offset := ParseLimitOffset(r, 50, maxContentListLimit)
	opts := model.EventsListOptions{
		Limit:  limit,
		Offset: offset,
		Sort:   r.URL.Query().Get("sort"),
		Dir:    r.URL.Query().Get("dir"),
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if raw := r.URL.Query().Get("published"); raw != "" {
		published := raw == "true"
		opts.Published = &published
	}
	return opts
}
