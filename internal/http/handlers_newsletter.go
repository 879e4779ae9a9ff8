package httpx

import (
	"net/http"

	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/service"
)

// NewsletterHandlers provides HTTP handlers for newsletter signup operations.
type NewsletterHandlers struct {
	Svc *service.NewsletterService
}

// Subscribe handles public newsletter signups. Re-subscribing an address that
// already exists reactivates it, so the handler never returns a conflict.
func (h *NewsletterHandlers) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req model.SubscribeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	subscriber, err := h.Svc.Subscribe(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "subscribe_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, subscriber)
}

// Unsubscribe handles token-based unsubscribes. An unknown token reads as a
// success so the endpoint cannot be used to probe which tokens exist.
func (h *NewsletterHandlers) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	var req model.UnsubscribeRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Svc.Unsubscribe(r.Context(), &req); err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "unsubscribe_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"unsubscribed": true})
}

// List handles back-office listing of newsletter subscribers.
func (h *NewsletterHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxContentListLimit)
	activeOnly := r.URL.Query().Get("active") == "true"

	subscribers, err := h.Svc.List(r.Context(), limit, offset, activeOnly)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"subscribers": subscribers,
		"limit":       limit,
		"offset":      offset,
	})
}
