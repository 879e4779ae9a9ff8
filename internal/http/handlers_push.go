package httpx

import (
	"net/http"

	"github.com/luminaryawards/program-api/internal/domain/model"
	"github.com/luminaryawards/program-api/internal/service"
)

// PushHandlers provides HTTP handlers for push subscription operations.
type PushHandlers struct {
	Svc *service.PushService
}

// Register handles public push-subscription registrations. Registering an
// endpoint that already exists refreshes its keys and attributes.
func (h *PushHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterPushRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	sub, err := h.Svc.Register(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "register_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusCreated, sub)
}

// Unregister handles push-subscription removals by endpoint. Removing an
// unknown endpoint reads as a success.
func (h *PushHandlers) Unregister(w http.ResponseWriter, r *http.Request) {
	var req model.UnregisterPushRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if _, err := h.Svc.Unregister(r.Context(), &req); err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "unregister_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"unregistered": true})
}

// Broadcast handles admin-triggered notification fan-outs and reports the
// delivery tally.
func (h *PushHandlers) Broadcast(w http.ResponseWriter, r *http.Request) {
	var req model.BroadcastRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	result, err := h.Svc.Broadcast(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "broadcast_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, result)
}
