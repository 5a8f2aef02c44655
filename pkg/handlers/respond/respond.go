// Package respond centralizes JSON rendering and the mapping from storage
// errors to HTTP status codes, so every handler reports failures the same way.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SUSSSKIDD/server-ReWare/pkg/api"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

// Error maps err onto the HTTP error envelope. Unrecognized errors become
// opaque 500s; the details go to the log, not the client.
func Error(w http.ResponseWriter, err error) {
	var verr *api.ValidationError
	if errors.As(err, &verr) {
		JSON(w, http.StatusBadRequest, api.Error{Kind: "validation", Message: "request validation failed", Fields: verr.Fields})
		return
	}
	if errors.Is(err, api.ErrNoImages) {
		JSON(w, http.StatusBadRequest, api.Error{Kind: "no_images", Message: err.Error()})
		return
	}

	kind, status := classify(err)
	if status == http.StatusInternalServerError {
		slog.Error("request failed", "error", err)
		JSON(w, status, api.Error{Kind: kind, Message: "internal server error"})
		return
	}
	JSON(w, status, api.Error{Kind: kind, Message: err.Error()})
}

func classify(err error) (string, int) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return "not_found", http.StatusNotFound
	case errors.Is(err, storage.ErrForbidden):
		return "forbidden", http.StatusForbidden
	case errors.Is(err, storage.ErrSelfSwap):
		return "self_swap", http.StatusForbidden
	case errors.Is(err, storage.ErrInvalidState):
		return "invalid_state", http.StatusConflict
	case errors.Is(err, storage.ErrAlreadyApproved):
		return "already_approved", http.StatusConflict
	case errors.Is(err, storage.ErrAlreadyRejected):
		return "already_rejected", http.StatusConflict
	case errors.Is(err, storage.ErrDuplicateRequest):
		return "duplicate_request", http.StatusConflict
	case errors.Is(err, storage.ErrConflict):
		return "conflict", http.StatusConflict
	case errors.Is(err, storage.ErrInsufficientPoints):
		return "insufficient_points", http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrPointsMismatch):
		return "points_mismatch", http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrInvalidOffer):
		return "invalid_offer", http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrItemUnavailable):
		return "item_unavailable", http.StatusUnprocessableEntity
	default:
		return "internal", http.StatusInternalServerError
	}
}
