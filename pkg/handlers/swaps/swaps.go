// Package swaps holds the handlers driving the swap state machine.
package swaps

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/SUSSSKIDD/server-ReWare/pkg/api"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/respond"
	"github.com/SUSSSKIDD/server-ReWare/pkg/mapping"
	"github.com/SUSSSKIDD/server-ReWare/pkg/middleware"
	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// SwapsHandler holds the dependencies for swap-related handlers.
type SwapsHandler struct {
	Store storage.ApiStore
}

// NewSwapsHandler creates a new SwapsHandler.
func NewSwapsHandler(store storage.ApiStore) *SwapsHandler {
	return &SwapsHandler{Store: store}
}

// CreateSwap handles a new swap request.
func (h *SwapsHandler) CreateSwap(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var newSwap api.NewSwap
	if err := json.NewDecoder(r.Body).Decode(&newSwap); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := newSwap.Validate(); err != nil {
		respond.Error(w, err)
		return
	}

	// Points preconditions read the requester's balance, so the record must
	// exist before validation runs in the storage layer.
	if _, err := h.Store.EnsureUser(r.Context(), identity.UserID, identity.Name, identity.Role); err != nil {
		respond.Error(w, err)
		return
	}

	created, err := h.Store.CreateSwap(r.Context(), mapping.ToModelNewSwap(identity.UserID, &newSwap))
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusCreated, mapping.ToApiSwap(created))
}

// GetSwapById returns a swap to one of its parties.
func (h *SwapsHandler) GetSwapById(w http.ResponseWriter, r *http.Request, swapId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	swap, err := h.Store.GetSwap(r.Context(), swapId.String())
	if err != nil {
		respond.Error(w, err)
		return
	}
	if !swap.IsParty(identity.UserID) && !identity.IsAdmin() {
		respond.Error(w, storage.ErrNotFound)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSwap(swap))
}

// ListMySwaps returns the caller's swaps, optionally narrowed by status.
func (h *SwapsHandler) ListMySwaps(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	status := models.SwapStatus(strings.ToUpper(r.URL.Query().Get("status")))
	switch status {
	case "", models.PENDING, models.ACCEPTED, models.REJECTED, models.COMPLETED, models.CANCELLED:
	default:
		respond.Error(w, &api.ValidationError{Fields: map[string]string{
			"status": "status must be one of pending, accepted, rejected, completed, cancelled",
		}})
		return
	}

	swaps, err := h.Store.ListSwapsByUser(r.Context(), identity.UserID, status)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSwaps(swaps))
}

// RespondToSwap lets the item owner accept or reject a pending swap.
func (h *SwapsHandler) RespondToSwap(w http.ResponseWriter, r *http.Request, swapId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var response api.SwapResponse
	if err := json.NewDecoder(r.Body).Decode(&response); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := response.Validate(); err != nil {
		respond.Error(w, err)
		return
	}

	accept := response.Action == "accept"
	swap, err := h.Store.RespondSwap(r.Context(), swapId.String(), identity.UserID, accept, response.Message)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSwap(swap))
}

// CompleteSwap moves an accepted swap to COMPLETED.
func (h *SwapsHandler) CompleteSwap(w http.ResponseWriter, r *http.Request, swapId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	swap, err := h.Store.CompleteSwap(r.Context(), swapId.String(), identity.UserID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSwap(swap))
}

// CancelSwap cancels a pending or accepted swap.
func (h *SwapsHandler) CancelSwap(w http.ResponseWriter, r *http.Request, swapId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var cancel api.CancelSwap
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&cancel); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
	}
	if err := cancel.Validate(); err != nil {
		respond.Error(w, err)
		return
	}

	swap, err := h.Store.CancelSwap(r.Context(), swapId.String(), identity.UserID, cancel.Reason)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSwap(swap))
}

// RateSwap records the caller's rating of a completed swap.
func (h *SwapsHandler) RateSwap(w http.ResponseWriter, r *http.Request, swapId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var rating api.RateSwap
	if err := json.NewDecoder(r.Body).Decode(&rating); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := rating.Validate(); err != nil {
		respond.Error(w, err)
		return
	}

	swap, err := h.Store.RateSwap(r.Context(), swapId.String(), identity.UserID, rating.Score, rating.Comment)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiSwap(swap))
}
