// Package users holds the profile and dashboard handlers.
package users

import (
	"net/http"

	"github.com/SUSSSKIDD/server-ReWare/pkg/api"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/respond"
	"github.com/SUSSSKIDD/server-ReWare/pkg/mapping"
	"github.com/SUSSSKIDD/server-ReWare/pkg/middleware"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// UsersHandler holds the dependencies for user-related handlers.
type UsersHandler struct {
	Store storage.ApiStore
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(store storage.ApiStore) *UsersHandler {
	return &UsersHandler{Store: store}
}

// GetMe returns the caller's profile, creating the record on first contact.
func (h *UsersHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	user, err := h.Store.EnsureUser(r.Context(), identity.UserID, identity.Name, identity.Role)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiUser(user))
}

// GetMyItems returns every item the caller owns, listed or not.
func (h *UsersHandler) GetMyItems(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	items, err := h.Store.ListItemsByOwner(r.Context(), identity.UserID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiItems := make([]*api.Item, len(items))
	for i := range items {
		apiItems[i] = mapping.ToApiItem(&items[i], identity.UserID)
	}
	respond.JSON(w, http.StatusOK, apiItems)
}

// GetMyDashboard returns the caller's aggregated dashboard view.
func (h *UsersHandler) GetMyDashboard(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	dashboard, err := h.Store.GetUserDashboard(r.Context(), identity.UserID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, dashboard)
}
