// Package admin holds the moderation and reporting handlers. Every route
// here sits behind the admin-role middleware.
package admin

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/SUSSSKIDD/server-ReWare/pkg/api"
	"github.com/SUSSSKIDD/server-ReWare/pkg/cache"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/respond"
	"github.com/SUSSSKIDD/server-ReWare/pkg/mapping"
	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// AdminHandler holds the dependencies for admin handlers.
type AdminHandler struct {
	Store storage.ApiStore
	Cache *cache.Cache
}

// NewAdminHandler creates a new AdminHandler. cache may be nil.
func NewAdminHandler(store storage.ApiStore, c *cache.Cache) *AdminHandler {
	return &AdminHandler{Store: store, Cache: c}
}

// ListModerationQueue returns items awaiting a decision, oldest first.
func (h *AdminHandler) ListModerationQueue(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.ListPendingModeration(r.Context())
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiItems := make([]*api.Item, len(items))
	for i := range items {
		apiItems[i] = mapping.ToApiItem(&items[i], "")
	}
	respond.JSON(w, http.StatusOK, apiItems)
}

// ModerateItem applies an approve or reject decision to an item.
func (h *AdminHandler) ModerateItem(w http.ResponseWriter, r *http.Request, itemId openapi_types.UUID) {
	var decision api.Moderation
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := decision.Validate(); err != nil {
		respond.Error(w, err)
		return
	}

	var item *models.Item
	var err error
	if decision.Decision == "approve" {
		item, err = h.Store.ApproveItem(r.Context(), itemId.String())
	} else {
		item, err = h.Store.RejectItem(r.Context(), itemId.String(), decision.Reason)
	}
	if err != nil {
		respond.Error(w, err)
		return
	}

	// Approval can put the item into the public pool; rejection pulls it out.
	if h.Cache != nil {
		if err := h.Cache.InvalidateListings(r.Context()); err != nil {
			slog.Error("failed to invalidate listings cache", "error", err)
		}
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiItem(item, ""))
}

// GetPlatformStats returns platform totals over the requested window.
func (h *AdminHandler) GetPlatformStats(w http.ResponseWriter, r *http.Request) {
	window := models.StatsWindow(r.URL.Query().Get("window"))
	switch window {
	case models.WindowDay, models.WindowWeek, models.WindowMonth, models.WindowYear:
	case "":
		window = models.WindowMonth
	default:
		respond.Error(w, &api.ValidationError{Fields: map[string]string{
			"window": "window must be one of day, week, month, year",
		}})
		return
	}

	if h.Cache != nil {
		key := fmt.Sprintf("stats:%s", window)
		if payload, ok, err := h.Cache.Get(r.Context(), key); err != nil {
			slog.Error("stats cache read failed", "error", err)
		} else if ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(payload)
			return
		}
	}

	stats, err := h.Store.GetPlatformStats(r.Context(), window)
	if err != nil {
		respond.Error(w, err)
		return
	}

	if h.Cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := h.Cache.Set(r.Context(), fmt.Sprintf("stats:%s", window), payload, cache.StatsTTL); err != nil {
				slog.Error("stats cache write failed", "error", err)
			}
		}
	}

	respond.JSON(w, http.StatusOK, stats)
}
