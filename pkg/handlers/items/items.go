// Package items holds the handlers for the public catalog.
package items

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/SUSSSKIDD/server-ReWare/pkg/api"
	"github.com/SUSSSKIDD/server-ReWare/pkg/cache"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/respond"
	"github.com/SUSSSKIDD/server-ReWare/pkg/mapping"
	"github.com/SUSSSKIDD/server-ReWare/pkg/middleware"
	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// ItemsHandler holds the dependencies for item-related handlers.
type ItemsHandler struct {
	Store storage.ApiStore
	Cache *cache.Cache

	// ModerationRequired controls whether new items enter the moderation
	// queue or go live immediately.
	ModerationRequired bool
}

// NewItemsHandler creates a new ItemsHandler. cache may be nil.
func NewItemsHandler(store storage.ApiStore, c *cache.Cache, moderationRequired bool) *ItemsHandler {
	return &ItemsHandler{Store: store, Cache: c, ModerationRequired: moderationRequired}
}

// ListItems handles the public listing with filtering, search, sorting and
// pagination. Anonymous responses are viewer-independent and cacheable.
func (h *ItemsHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	query := parseItemQuery(r)

	viewerID := ""
	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		viewerID = identity.UserID
	}

	// Only anonymous pages hit the cache: is_liked is viewer-specific.
	cacheKey := ""
	if viewerID == "" && h.Cache != nil {
		key, err := h.Cache.ListingsKey(r.Context(), r.URL.Query().Encode())
		if err != nil {
			slog.Error("failed to build listings cache key", "error", err)
		} else {
			cacheKey = key
			if payload, ok, err := h.Cache.Get(r.Context(), cacheKey); err != nil {
				slog.Error("listings cache read failed", "error", err)
			} else if ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write(payload)
				return
			}
		}
	}

	page, err := h.Store.ListAvailableItems(r.Context(), query)
	if err != nil {
		respond.Error(w, err)
		return
	}

	apiPage := mapping.ToApiItemsPage(page, viewerID)
	if cacheKey != "" {
		if payload, err := json.Marshal(apiPage); err == nil {
			if err := h.Cache.Set(r.Context(), cacheKey, payload, cache.ListingsTTL); err != nil {
				slog.Error("listings cache write failed", "error", err)
			}
		}
	}

	respond.JSON(w, http.StatusOK, apiPage)
}

// CreateItem handles new item submissions.
func (h *ItemsHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var newItem api.NewItem
	if err := json.NewDecoder(r.Body).Decode(&newItem); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := newItem.Validate(); err != nil {
		respond.Error(w, err)
		return
	}

	// First contact may arrive here; the owner record must exist before the
	// items_count increment.
	if _, err := h.Store.EnsureUser(r.Context(), identity.UserID, identity.Name, identity.Role); err != nil {
		respond.Error(w, err)
		return
	}

	item := mapping.ToModelNewItem(identity.UserID, &newItem)
	item.IsApproved = !h.ModerationRequired

	created, err := h.Store.CreateItem(r.Context(), item)
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.invalidateListings(r)
	respond.JSON(w, http.StatusCreated, mapping.ToApiItem(created, identity.UserID))
}

// GetItemById returns a single item. Items outside the public pool are only
// visible to their owner and to admins.
func (h *ItemsHandler) GetItemById(w http.ResponseWriter, r *http.Request, itemId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	item, err := h.Store.GetItem(r.Context(), itemId.String())
	if err != nil {
		respond.Error(w, err)
		return
	}

	if !item.Listable() && item.OwnerId != identity.UserID && !identity.IsAdmin() {
		respond.Error(w, storage.ErrNotFound)
		return
	}

	if item.OwnerId != identity.UserID {
		if err := h.Store.IncrementViews(r.Context(), item.Id); err != nil {
			slog.Error("failed to increment views", "itemId", item.Id, "error", err)
		}
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiItem(item, identity.UserID))
}

// UpdateItem applies an owner's patch to an item.
func (h *ItemsHandler) UpdateItem(w http.ResponseWriter, r *http.Request, itemId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	var patch api.UpdateItem
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := patch.Validate(); err != nil {
		respond.Error(w, err)
		return
	}

	updated, err := h.Store.UpdateItem(r.Context(), itemId.String(), identity.UserID, mapping.ToModelItemPatch(&patch))
	if err != nil {
		respond.Error(w, err)
		return
	}

	h.invalidateListings(r)
	respond.JSON(w, http.StatusOK, mapping.ToApiItem(updated, identity.UserID))
}

// DeleteItem removes an item. Owners delete their own; admins delete any.
func (h *ItemsHandler) DeleteItem(w http.ResponseWriter, r *http.Request, itemId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	if err := h.Store.DeleteItem(r.Context(), itemId.String(), identity.UserID, identity.IsAdmin()); err != nil {
		respond.Error(w, err)
		return
	}

	h.invalidateListings(r)
	w.WriteHeader(http.StatusNoContent)
}

// ToggleLike flips the caller's like on an item.
func (h *ItemsHandler) ToggleLike(w http.ResponseWriter, r *http.Request, itemId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	result, err := h.Store.ToggleLike(r.Context(), itemId.String(), identity.UserID)
	if err != nil {
		respond.Error(w, err)
		return
	}

	respond.JSON(w, http.StatusOK, mapping.ToApiLikeResult(result))
}

// RedeemItem lets the caller buy an item outright with points. The transfer
// runs first because it carries the overdraw check; losing the availability
// race afterwards refunds the transfer.
func (h *ItemsHandler) RedeemItem(w http.ResponseWriter, r *http.Request, itemId openapi_types.UUID) {
	identity, _ := middleware.IdentityFromContext(r.Context())

	item, err := h.Store.GetItem(r.Context(), itemId.String())
	if err != nil {
		respond.Error(w, err)
		return
	}
	if !item.Listable() {
		respond.Error(w, storage.ErrItemUnavailable)
		return
	}
	if item.OwnerId == identity.UserID {
		respond.Error(w, storage.ErrSelfSwap)
		return
	}

	if _, err := h.Store.EnsureUser(r.Context(), identity.UserID, identity.Name, identity.Role); err != nil {
		respond.Error(w, err)
		return
	}

	if err := h.Store.TransferPoints(r.Context(), identity.UserID, item.OwnerId, item.PointsValue, uuid.New().String()); err != nil {
		respond.Error(w, err)
		return
	}

	redeemed, err := h.Store.MarkItemRedeemed(r.Context(), item.Id, identity.UserID, models.RedemptionPoints)
	if err != nil {
		if refundErr := h.Store.TransferPoints(r.Context(), item.OwnerId, identity.UserID, item.PointsValue, uuid.New().String()); refundErr != nil {
			slog.Error("redemption refund failed", "itemId", item.Id, "userId", identity.UserID, "error", refundErr)
		}
		respond.Error(w, err)
		return
	}

	h.invalidateListings(r)
	respond.JSON(w, http.StatusOK, mapping.ToApiItem(redeemed, identity.UserID))
}

func (h *ItemsHandler) invalidateListings(r *http.Request) {
	if h.Cache == nil {
		return
	}
	if err := h.Cache.InvalidateListings(r.Context()); err != nil {
		slog.Error("failed to invalidate listings cache", "error", err)
	}
}

func parseItemQuery(r *http.Request) models.ItemQuery {
	q := r.URL.Query()
	query := models.ItemQuery{
		Category:  q.Get("category"),
		Size:      q.Get("size"),
		Condition: q.Get("condition"),
		Search:    q.Get("search"),
		Sort:      models.ItemSort(q.Get("sort")),
	}
	query.MinPoints, _ = strconv.ParseInt(q.Get("minPoints"), 10, 64)
	query.MaxPoints, _ = strconv.ParseInt(q.Get("maxPoints"), 10, 64)
	query.Page, _ = strconv.Atoi(q.Get("page"))
	query.PerPage, _ = strconv.Atoi(q.Get("perPage"))
	return query
}
