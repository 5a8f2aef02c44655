// Package handlers assembles the HTTP surface: per-resource handlers,
// identity middleware and the chi router that binds them together.
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/SUSSSKIDD/server-ReWare/pkg/cache"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/admin"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/connections"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/items"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/swaps"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers/users"
	appmiddleware "github.com/SUSSSKIDD/server-ReWare/pkg/middleware"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// Config carries the wiring for the HTTP surface.
type Config struct {
	Store  storage.Storage
	Cache  *cache.Cache // optional
	Logger *slog.Logger

	// ModerationRequired gates whether new items wait for an admin decision.
	ModerationRequired bool
}

// NewRouter builds the complete API router.
func NewRouter(cfg Config) http.Handler {
	itemsHandler := items.NewItemsHandler(cfg.Store, cfg.Cache, cfg.ModerationRequired)
	swapsHandler := swaps.NewSwapsHandler(cfg.Store)
	usersHandler := users.NewUsersHandler(cfg.Store)
	adminHandler := admin.NewAdminHandler(cfg.Store, cfg.Cache)
	wsHandler := connections.NewHandler(cfg.Store)

	r := chi.NewRouter()
	// Identity first so the request log line can carry the caller.
	r.Use(appmiddleware.WithIdentity)
	r.Use(appmiddleware.NewStructuredLogger(cfg.Logger))

	r.Route("/items", func(r chi.Router) {
		r.Get("/", itemsHandler.ListItems)
		r.Get("/{itemId}", withUUID("itemId", itemsHandler.GetItemById))

		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.RequireIdentity)
			r.Post("/", itemsHandler.CreateItem)
			r.Patch("/{itemId}", withUUID("itemId", itemsHandler.UpdateItem))
			r.Delete("/{itemId}", withUUID("itemId", itemsHandler.DeleteItem))
			r.Post("/{itemId}/like", withUUID("itemId", itemsHandler.ToggleLike))
			r.Post("/{itemId}/redeem", withUUID("itemId", itemsHandler.RedeemItem))
		})
	})

	r.Route("/swaps", func(r chi.Router) {
		r.Use(appmiddleware.RequireIdentity)
		r.Post("/", swapsHandler.CreateSwap)
		r.Get("/", swapsHandler.ListMySwaps)
		r.Get("/{swapId}", withUUID("swapId", swapsHandler.GetSwapById))
		r.Post("/{swapId}/respond", withUUID("swapId", swapsHandler.RespondToSwap))
		r.Post("/{swapId}/complete", withUUID("swapId", swapsHandler.CompleteSwap))
		r.Post("/{swapId}/cancel", withUUID("swapId", swapsHandler.CancelSwap))
		r.Post("/{swapId}/rate", withUUID("swapId", swapsHandler.RateSwap))
	})

	r.Route("/users", func(r chi.Router) {
		r.Use(appmiddleware.RequireIdentity)
		r.Get("/me", usersHandler.GetMe)
		r.Get("/me/items", usersHandler.GetMyItems)
		r.Get("/me/dashboard", usersHandler.GetMyDashboard)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(appmiddleware.RequireAdmin)
		r.Get("/moderation", adminHandler.ListModerationQueue)
		r.Post("/items/{itemId}/moderate", withUUID("itemId", adminHandler.ModerateItem))
		r.Get("/stats", adminHandler.GetPlatformStats)
	})

	// WebSocket endpoint for the local development server.
	r.Handle("/ws", wsHandler)

	return r
}

// withUUID parses a UUID path parameter before dispatching to the handler.
func withUUID(param string, fn func(http.ResponseWriter, *http.Request, openapi_types.UUID)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, param))
		if err != nil {
			http.Error(w, "Invalid "+param, http.StatusBadRequest)
			return
		}
		fn(w, r, id)
	}
}
