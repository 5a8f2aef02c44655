package storage

import (
	"context"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

// CatalogReader defines the interface for reading catalog data.
type CatalogReader interface {
	// GetItem retrieves an item by its ID.
	GetItem(ctx context.Context, itemID string) (*models.Item, error)

	// ListAvailableItems returns one page of publicly listable items
	// (available, approved, not rejected) matching the query.
	ListAvailableItems(ctx context.Context, query models.ItemQuery) (*models.ItemPage, error)

	// ListItemsByOwner retrieves all items owned by a user.
	ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error)

	// ListPendingModeration retrieves items awaiting an admin decision.
	ListPendingModeration(ctx context.Context) ([]models.Item, error)
}

// CatalogWriter defines the interface for mutating catalog data.
type CatalogWriter interface {
	// CreateItem stores a new item and increments the owner's items_count
	// in the same transaction.
	CreateItem(ctx context.Context, item *models.Item) (*models.Item, error)

	// UpdateItem applies a patch to an item owned by requesterID.
	// The owner field is immutable through this path.
	UpdateItem(ctx context.Context, itemID, requesterID string, patch models.ItemPatch) (*models.Item, error)

	// DeleteItem removes an item and decrements the owner's items_count.
	// Admins bypass the ownership check.
	DeleteItem(ctx context.Context, itemID, requesterID string, isAdmin bool) error

	// ApproveItem marks an item approved, clearing any rejection.
	ApproveItem(ctx context.Context, itemID string) (*models.Item, error)

	// RejectItem marks an item rejected with a reason.
	RejectItem(ctx context.Context, itemID, reason string) (*models.Item, error)

	// ToggleLike adds or removes userID from the item's liked_by set and
	// adjusts the like counter accordingly.
	ToggleLike(ctx context.Context, itemID, userID string) (*models.LikeResult, error)

	// IncrementViews bumps the approximate view counter. Fire-and-forget.
	IncrementViews(ctx context.Context, itemID string) error

	// MarkItemRedeemed takes the item out of the available pool and stamps
	// the redemption fields. Called only by the swap/redemption flows.
	MarkItemRedeemed(ctx context.Context, itemID, redeemedBy string, redemptionType models.RedemptionType) (*models.Item, error)
}

// CatalogStore combines the reader and writer interfaces.
type CatalogStore interface {
	CatalogReader
	CatalogWriter
}
