package storage

import (
	"context"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

// SwapReader defines the interface for reading swap data.
type SwapReader interface {
	// GetSwap retrieves a swap by its ID.
	GetSwap(ctx context.Context, swapID string) (*models.Swap, error)

	// ListSwapsByUser retrieves all swaps where the user is requester or
	// item owner, newest first. A non-empty status narrows the result.
	ListSwapsByUser(ctx context.Context, userID string, status models.SwapStatus) ([]models.Swap, error)
}

// SwapManager defines the interface for driving the swap state machine.
// Every transition out of PENDING or ACCEPTED is a compare-and-set on the
// stored status, so concurrent responders cannot double-apply side effects.
type SwapManager interface {
	// CreateSwap validates the swap request preconditions and stores a new
	// PENDING swap. No catalog or ledger side effects happen here;
	// reservation is deferred to acceptance.
	CreateSwap(ctx context.Context, swap *models.Swap) (*models.Swap, error)

	// RespondSwap accepts or rejects a pending swap. Acceptance applies the
	// point transfer, item availability flips, bonuses and swap counters in
	// one atomic storage transaction.
	RespondSwap(ctx context.Context, swapID, responderID string, accept bool, message string) (*models.Swap, error)

	// CompleteSwap moves an accepted swap to COMPLETED.
	CompleteSwap(ctx context.Context, swapID, callerID string) (*models.Swap, error)

	// CancelSwap cancels a pending or accepted swap. Cancelling after
	// acceptance rolls back the applied transfer, bonuses and availability.
	CancelSwap(ctx context.Context, swapID, callerID, reason string) (*models.Swap, error)

	// RateSwap stores one party's rating of a completed swap. Re-rating
	// overwrites the party's previous rating.
	RateSwap(ctx context.Context, swapID, raterID string, score int, comment string) (*models.Swap, error)
}

// SwapStore combines the reader and manager interfaces.
type SwapStore interface {
	SwapReader
	SwapManager
}
