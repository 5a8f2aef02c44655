package events

import (
	"context"
	"time"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

// EventType labels a swap lifecycle transition.
type EventType string

const (
	SwapCreated   EventType = "swap.created"
	SwapAccepted  EventType = "swap.accepted"
	SwapRejected  EventType = "swap.rejected"
	SwapCompleted EventType = "swap.completed"
	SwapCancelled EventType = "swap.cancelled"
)

// SwapEvent is the message published for every swap lifecycle transition.
// The notifier consumes these and fans them out to both parties.
type SwapEvent struct {
	Type            EventType         `json:"type"`
	SwapId          string            `json:"swap_id"`
	RequesterId     string            `json:"requester_id"`
	OwnerId         string            `json:"owner_id"`
	RequestedItemId string            `json:"requested_item_id"`
	SwapType        models.SwapType   `json:"swap_type"`
	Status          models.SwapStatus `json:"status"`
	PointsMoved     int64             `json:"points_moved,omitempty"`
	OccurredAt      time.Time         `json:"occurred_at"`
}

// Publisher defines the interface for publishing swap lifecycle events.
type Publisher interface {
	// PublishSwapEvent enqueues a swap event for asynchronous delivery.
	PublishSwapEvent(ctx context.Context, evt SwapEvent) error
}

// NoOpPublisher is a publisher that does nothing. Used in tests and in
// components that have no queue wired.
type NoOpPublisher struct{}

// PublishSwapEvent does nothing.
func (p *NoOpPublisher) PublishSwapEvent(ctx context.Context, evt SwapEvent) error {
	return nil
}
