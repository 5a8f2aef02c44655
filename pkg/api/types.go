// Package api holds the request and response types of the HTTP surface.
// The wire contract is maintained by hand; ids travel as UUIDs via the
// oapi-codegen runtime types.
package api

import (
	"time"
)

// ItemImage is one already-decoded image payload for an item.
type ItemImage struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type"`
	Filename string `json:"filename"`
}

// NewItem is the request body for creating an item.
type NewItem struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	Size        string      `json:"size"`
	Condition   string      `json:"condition"`
	Tags        []string    `json:"tags,omitempty"`
	PointsValue int64       `json:"points_value"`
	Images      []ItemImage `json:"images"`
}

// UpdateItem is the request body for patching an item. Absent fields are
// left untouched; ownership is not patchable.
type UpdateItem struct {
	Title       *string      `json:"title,omitempty"`
	Description *string      `json:"description,omitempty"`
	Category    *string      `json:"category,omitempty"`
	Size        *string      `json:"size,omitempty"`
	Condition   *string      `json:"condition,omitempty"`
	Tags        *[]string    `json:"tags,omitempty"`
	PointsValue *int64       `json:"points_value,omitempty"`
	Images      *[]ItemImage `json:"images,omitempty"`
	IsAvailable *bool        `json:"is_available,omitempty"`
}

// Item is the public representation of a catalog item.
type Item struct {
	Id              string      `json:"id"`
	OwnerId         string      `json:"owner_id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Category        string      `json:"category"`
	Size            string      `json:"size"`
	Condition       string      `json:"condition"`
	Tags            []string    `json:"tags,omitempty"`
	PointsValue     int64       `json:"points_value"`
	Images          []ItemImage `json:"images"`
	IsAvailable     bool        `json:"is_available"`
	IsApproved      bool        `json:"is_approved"`
	IsRejected      bool        `json:"is_rejected"`
	RejectionReason string      `json:"rejection_reason,omitempty"`
	Likes           int64       `json:"likes"`
	IsLiked         bool        `json:"is_liked"`
	Views           int64       `json:"views"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Pagination is the page envelope every listing response carries.
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// ItemsPage is one page of catalog items.
type ItemsPage struct {
	Items      []*Item    `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// NewSwap is the request body for creating a swap.
type NewSwap struct {
	RequestedItemId string   `json:"requested_item_id"`
	SwapType        string   `json:"swap_type"`
	OfferedItemIds  []string `json:"offered_item_ids,omitempty"`
	PointsOffered   int64    `json:"points_offered,omitempty"`
}

// SwapResponse is the owner's answer to a pending swap.
type SwapResponse struct {
	Action  string `json:"action"`
	Message string `json:"message,omitempty"`
}

// CancelSwap is the request body for cancelling a swap.
type CancelSwap struct {
	Reason string `json:"reason,omitempty"`
}

// RateSwap is one party's rating of a completed swap.
type RateSwap struct {
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

// Moderation is an admin decision on an item.
type Moderation struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

// PointsTransaction is the transfer record attached to an accepted points swap.
type PointsTransaction struct {
	FromUserId    string `json:"from_user_id"`
	ToUserId      string `json:"to_user_id"`
	Amount        int64  `json:"amount"`
	TransactionId string `json:"transaction_id"`
}

// Rating is one party's stored review.
type Rating struct {
	Score   int       `json:"score"`
	Comment string    `json:"comment,omitempty"`
	RatedAt time.Time `json:"rated_at"`
}

// Swap is the public representation of a swap request.
type Swap struct {
	Id                 string             `json:"id"`
	RequesterId        string             `json:"requester_id"`
	OwnerId            string             `json:"owner_id"`
	RequestedItemId    string             `json:"requested_item_id"`
	OfferedItemIds     []string           `json:"offered_item_ids,omitempty"`
	SwapType           string             `json:"swap_type"`
	PointsOffered      int64              `json:"points_offered,omitempty"`
	Status             string             `json:"status"`
	ResponseMessage    string             `json:"response_message,omitempty"`
	PointsTransaction  *PointsTransaction `json:"points_transaction,omitempty"`
	RequesterRating    *Rating            `json:"requester_rating,omitempty"`
	OwnerRating        *Rating            `json:"owner_rating,omitempty"`
	CancelledBy        string             `json:"cancelled_by,omitempty"`
	CancellationReason string             `json:"cancellation_reason,omitempty"`
	CompletedAt        *time.Time         `json:"completed_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// User is the public representation of a user.
type User struct {
	UserId       string    `json:"user_id"`
	Name         string    `json:"name"`
	Role         string    `json:"role"`
	Points       int64     `json:"points"`
	ItemsCount   int64     `json:"items_count"`
	SwapsCount   int64     `json:"swaps_count"`
	Rating       float64   `json:"rating"`
	ReviewsCount int64     `json:"reviews_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Likes   int64 `json:"likes"`
	IsLiked bool  `json:"isLiked"`
}

// Error is the structured error envelope.
type Error struct {
	Kind    string            `json:"kind"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
