package models

import (
	"time"
)

// SwapStatus defines the possible states of a swap request.
type SwapStatus string

const (
	PENDING   SwapStatus = "PENDING"
	ACCEPTED  SwapStatus = "ACCEPTED"
	REJECTED  SwapStatus = "REJECTED"
	COMPLETED SwapStatus = "COMPLETED"
	CANCELLED SwapStatus = "CANCELLED"
)

// IsTerminal reports whether no further status transition is allowed.
func (s SwapStatus) IsTerminal() bool {
	return s == REJECTED || s == COMPLETED || s == CANCELLED
}

// SwapType distinguishes item-for-item swaps from point redemptions.
type SwapType string

const (
	DIRECT SwapType = "DIRECT"
	POINTS SwapType = "POINTS"
)

// Role defines the access level of a user.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// RedemptionType records how an item left the available pool.
type RedemptionType string

const (
	RedemptionSwap   RedemptionType = "swap"
	RedemptionPoints RedemptionType = "points"
)

const (
	// SwapBonusPoints is the fixed bonus credited to both parties when a swap is accepted.
	SwapBonusPoints int64 = 100

	// StartingPoints is the balance a user is seeded with on first contact.
	StartingPoints int64 = 100
)

// User represents the internal domain model for a user.
// Points and the cumulative counters are mutated only through atomic
// storage-layer adjustments, never by writing the whole record back.
type User struct {
	UserId       string    `json:"user_id" dynamodbav:"user_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Role         Role      `json:"role" dynamodbav:"role"`
	Points       int64     `json:"points" dynamodbav:"points"`
	ItemsCount   int64     `json:"items_count" dynamodbav:"items_count"`
	SwapsCount   int64     `json:"swaps_count" dynamodbav:"swaps_count"`
	RatingSum    int64     `json:"rating_sum" dynamodbav:"rating_sum"`
	ReviewsCount int64     `json:"reviews_count" dynamodbav:"reviews_count"`
	Version      int64     `json:"version" dynamodbav:"version"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
}

// Rating returns the average review score, or 0 with no reviews.
func (u *User) Rating() float64 {
	if u.ReviewsCount == 0 {
		return 0
	}
	return float64(u.RatingSum) / float64(u.ReviewsCount)
}

// ItemImage is an already-decoded image record supplied by the upload boundary.
type ItemImage struct {
	Data     string `dynamodbav:"data"`
	MimeType string `dynamodbav:"mime_type"`
	Filename string `dynamodbav:"filename"`
}

// Item represents the internal domain model for a catalog item.
// It includes dynamodbav tags for marshalling.
type Item struct {
	Id              string      `dynamodbav:"id"`
	OwnerId         string      `dynamodbav:"owner_id"`
	Title           string      `dynamodbav:"title"`
	Description     string      `dynamodbav:"description"`
	Category        string      `dynamodbav:"category"`
	Size            string      `dynamodbav:"size"`
	Condition       string      `dynamodbav:"condition"`
	Tags            []string    `dynamodbav:"tags,omitempty"`
	PointsValue     int64       `dynamodbav:"points_value"`
	Images          []ItemImage `dynamodbav:"images"`
	IsAvailable     bool        `dynamodbav:"is_available"`
	IsApproved      bool        `dynamodbav:"is_approved"`
	IsRejected      bool        `dynamodbav:"is_rejected"`
	RejectionReason string      `dynamodbav:"rejection_reason,omitempty"`
	LikedBy         []string    `dynamodbav:"liked_by,omitempty,stringset"`
	Likes           int64       `dynamodbav:"likes"`
	Views           int64       `dynamodbav:"views"`
	// SearchText is the lowercased concatenation of title, description and
	// tags; public search filters with contains() against it.
	SearchText string `dynamodbav:"search_text"`
	// IsListed is "1" while the item is available, approved and not
	// rejected, and absent otherwise. Sparse attribute backing the
	// public-listing index.
	IsListed       string         `dynamodbav:"is_listed,omitempty"`
	RedeemedBy     string         `dynamodbav:"redeemed_by,omitempty"`
	RedeemedAt     *time.Time     `dynamodbav:"redeemed_at,omitempty"`
	RedemptionType RedemptionType `dynamodbav:"redemption_type,omitempty"`
	CreatedAt      time.Time      `dynamodbav:"created_at"`
	UpdatedAt      time.Time      `dynamodbav:"updated_at"`
}

// Listable reports whether the item may appear in public listings.
func (i *Item) Listable() bool {
	return i.IsAvailable && i.IsApproved && !i.IsRejected
}

// LikedByUser reports whether userID is in the item's liked_by set.
func (i *Item) LikedByUser(userID string) bool {
	for _, id := range i.LikedBy {
		if id == userID {
			return true
		}
	}
	return false
}

// PointsTransaction is the record of the point transfer executed when a
// points swap is accepted. It is the only durable trace of the transfer.
type PointsTransaction struct {
	FromUserId    string `dynamodbav:"from_user_id"`
	ToUserId      string `dynamodbav:"to_user_id"`
	Amount        int64  `dynamodbav:"amount"`
	TransactionId string `dynamodbav:"transaction_id"`
}

// Rating is one party's review of a completed swap.
type Rating struct {
	Score   int       `dynamodbav:"score"`
	Comment string    `dynamodbav:"comment,omitempty"`
	RatedAt time.Time `dynamodbav:"rated_at"`
}

// Swap represents the internal domain model for a swap request.
// OwnerId denormalizes the requested item's owner at creation time so that
// authorization checks do not need a second read.
type Swap struct {
	Id                 string             `dynamodbav:"id"`
	RequesterId        string             `dynamodbav:"requester_id"`
	OwnerId            string             `dynamodbav:"owner_id"`
	RequestedItemId    string             `dynamodbav:"requested_item_id"`
	OfferedItemIds     []string           `dynamodbav:"offered_item_ids,omitempty"`
	SwapType           SwapType           `dynamodbav:"swap_type"`
	PointsOffered      int64              `dynamodbav:"points_offered,omitempty"`
	Status             SwapStatus         `dynamodbav:"status"`
	ResponseMessage    string             `dynamodbav:"response_message,omitempty"`
	PointsTransaction  *PointsTransaction `dynamodbav:"points_transaction,omitempty"`
	RequesterRating    *Rating            `dynamodbav:"requester_rating,omitempty"`
	OwnerRating        *Rating            `dynamodbav:"owner_rating,omitempty"`
	CancelledBy        string             `dynamodbav:"cancelled_by,omitempty"`
	CancellationReason string             `dynamodbav:"cancellation_reason,omitempty"`
	IsCompleted        bool               `dynamodbav:"is_completed"`
	CompletedAt        *time.Time         `dynamodbav:"completed_at,omitempty"`
	CreatedAt          time.Time          `dynamodbav:"created_at"`
	UpdatedAt          time.Time          `dynamodbav:"updated_at"`
}

// IsParty reports whether userID is the requester or the item owner.
func (s *Swap) IsParty(userID string) bool {
	return userID == s.RequesterId || userID == s.OwnerId
}

// ItemSort enumerates the supported listing sort orders.
type ItemSort string

const (
	SortNewest     ItemSort = "newest"
	SortOldest     ItemSort = "oldest"
	SortPointsAsc  ItemSort = "points_asc"
	SortPointsDesc ItemSort = "points_desc"
)

// ItemQuery is the filter/sort/page input for public listings.
type ItemQuery struct {
	Category  string
	Size      string
	Condition string
	MinPoints int64
	MaxPoints int64
	Search    string
	Sort      ItemSort
	Page      int
	PerPage   int
}

// PageInfo describes one page of a listing result.
type PageInfo struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalItems  int  `json:"totalItems"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// ItemPage is one page of catalog items.
type ItemPage struct {
	Items []Item
	Page  PageInfo
}

// LikeResult is the outcome of a like toggle.
type LikeResult struct {
	Likes   int64 `json:"likes"`
	IsLiked bool  `json:"isLiked"`
}

// StatsWindow selects the platform-stats reporting window.
type StatsWindow string

const (
	WindowDay   StatsWindow = "day"
	WindowWeek  StatsWindow = "week"
	WindowMonth StatsWindow = "month"
	WindowYear  StatsWindow = "year"
)

// Duration returns the wall-clock length of the window.
func (w StatsWindow) Duration() time.Duration {
	switch w {
	case WindowDay:
		return 24 * time.Hour
	case WindowWeek:
		return 7 * 24 * time.Hour
	case WindowMonth:
		return 30 * 24 * time.Hour
	default:
		return 365 * 24 * time.Hour
	}
}

// SwapCounts breaks a user's swaps down by status.
type SwapCounts struct {
	Pending   int `json:"pending"`
	Accepted  int `json:"accepted"`
	Rejected  int `json:"rejected"`
	Completed int `json:"completed"`
	Cancelled int `json:"cancelled"`
}

// Dashboard is the per-user aggregation view.
type Dashboard struct {
	User           User       `json:"user"`
	TotalItems     int        `json:"total_items"`
	AvailableItems int        `json:"available_items"`
	Swaps          SwapCounts `json:"swaps"`
	Rating         float64    `json:"rating"`
}

// PlatformStats is the admin aggregation view over a time window.
type PlatformStats struct {
	Window         StatsWindow `json:"window"`
	Since          time.Time   `json:"since"`
	NewUsers       int         `json:"new_users"`
	NewItems       int         `json:"new_items"`
	NewSwaps       int         `json:"new_swaps"`
	CompletedSwaps int         `json:"completed_swaps"`
	PointsMoved    int64       `json:"points_moved"`
	PendingReview  int         `json:"pending_review"`
}
