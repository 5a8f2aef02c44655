package storage

import "errors"

// ErrNotFound is returned when a referenced entity does not exist.
var ErrNotFound = errors.New("entity not found")

// ErrForbidden is returned when the caller is not allowed to perform the operation.
var ErrForbidden = errors.New("operation not permitted for caller")

// ErrSelfSwap is returned when a user requests a swap against their own item.
var ErrSelfSwap = errors.New("cannot request a swap for your own item")

// ErrInvalidState is returned when an operation is not legal in the swap's current state.
var ErrInvalidState = errors.New("operation not valid in current swap state")

// ErrItemUnavailable is returned when the requested item is missing, unavailable or unapproved.
var ErrItemUnavailable = errors.New("item is not available")

// ErrInvalidOffer is returned when a direct-swap offer references missing, foreign or unavailable items.
var ErrInvalidOffer = errors.New("offered items are invalid")

// ErrInsufficientPoints is returned when a balance is lower than the amount to debit.
var ErrInsufficientPoints = errors.New("insufficient points")

// ErrPointsMismatch is returned when the offered points do not equal the item's points value.
var ErrPointsMismatch = errors.New("points offered must equal the item's points value")

// ErrDuplicateRequest is returned when the requester already has a pending swap for the item.
var ErrDuplicateRequest = errors.New("a pending swap for this item already exists")

// ErrAlreadyApproved is returned when approving an item that is already approved.
var ErrAlreadyApproved = errors.New("item is already approved")

// ErrAlreadyRejected is returned when rejecting an item that is already rejected.
var ErrAlreadyRejected = errors.New("item is already rejected")

// ErrConflict is returned when an optimistic write lost a race and may be retried.
var ErrConflict = errors.New("concurrent modification detected")
