package api

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrNoImages is returned when an item is submitted without any image.
var ErrNoImages = errors.New("at least one image is required")

// ValidationError carries field-level messages for a rejected request body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

const (
	maxPointsValue  = 10000
	maxReasonLength = 500
)

var (
	categories = []string{"tops", "bottoms", "dresses", "outerwear", "footwear", "accessories", "other"}
	sizes      = []string{"XS", "S", "M", "L", "XL", "XXL", "one-size"}
	conditions = []string{"new", "like-new", "good", "fair", "worn"}

	swapTypes   = []string{"direct", "points"}
	swapActions = []string{"accept", "reject"}
	decisions   = []string{"approve", "reject"}
)

func oneOf(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}

// Validate checks a new item submission. Images are checked last so the
// caller sees field problems before the dedicated no-images error.
func (n *NewItem) Validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(n.Title) == "" {
		fields["title"] = "title is required"
	}
	if strings.TrimSpace(n.Description) == "" {
		fields["description"] = "description is required"
	}
	if !oneOf(n.Category, categories) {
		fields["category"] = fmt.Sprintf("category must be one of %s", strings.Join(categories, ", "))
	}
	if !oneOf(n.Size, sizes) {
		fields["size"] = fmt.Sprintf("size must be one of %s", strings.Join(sizes, ", "))
	}
	if !oneOf(n.Condition, conditions) {
		fields["condition"] = fmt.Sprintf("condition must be one of %s", strings.Join(conditions, ", "))
	}
	if n.PointsValue < 1 || n.PointsValue > maxPointsValue {
		fields["points_value"] = fmt.Sprintf("points_value must be between 1 and %d", maxPointsValue)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	if len(n.Images) == 0 {
		return ErrNoImages
	}
	return nil
}

// Validate checks an item patch. Only present fields are validated.
func (u *UpdateItem) Validate() error {
	fields := map[string]string{}
	if u.Title != nil && strings.TrimSpace(*u.Title) == "" {
		fields["title"] = "title must not be empty"
	}
	if u.Description != nil && strings.TrimSpace(*u.Description) == "" {
		fields["description"] = "description must not be empty"
	}
	if u.Category != nil && !oneOf(*u.Category, categories) {
		fields["category"] = fmt.Sprintf("category must be one of %s", strings.Join(categories, ", "))
	}
	if u.Size != nil && !oneOf(*u.Size, sizes) {
		fields["size"] = fmt.Sprintf("size must be one of %s", strings.Join(sizes, ", "))
	}
	if u.Condition != nil && !oneOf(*u.Condition, conditions) {
		fields["condition"] = fmt.Sprintf("condition must be one of %s", strings.Join(conditions, ", "))
	}
	if u.PointsValue != nil && (*u.PointsValue < 1 || *u.PointsValue > maxPointsValue) {
		fields["points_value"] = fmt.Sprintf("points_value must be between 1 and %d", maxPointsValue)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	if u.Images != nil && len(*u.Images) == 0 {
		return ErrNoImages
	}
	return nil
}

// Validate checks a new swap request.
func (n *NewSwap) Validate() error {
	fields := map[string]string{}
	if _, err := uuid.Parse(n.RequestedItemId); err != nil {
		fields["requested_item_id"] = "requested_item_id must be a valid UUID"
	}
	if !oneOf(n.SwapType, swapTypes) {
		fields["swap_type"] = fmt.Sprintf("swap_type must be one of %s", strings.Join(swapTypes, ", "))
	}
	switch n.SwapType {
	case "direct":
		if len(n.OfferedItemIds) == 0 {
			fields["offered_item_ids"] = "direct swaps must offer at least one item"
		}
		seen := make(map[string]struct{}, len(n.OfferedItemIds))
		for _, id := range n.OfferedItemIds {
			if _, err := uuid.Parse(id); err != nil {
				fields["offered_item_ids"] = "offered_item_ids must be valid UUIDs"
				break
			}
			if _, dup := seen[id]; dup {
				fields["offered_item_ids"] = "offered_item_ids must not repeat an item"
				break
			}
			seen[id] = struct{}{}
		}
		if n.PointsOffered != 0 {
			fields["points_offered"] = "direct swaps must not offer points"
		}
	case "points":
		if n.PointsOffered < 1 {
			fields["points_offered"] = "points swaps must offer a positive amount"
		}
		if len(n.OfferedItemIds) != 0 {
			fields["offered_item_ids"] = "points swaps must not offer items"
		}
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks a swap response.
func (r *SwapResponse) Validate() error {
	fields := map[string]string{}
	if !oneOf(r.Action, swapActions) {
		fields["action"] = fmt.Sprintf("action must be one of %s", strings.Join(swapActions, ", "))
	}
	if len(r.Message) > maxReasonLength {
		fields["message"] = fmt.Sprintf("message must not exceed %d characters", maxReasonLength)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks a cancellation request.
func (c *CancelSwap) Validate() error {
	if len(c.Reason) > maxReasonLength {
		return &ValidationError{Fields: map[string]string{
			"reason": fmt.Sprintf("reason must not exceed %d characters", maxReasonLength),
		}}
	}
	return nil
}

// Validate checks a swap rating.
func (r *RateSwap) Validate() error {
	fields := map[string]string{}
	if r.Score < 1 || r.Score > 5 {
		fields["score"] = "score must be between 1 and 5"
	}
	if len(r.Comment) > maxReasonLength {
		fields["comment"] = fmt.Sprintf("comment must not exceed %d characters", maxReasonLength)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Validate checks an admin moderation decision.
func (m *Moderation) Validate() error {
	fields := map[string]string{}
	if !oneOf(m.Decision, decisions) {
		fields["decision"] = fmt.Sprintf("decision must be one of %s", strings.Join(decisions, ", "))
	}
	if m.Decision == "reject" && strings.TrimSpace(m.Reason) == "" {
		fields["reason"] = "a rejection must carry a reason"
	}
	if len(m.Reason) > maxReasonLength {
		fields["reason"] = fmt.Sprintf("reason must not exceed %d characters", maxReasonLength)
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
