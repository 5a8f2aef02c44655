package models

// ItemPatch carries the owner-editable item fields. Nil means "leave as is".
// Ownership and moderation flags are deliberately not patchable here.
type ItemPatch struct {
	Title       *string
	Description *string
	Category    *string
	Size        *string
	Condition   *string
	Tags        *[]string
	PointsValue *int64
	Images      *[]ItemImage
	IsAvailable *bool
}
