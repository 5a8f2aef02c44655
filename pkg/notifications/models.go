package notifications

// MessageType defines the type of a WebSocket message.
type MessageType string

const (
	// MessageTypeSwapUpdate is for messages about swap lifecycle changes.
	MessageTypeSwapUpdate MessageType = "swapUpdate"
)

// Message represents a generic WebSocket message.
type Message struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// SwapUpdatePayload is the payload for a swapUpdate message.
type SwapUpdatePayload struct {
	SwapID       string `json:"swap_id"`
	Status       string `json:"status"`
	PointsChange int64  `json:"points_change,omitempty"`
}
