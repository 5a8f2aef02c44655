package notifications

import "context"

// NoOpPublisher is a mock publisher that does nothing.
type NoOpPublisher struct{}

// PublishToUser does nothing.
func (p *NoOpPublisher) PublishToUser(ctx context.Context, userID string, message Message) error {
	return nil
}
