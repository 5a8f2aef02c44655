package storage

import "context"

// ConnectionStore defines the interface for tracking WebSocket connections.
type ConnectionStore interface {
	// AddConnection records a new connection for a user.
	AddConnection(ctx context.Context, connectionID, userID string) error

	// RemoveConnection deletes a connection record.
	RemoveConnection(ctx context.Context, connectionID string) error

	// GetConnectionsForUser returns the active connection IDs for a user.
	GetConnectionsForUser(ctx context.Context, userID string) ([]string, error)
}
