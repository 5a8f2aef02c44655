package storage

import (
	"context"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

// UserStore defines the interface for managing user records.
type UserStore interface {
	// GetUser retrieves a user by their user ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// EnsureUser creates the user record on first contact, seeded with the
	// starting point balance. Safe to call repeatedly; returns the
	// existing record if one is already there.
	EnsureUser(ctx context.Context, userID, name string, role models.Role) (*models.User, error)
}
