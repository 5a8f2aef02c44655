package storage

import (
	"context"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

// ReportStore defines read-only aggregation views. These are projections
// over the canonical tables; nothing here mutates state.
type ReportStore interface {
	// GetUserDashboard joins a user's items and swaps into the dashboard view.
	GetUserDashboard(ctx context.Context, userID string) (*models.Dashboard, error)

	// GetPlatformStats computes platform totals over the trailing window.
	GetPlatformStats(ctx context.Context, window models.StatsWindow) (*models.PlatformStats, error)
}
