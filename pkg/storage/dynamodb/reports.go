package dynamodb

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

// GetUserDashboard joins a user's record, items and swaps into the dashboard
// view. Pure projection over the canonical tables; the counts are computed
// here rather than maintained as separate state that could drift.
func (s *Store) GetUserDashboard(ctx context.Context, userID string) (*models.Dashboard, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.ListItemsByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard items: %w", err)
	}

	swaps, err := s.ListSwapsByUser(ctx, userID, "")
	if err != nil {
		return nil, fmt.Errorf("failed to load dashboard swaps: %w", err)
	}

	dashboard := &models.Dashboard{
		User:       *user,
		TotalItems: len(items),
		Rating:     user.Rating(),
	}
	for _, item := range items {
		if item.Listable() {
			dashboard.AvailableItems++
		}
	}
	for _, swap := range swaps {
		switch swap.Status {
		case models.PENDING:
			dashboard.Swaps.Pending++
		case models.ACCEPTED:
			dashboard.Swaps.Accepted++
		case models.REJECTED:
			dashboard.Swaps.Rejected++
		case models.COMPLETED:
			dashboard.Swaps.Completed++
		case models.CANCELLED:
			dashboard.Swaps.Cancelled++
		}
	}

	return dashboard, nil
}

// GetPlatformStats computes platform totals over the trailing window.
func (s *Store) GetPlatformStats(ctx context.Context, window models.StatsWindow) (*models.PlatformStats, error) {
	since := time.Now().Add(-window.Duration())

	stats := &models.PlatformStats{
		Window: window,
		Since:  since,
	}

	newUsers, err := s.countCreatedSince(ctx, s.UsersTableName, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count new users: %w", err)
	}
	stats.NewUsers = newUsers

	newItems, err := s.countCreatedSince(ctx, s.ItemsTableName, since)
	if err != nil {
		return nil, fmt.Errorf("failed to count new items: %w", err)
	}
	stats.NewItems = newItems

	swaps, err := s.scanSwapsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	stats.NewSwaps = len(swaps)
	for _, swap := range swaps {
		if swap.Status == models.COMPLETED {
			stats.CompletedSwaps++
		}
		if swap.PointsTransaction != nil {
			stats.PointsMoved += swap.PointsTransaction.Amount
		}
	}

	pending, err := s.ListPendingModeration(ctx)
	if err != nil {
		return nil, err
	}
	stats.PendingReview = len(pending)

	return stats, nil
}

// windowStartAV renders the window start with a full-width fraction. Stored
// timestamps drop a zero fraction entirely, and "...T00:00:00Z" string-sorts
// after its sub-second siblings; the padded form keeps `>=` ordered.
func windowStartAV(since time.Time) types.AttributeValue {
	return &types.AttributeValueMemberS{Value: since.UTC().Format("2006-01-02T15:04:05.000000000Z07:00")}
}

// countCreatedSince counts table records created within the window.
func (s *Store) countCreatedSince(ctx context.Context, table string, since time.Time) (int, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(table),
		Select:           types.SelectCount,
		FilterExpression: aws.String("created_at >= :since"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":since": windowStartAV(since),
		},
	}

	count := 0
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return 0, err
		}
		count += int(result.Count)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return count, nil
}

// scanSwapsSince loads swaps created within the window. The status filter
// also screens out pending-lock records, which carry no status attribute.
func (s *Store) scanSwapsSince(ctx context.Context, since time.Time) ([]models.Swap, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.SwapsTableName),
		FilterExpression: aws.String("attribute_exists(#status) AND created_at >= :since"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":since": windowStartAV(since),
		},
	}

	var swaps []models.Swap
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan swaps: %w", err)
		}

		var page []models.Swap
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal swaps: %w", err)
		}
		swaps = append(swaps, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return swaps, nil
}
