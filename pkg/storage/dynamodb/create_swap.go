package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/SUSSSKIDD/server-ReWare/pkg/events"
	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// CreateSwap validates the swap request preconditions in order and stores a
// new PENDING swap. No catalog or ledger side effects happen here: items stay
// bookable by other users until acceptance, first accepted wins.
//
// A deterministic lock record keyed on (requester, requested item) is written
// in the same transaction as the swap, so two racing requests for the same
// pair cannot both land.
func (s *Store) CreateSwap(ctx context.Context, swap *models.Swap) (*models.Swap, error) {
	// 1. The requested item must exist and be listable.
	requested, err := s.GetItem(ctx, swap.RequestedItemId)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("requested item %s: %w", swap.RequestedItemId, storage.ErrItemUnavailable)
		}
		return nil, err
	}
	if !requested.IsAvailable || !requested.IsApproved {
		return nil, fmt.Errorf("requested item %s: %w", swap.RequestedItemId, storage.ErrItemUnavailable)
	}

	// 2. Users cannot swap against their own items.
	if requested.OwnerId == swap.RequesterId {
		return nil, storage.ErrSelfSwap
	}

	// 3. Direct swaps must offer at least one valid item, each at most once.
	// A repeated ID would put two operations on the same item key into the
	// acceptance transaction, which DynamoDB rejects.
	if swap.SwapType == models.DIRECT {
		if len(swap.OfferedItemIds) == 0 {
			return nil, fmt.Errorf("direct swap offers no items: %w", storage.ErrInvalidOffer)
		}
		seen := make(map[string]struct{}, len(swap.OfferedItemIds))
		for _, offeredID := range swap.OfferedItemIds {
			if _, dup := seen[offeredID]; dup {
				return nil, fmt.Errorf("offered item %s listed twice: %w", offeredID, storage.ErrInvalidOffer)
			}
			seen[offeredID] = struct{}{}
			offered, err := s.GetItem(ctx, offeredID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil, fmt.Errorf("offered item %s does not exist: %w", offeredID, storage.ErrInvalidOffer)
				}
				return nil, err
			}
			if offered.OwnerId != swap.RequesterId {
				return nil, fmt.Errorf("offered item %s is not owned by requester: %w", offeredID, storage.ErrInvalidOffer)
			}
			if !offered.IsAvailable || !offered.IsApproved {
				return nil, fmt.Errorf("offered item %s is not available: %w", offeredID, storage.ErrInvalidOffer)
			}
		}
	}

	// 4. Points swaps must cover and exactly match the item's value.
	if swap.SwapType == models.POINTS {
		requester, err := s.GetUser(ctx, swap.RequesterId)
		if err != nil {
			return nil, err
		}
		if requester.Points < swap.PointsOffered {
			return nil, fmt.Errorf("balance %d below offer %d: %w", requester.Points, swap.PointsOffered, storage.ErrInsufficientPoints)
		}
		if swap.PointsOffered != requested.PointsValue {
			return nil, fmt.Errorf("offered %d, item value %d: %w", swap.PointsOffered, requested.PointsValue, storage.ErrPointsMismatch)
		}
	}

	// 5. Only one pending swap per (requester, requested item).
	duplicate, err := s.hasPendingSwap(ctx, swap.RequesterId, swap.RequestedItemId)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, storage.ErrDuplicateRequest
	}

	// Complete the swap object with server-side details.
	now := time.Now()
	swap.Id = uuid.New().String()
	swap.OwnerId = requested.OwnerId
	swap.Status = models.PENDING
	swap.CreatedAt = now
	swap.UpdatedAt = now

	swapAV, err := attributevalue.MarshalMap(swap)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal swap: %w", err)
	}

	lockAV, err := attributevalue.MarshalMap(map[string]string{
		"id":      pendingLockID(swap.RequesterId, swap.RequestedItemId),
		"swap_id": swap.Id,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal pending lock: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the swap record.
				Put: &types.Put{
					TableName:           aws.String(s.SwapsTableName),
					Item:                swapAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: Claim the pending lock for the pair.
				Put: &types.Put{
					TableName:           aws.String(s.SwapsTableName),
					Item:                lockAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if len(tce.CancellationReasons) > 1 && tce.CancellationReasons[1].Code != nil && *tce.CancellationReasons[1].Code == "ConditionalCheckFailed" {
				return nil, storage.ErrDuplicateRequest
			}
		}
		return nil, fmt.Errorf("failed to execute swap creation: %w", err)
	}

	s.publishSwapEvent(ctx, events.SwapCreated, swap, 0)
	return swap, nil
}
