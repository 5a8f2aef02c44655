package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
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

// RespondSwap accepts or rejects a pending swap. Only the requested item's
// owner may respond. Both paths compare-and-set the stored status out of
// PENDING, so a concurrent respond or cancel on the same swap can succeed at
// most once.
func (s *Store) RespondSwap(ctx context.Context, swapID, responderID string, accept bool, message string) (*models.Swap, error) {
	swap, err := s.GetSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if swap.OwnerId != responderID {
		return nil, fmt.Errorf("swap %s can only be answered by the item owner: %w", swapID, storage.ErrForbidden)
	}
	if swap.Status != models.PENDING {
		return nil, fmt.Errorf("swap %s is %s: %w", swapID, swap.Status, storage.ErrInvalidState)
	}

	if accept {
		return s.acceptSwap(ctx, swap, message)
	}
	return s.rejectSwap(ctx, swap, message)
}

// rejectSwap moves the swap to REJECTED and releases the pending lock. No
// catalog or ledger side effects.
func (s *Store) rejectSwap(ctx context.Context, swap *models.Swap, message string) (*models.Swap, error) {
	now := time.Now()

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: CAS the swap out of PENDING.
				Update: &types.Update{
					TableName:           aws.String(s.SwapsTableName),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: swap.Id}},
					UpdateExpression:    aws.String("SET #status = :rejected, response_message = :message, updated_at = :now"),
					ConditionExpression: aws.String("#status = :pending"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":rejected": &types.AttributeValueMemberS{Value: string(models.REJECTED)},
						":pending":  &types.AttributeValueMemberS{Value: string(models.PENDING)},
						":message":  &types.AttributeValueMemberS{Value: message},
						":now":      mustMarshalTime(now),
					},
				},
			},
			{
				// Operation 2: Release the pending lock.
				Delete: &types.Delete{
					TableName: aws.String(s.SwapsTableName),
					Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: pendingLockID(swap.RequesterId, swap.RequestedItemId)}},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if len(tce.CancellationReasons) > 0 && tce.CancellationReasons[0].Code != nil && *tce.CancellationReasons[0].Code == "ConditionalCheckFailed" {
				return nil, fmt.Errorf("swap %s already answered: %w", swap.Id, storage.ErrInvalidState)
			}
		}
		return nil, fmt.Errorf("failed to execute swap rejection: %w", err)
	}

	swap.Status = models.REJECTED
	swap.ResponseMessage = message
	swap.UpdatedAt = now

	s.publishSwapEvent(ctx, events.SwapRejected, swap, 0)
	return swap, nil
}

// acceptSwap applies every side effect of acceptance in one DynamoDB
// transaction: the status CAS, the availability flip of the requested item
// (and offered items for direct swaps), the point transfer for points swaps,
// the 100-point bonus and swaps_count increment for both parties, and the
// release of the pending lock. Either all of it lands or none of it does;
// this is the correctness pivot of the whole system.
func (s *Store) acceptSwap(ctx context.Context, swap *models.Swap, message string) (*models.Swap, error) {
	now := time.Now()
	nowAV := mustMarshalTime(now)
	oneAV := &types.AttributeValueMemberN{Value: "1"}
	bonusAV := &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", models.SwapBonusPoints)}

	var pointsTx *models.PointsTransaction
	swapUpdate := "SET #status = :accepted, response_message = :message, updated_at = :now"
	swapValues := map[string]types.AttributeValue{
		":accepted": &types.AttributeValueMemberS{Value: string(models.ACCEPTED)},
		":pending":  &types.AttributeValueMemberS{Value: string(models.PENDING)},
		":message":  &types.AttributeValueMemberS{Value: message},
		":now":      nowAV,
	}

	redemptionType := models.RedemptionSwap
	if swap.SwapType == models.POINTS {
		redemptionType = models.RedemptionPoints
		pointsTx = &models.PointsTransaction{
			FromUserId:    swap.RequesterId,
			ToUserId:      swap.OwnerId,
			Amount:        swap.PointsOffered,
			TransactionId: uuid.New().String(),
		}
		ptAV, err := attributevalue.Marshal(pointsTx)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal points transaction: %w", err)
		}
		swapUpdate = "SET #status = :accepted, response_message = :message, points_transaction = :pt, updated_at = :now"
		swapValues[":pt"] = ptAV
	}

	items := []types.TransactWriteItem{
		{
			// Operation 1: CAS the swap out of PENDING.
			Update: &types.Update{
				TableName:                 aws.String(s.SwapsTableName),
				Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: swap.Id}},
				UpdateExpression:          aws.String(swapUpdate),
				ConditionExpression:       aws.String("#status = :pending"),
				ExpressionAttributeNames:  map[string]string{"#status": "status"},
				ExpressionAttributeValues: swapValues,
			},
		},
		{
			// Operation 2: Take the requested item off the market and stamp
			// its redemption. The availability condition makes "first
			// accepted wins" hold across competing swaps for this item.
			Update: &types.Update{
				TableName:           aws.String(s.ItemsTableName),
				Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: swap.RequestedItemId}},
				UpdateExpression:    aws.String("SET is_available = :false, redeemed_by = :requester, redeemed_at = :now, redemption_type = :rtype, updated_at = :now REMOVE is_listed"),
				ConditionExpression: aws.String("is_available = :true AND is_approved = :true_b"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":false":     &types.AttributeValueMemberBOOL{Value: false},
					":true":      &types.AttributeValueMemberBOOL{Value: true},
					":true_b":    &types.AttributeValueMemberBOOL{Value: true},
					":requester": &types.AttributeValueMemberS{Value: swap.RequesterId},
					":now":       nowAV,
					":rtype":     &types.AttributeValueMemberS{Value: string(redemptionType)},
				},
			},
		},
	}

	// Operations 3..n: take each offered item off the market (direct swaps).
	offeredStart := len(items)
	for _, offeredID := range swap.OfferedItemIds {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.ItemsTableName),
				Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: offeredID}},
				UpdateExpression:    aws.String("SET is_available = :false, updated_at = :now REMOVE is_listed"),
				ConditionExpression: aws.String("is_available = :true AND owner_id = :requester"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":false":     &types.AttributeValueMemberBOOL{Value: false},
					":true":      &types.AttributeValueMemberBOOL{Value: true},
					":requester": &types.AttributeValueMemberS{Value: swap.RequesterId},
					":now":       nowAV,
				},
			},
		})
	}

	// Requester and owner balance/counter updates.
	requesterIdx := len(items)
	if swap.SwapType == models.POINTS {
		offeredAV := &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", swap.PointsOffered)}
		requesterDelta := models.SwapBonusPoints - swap.PointsOffered
		ownerDelta := models.SwapBonusPoints + swap.PointsOffered
		items = append(items,
			types.TransactWriteItem{
				// Requester: pay the offer, earn the bonus, count the swap.
				Update: &types.Update{
					TableName:           aws.String(s.UsersTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: swap.RequesterId}},
					UpdateExpression:    aws.String("SET points = points + :delta, swaps_count = swaps_count + :one, version = version + :one"),
					ConditionExpression: aws.String("points >= :offered"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":delta":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", requesterDelta)},
						":offered": offeredAV,
						":one":     oneAV,
					},
				},
			},
			types.TransactWriteItem{
				// Owner: receive the offer plus the bonus, count the swap.
				Update: &types.Update{
					TableName:           aws.String(s.UsersTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: swap.OwnerId}},
					UpdateExpression:    aws.String("SET points = points + :delta, swaps_count = swaps_count + :one, version = version + :one"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", ownerDelta)},
						":one":   oneAV,
					},
				},
			},
		)
	} else {
		for _, userID := range []string{swap.RequesterId, swap.OwnerId} {
			items = append(items, types.TransactWriteItem{
				// Both parties: bonus and swap counter.
				Update: &types.Update{
					TableName:           aws.String(s.UsersTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: userID}},
					UpdateExpression:    aws.String("SET points = points + :bonus, swaps_count = swaps_count + :one, version = version + :one"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":bonus": bonusAV,
						":one":   oneAV,
					},
				},
			})
		}
	}

	// Final operation: release the pending lock.
	items = append(items, types.TransactWriteItem{
		Delete: &types.Delete{
			TableName: aws.String(s.SwapsTableName),
			Key:       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: pendingLockID(swap.RequesterId, swap.RequestedItemId)}},
		},
	})

	_, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return nil, s.mapAcceptCancellation(tce, swap, offeredStart, requesterIdx)
		}
		return nil, fmt.Errorf("failed to execute swap acceptance: %w", err)
	}

	swap.Status = models.ACCEPTED
	swap.ResponseMessage = message
	swap.PointsTransaction = pointsTx
	swap.UpdatedAt = now

	s.publishSwapEvent(ctx, events.SwapAccepted, swap, swap.PointsOffered)
	return swap, nil
}

// mapAcceptCancellation translates a cancelled accept transaction into the
// business error for whichever condition broke, by operation position.
func (s *Store) mapAcceptCancellation(tce *types.TransactionCanceledException, swap *models.Swap, offeredStart, requesterIdx int) error {
	for i, reason := range tce.CancellationReasons {
		if reason.Code == nil || *reason.Code != "ConditionalCheckFailed" {
			continue
		}
		switch {
		case i == 0:
			return fmt.Errorf("swap %s already answered: %w", swap.Id, storage.ErrInvalidState)
		case i == 1:
			return fmt.Errorf("requested item %s: %w", swap.RequestedItemId, storage.ErrItemUnavailable)
		case i >= offeredStart && i < requesterIdx:
			return fmt.Errorf("offered item no longer valid: %w", storage.ErrInvalidOffer)
		case i == requesterIdx && swap.SwapType == models.POINTS:
			return fmt.Errorf("requester balance below offer: %w", storage.ErrInsufficientPoints)
		}
	}
	return fmt.Errorf("swap acceptance cancelled: %w", storage.ErrConflict)
}

// publishSwapEvent emits a lifecycle event when a queue is wired. Publish
// failures are logged, never surfaced: the state change has already landed.
func (s *Store) publishSwapEvent(ctx context.Context, eventType events.EventType, swap *models.Swap, pointsMoved int64) {
	if s.Events == nil {
		return
	}
	evt := events.SwapEvent{
		Type:            eventType,
		SwapId:          swap.Id,
		RequesterId:     swap.RequesterId,
		OwnerId:         swap.OwnerId,
		RequestedItemId: swap.RequestedItemId,
		SwapType:        swap.SwapType,
		Status:          swap.Status,
		PointsMoved:     pointsMoved,
		OccurredAt:      swap.UpdatedAt,
	}
	if err := s.Events.PublishSwapEvent(ctx, evt); err != nil {
		slog.Error("swap transition applied but event publish failed", "swap_id", swap.Id, "type", string(eventType), "error", err)
	}
}
