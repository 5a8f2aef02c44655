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

	"github.com/SUSSSKIDD/server-ReWare/pkg/events"
	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// CompleteSwap moves an accepted swap to COMPLETED. Either party may confirm.
// For direct swaps this records the physical hand-off; a points swap is
// already settled at acceptance, so this is purely record-keeping.
func (s *Store) CompleteSwap(ctx context.Context, swapID, callerID string) (*models.Swap, error) {
	swap, err := s.GetSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParty(callerID) {
		return nil, fmt.Errorf("swap %s can only be completed by a participant: %w", swapID, storage.ErrForbidden)
	}
	if swap.Status != models.ACCEPTED {
		return nil, fmt.Errorf("swap %s is %s: %w", swapID, swap.Status, storage.ErrInvalidState)
	}

	now := time.Now()
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.SwapsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: swapID}},
		UpdateExpression:    aws.String("SET #status = :completed, is_completed = :true, completed_at = :now, updated_at = :now"),
		ConditionExpression: aws.String("#status = :accepted"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":completed": &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
			":accepted":  &types.AttributeValueMemberS{Value: string(models.ACCEPTED)},
			":true":      &types.AttributeValueMemberBOOL{Value: true},
			":now":       mustMarshalTime(now),
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("swap %s left accepted state: %w", swapID, storage.ErrInvalidState)
		}
		return nil, fmt.Errorf("failed to complete swap: %w", err)
	}

	swap.Status = models.COMPLETED
	swap.IsCompleted = true
	swap.CompletedAt = &now
	swap.UpdatedAt = now

	s.publishSwapEvent(ctx, events.SwapCompleted, swap, 0)
	return swap, nil
}

// CancelSwap cancels a pending or accepted swap. Cancelling after acceptance
// compensates every side effect acceptance applied: the point transfer, both
// bonuses, both swap counters and the items' availability, all in one
// transaction.
func (s *Store) CancelSwap(ctx context.Context, swapID, callerID, reason string) (*models.Swap, error) {
	swap, err := s.GetSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if !swap.IsParty(callerID) {
		return nil, fmt.Errorf("swap %s can only be cancelled by a participant: %w", swapID, storage.ErrForbidden)
	}

	now := time.Now()
	switch swap.Status {
	case models.PENDING:
		err = s.cancelPendingSwap(ctx, swap, callerID, reason, now)
	case models.ACCEPTED:
		err = s.cancelAcceptedSwap(ctx, swap, callerID, reason, now)
	default:
		return nil, fmt.Errorf("swap %s is %s: %w", swapID, swap.Status, storage.ErrInvalidState)
	}
	if err != nil {
		return nil, err
	}

	swap.Status = models.CANCELLED
	swap.CancelledBy = callerID
	swap.CancellationReason = reason
	swap.UpdatedAt = now

	s.publishSwapEvent(ctx, events.SwapCancelled, swap, 0)
	return swap, nil
}

// cancelPendingSwap has no side effects to unwind: CAS the status and drop
// the pending lock.
func (s *Store) cancelPendingSwap(ctx context.Context, swap *models.Swap, callerID, reason string, now time.Time) error {
	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Update: s.cancelStatusUpdate(swap.Id, callerID, reason, models.PENDING, now),
			},
			{
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
				return fmt.Errorf("swap %s left pending state: %w", swap.Id, storage.ErrInvalidState)
			}
		}
		return fmt.Errorf("failed to execute swap cancellation: %w", err)
	}

	return nil
}

// cancelAcceptedSwap rolls acceptance back: reverse the transfer and bonuses,
// decrement both swap counters, relist the items, all atomically with the
// status CAS.
func (s *Store) cancelAcceptedSwap(ctx context.Context, swap *models.Swap, callerID, reason string, now time.Time) error {
	nowAV := mustMarshalTime(now)
	oneAV := &types.AttributeValueMemberN{Value: "1"}

	items := []types.TransactWriteItem{
		{
			// Operation 1: CAS the swap out of ACCEPTED.
			Update: s.cancelStatusUpdate(swap.Id, callerID, reason, models.ACCEPTED, now),
		},
		{
			// Operation 2: Relist the requested item and clear its redemption.
			Update: &types.Update{
				TableName:           aws.String(s.ItemsTableName),
				Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: swap.RequestedItemId}},
				UpdateExpression:    aws.String("SET is_available = :true, is_listed = :listed, updated_at = :now REMOVE redeemed_by, redeemed_at, redemption_type"),
				ConditionExpression: aws.String("is_available = :false"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true":   &types.AttributeValueMemberBOOL{Value: true},
					":false":  &types.AttributeValueMemberBOOL{Value: false},
					":listed": &types.AttributeValueMemberS{Value: listedFlag},
					":now":    nowAV,
				},
			},
		},
	}

	// Relist the offered items (direct swaps).
	for _, offeredID := range swap.OfferedItemIds {
		items = append(items, types.TransactWriteItem{
			Update: &types.Update{
				TableName:           aws.String(s.ItemsTableName),
				Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: offeredID}},
				UpdateExpression:    aws.String("SET is_available = :true, is_listed = :listed, updated_at = :now"),
				ConditionExpression: aws.String("attribute_exists(id)"),
				ExpressionAttributeValues: map[string]types.AttributeValue{
					":true":   &types.AttributeValueMemberBOOL{Value: true},
					":listed": &types.AttributeValueMemberS{Value: listedFlag},
					":now":    nowAV,
				},
			},
		})
	}

	// Reverse the balance and counter effects of acceptance.
	var requesterDelta, ownerDelta int64
	if swap.SwapType == models.POINTS {
		requesterDelta = swap.PointsOffered - models.SwapBonusPoints
		ownerDelta = -(swap.PointsOffered + models.SwapBonusPoints)
	} else {
		requesterDelta = -models.SwapBonusPoints
		ownerDelta = -models.SwapBonusPoints
	}
	items = append(items,
		types.TransactWriteItem{Update: s.reversalUpdate(swap.RequesterId, requesterDelta, oneAV)},
		types.TransactWriteItem{Update: s.reversalUpdate(swap.OwnerId, ownerDelta, oneAV)},
	)

	if _, err := s.Client.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{TransactItems: items}); err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			for i, r := range tce.CancellationReasons {
				if r.Code == nil || *r.Code != "ConditionalCheckFailed" {
					continue
				}
				if i == 0 {
					return fmt.Errorf("swap %s left accepted state: %w", swap.Id, storage.ErrInvalidState)
				}
				if i >= len(items)-2 {
					// A participant has already spent the points the rollback reclaims.
					return fmt.Errorf("rollback would overdraw a balance: %w", storage.ErrInsufficientPoints)
				}
			}
			return fmt.Errorf("swap cancellation rollback cancelled: %w", storage.ErrConflict)
		}
		return fmt.Errorf("failed to execute swap cancellation rollback: %w", err)
	}

	return nil
}

// cancelStatusUpdate builds the status CAS shared by both cancel paths.
func (s *Store) cancelStatusUpdate(swapID, callerID, reason string, expected models.SwapStatus, now time.Time) *types.Update {
	return &types.Update{
		TableName:           aws.String(s.SwapsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: swapID}},
		UpdateExpression:    aws.String("SET #status = :cancelled, cancelled_by = :caller, cancellation_reason = :reason, updated_at = :now"),
		ConditionExpression: aws.String("#status = :expected"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":cancelled": &types.AttributeValueMemberS{Value: string(models.CANCELLED)},
			":expected":  &types.AttributeValueMemberS{Value: string(expected)},
			":caller":    &types.AttributeValueMemberS{Value: callerID},
			":reason":    &types.AttributeValueMemberS{Value: reason},
			":now":       mustMarshalTime(now),
		},
	}
}

// reversalUpdate builds the per-user rollback update. A negative delta is
// guarded so the rollback can never drive a balance below zero.
func (s *Store) reversalUpdate(userID string, delta int64, oneAV types.AttributeValue) *types.Update {
	update := &types.Update{
		TableName:           aws.String(s.UsersTableName),
		Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: userID}},
		UpdateExpression:    aws.String("SET points = points + :delta, swaps_count = swaps_count - :one, version = version + :one"),
		ConditionExpression: aws.String("swaps_count >= :one"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", delta)},
			":one":   oneAV,
		},
	}
	if delta < 0 {
		update.ConditionExpression = aws.String("swaps_count >= :one AND points >= :abs")
		update.ExpressionAttributeValues[":abs"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", -delta)}
	}
	return update
}

// RateSwap stores one party's rating of a completed swap and folds the score
// into the other party's review stats. Re-rating overwrites the slot and
// adjusts the stats by the score difference instead of double-counting.
func (s *Store) RateSwap(ctx context.Context, swapID, raterID string, score int, comment string) (*models.Swap, error) {
	swap, err := s.GetSwap(ctx, swapID)
	if err != nil {
		return nil, err
	}

	if swap.Status != models.COMPLETED {
		return nil, fmt.Errorf("swap %s is %s: %w", swapID, swap.Status, storage.ErrInvalidState)
	}
	if !swap.IsParty(raterID) {
		return nil, fmt.Errorf("swap %s can only be rated by a participant: %w", swapID, storage.ErrForbidden)
	}

	slot := "owner_rating"
	rateeID := swap.RequesterId
	previous := swap.OwnerRating
	if raterID == swap.RequesterId {
		slot = "requester_rating"
		rateeID = swap.OwnerId
		previous = swap.RequesterRating
	}

	scoreDelta := int64(score)
	var reviewsDelta int64 = 1
	if previous != nil {
		scoreDelta = int64(score - previous.Score)
		reviewsDelta = 0
	}

	now := time.Now()
	rating := &models.Rating{Score: score, Comment: comment, RatedAt: now}
	ratingAV, err := attributevalue.Marshal(rating)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal rating: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Store the rating; only legal while COMPLETED.
				Update: &types.Update{
					TableName:           aws.String(s.SwapsTableName),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: swapID}},
					UpdateExpression:    aws.String(fmt.Sprintf("SET %s = :rating, updated_at = :now", slot)),
					ConditionExpression: aws.String("#status = :completed"),
					ExpressionAttributeNames: map[string]string{
						"#status": "status",
					},
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":rating":    ratingAV,
						":completed": &types.AttributeValueMemberS{Value: string(models.COMPLETED)},
						":now":       mustMarshalTime(now),
					},
				},
			},
			{
				// Operation 2: Fold the score into the ratee's review stats.
				Update: &types.Update{
					TableName:           aws.String(s.UsersTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: rateeID}},
					UpdateExpression:    aws.String("SET rating_sum = rating_sum + :score, reviews_count = reviews_count + :reviews, version = version + :one"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":score":   &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", scoreDelta)},
						":reviews": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", reviewsDelta)},
						":one":     &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if len(tce.CancellationReasons) > 0 && tce.CancellationReasons[0].Code != nil && *tce.CancellationReasons[0].Code == "ConditionalCheckFailed" {
				return nil, fmt.Errorf("swap %s is no longer completed: %w", swapID, storage.ErrInvalidState)
			}
		}
		return nil, fmt.Errorf("failed to execute swap rating: %w", err)
	}

	if raterID == swap.RequesterId {
		swap.RequesterRating = rating
	} else {
		swap.OwnerRating = rating
	}
	swap.UpdatedAt = now

	return swap, nil
}
