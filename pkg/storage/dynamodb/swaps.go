package dynamodb

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

const (
	requesterIndex     = "requester_id-index"
	swapOwnerIndex     = "owner_id-index"
	requestedItemIndex = "requested_item_id-index"
)

// pendingLockID derives the deterministic key of the pending-duplicate lock
// record for a (requester, requested item) pair.
func pendingLockID(requesterID, itemID string) string {
	return fmt.Sprintf("lock#%s#%s", requesterID, itemID)
}

// GetSwap retrieves a swap from DynamoDB by its ID.
func (s *Store) GetSwap(ctx context.Context, swapID string) (*models.Swap, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": swapID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal swap ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.SwapsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get swap from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("swap %s: %w", swapID, storage.ErrNotFound)
	}

	var swap models.Swap
	if err := attributevalue.UnmarshalMap(result.Item, &swap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal swap: %w", err)
	}

	return &swap, nil
}

// ListSwapsByUser retrieves all swaps where the user is requester or item
// owner, newest first. A non-empty status narrows the result.
func (s *Store) ListSwapsByUser(ctx context.Context, userID string, status models.SwapStatus) ([]models.Swap, error) {
	asRequester, err := s.querySwapIndex(ctx, requesterIndex, "requester_id", userID)
	if err != nil {
		return nil, err
	}
	asOwner, err := s.querySwapIndex(ctx, swapOwnerIndex, "owner_id", userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(asRequester))
	swaps := make([]models.Swap, 0, len(asRequester)+len(asOwner))
	for _, swap := range append(asRequester, asOwner...) {
		if seen[swap.Id] {
			continue
		}
		seen[swap.Id] = true
		if status != "" && swap.Status != status {
			continue
		}
		swaps = append(swaps, swap)
	}

	sort.Slice(swaps, func(i, j int) bool { return swaps[i].CreatedAt.After(swaps[j].CreatedAt) })
	return swaps, nil
}

// querySwapIndex pulls all swaps from one GSI for a user.
func (s *Store) querySwapIndex(ctx context.Context, index, keyAttr, userID string) ([]models.Swap, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.SwapsTableName),
		IndexName:              aws.String(index),
		KeyConditionExpression: aws.String(fmt.Sprintf("%s = :user", keyAttr)),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: userID},
		},
	}

	var swaps []models.Swap
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query swaps by %s: %w", keyAttr, err)
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

// hasPendingSwap reports whether the requester already has a pending swap
// for the item.
func (s *Store) hasPendingSwap(ctx context.Context, requesterID, itemID string) (bool, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.SwapsTableName),
		IndexName:              aws.String(requestedItemIndex),
		KeyConditionExpression: aws.String("requested_item_id = :item"),
		FilterExpression:       aws.String("requester_id = :requester AND #status = :pending"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":item":      &types.AttributeValueMemberS{Value: itemID},
			":requester": &types.AttributeValueMemberS{Value: requesterID},
			":pending":   &types.AttributeValueMemberS{Value: string(models.PENDING)},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return false, fmt.Errorf("failed to query pending swaps: %w", err)
	}

	return len(result.Items) > 0, nil
}
