package dynamodb

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// listedFlag marks items that belong in public listings. Sparse attribute,
// only present while available && approved && !rejected.
const listedFlag = "1"

// searchText builds the lowercased blob the full-text filter runs against.
func searchText(item *models.Item) string {
	parts := append([]string{item.Title, item.Description}, item.Tags...)
	return strings.ToLower(strings.Join(parts, " "))
}

// GetItem retrieves an item from DynamoDB by its ID.
func (s *Store) GetItem(ctx context.Context, itemID string) (*models.Item, error) {
	key, err := attributevalue.MarshalMap(map[string]string{"id": itemID})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item ID: %w", err)
	}

	input := &dynamodb.GetItemInput{
		TableName: aws.String(s.ItemsTableName),
		Key:       key,
	}

	result, err := s.Client.GetItem(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to get item from DynamoDB: %w", err)
	}

	if result.Item == nil {
		return nil, fmt.Errorf("item %s: %w", itemID, storage.ErrNotFound)
	}

	var item models.Item
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}

	return &item, nil
}

// CreateItem stores a new item and increments the owner's items_count in the
// same DynamoDB transaction.
func (s *Store) CreateItem(ctx context.Context, item *models.Item) (*models.Item, error) {
	now := time.Now()
	item.Id = uuid.New().String()
	item.CreatedAt = now
	item.UpdatedAt = now
	item.SearchText = searchText(item)
	if item.Listable() {
		item.IsListed = listedFlag
	}

	itemAV, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal item: %w", err)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Create the item record.
				Put: &types.Put{
					TableName:           aws.String(s.ItemsTableName),
					Item:                itemAV,
					ConditionExpression: aws.String("attribute_not_exists(id)"),
				},
			},
			{
				// Operation 2: Increment the owner's items_count.
				Update: &types.Update{
					TableName:           aws.String(s.UsersTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: item.OwnerId}},
					UpdateExpression:    aws.String("SET items_count = items_count + :one, version = version + :one"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":one": &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	_, err = s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if len(tce.CancellationReasons) > 1 && tce.CancellationReasons[1].Code != nil && *tce.CancellationReasons[1].Code == "ConditionalCheckFailed" {
				return nil, fmt.Errorf("owner %s: %w", item.OwnerId, storage.ErrNotFound)
			}
		}
		return nil, fmt.Errorf("failed to execute item creation: %w", err)
	}

	return item, nil
}

// UpdateItem applies an owner patch to an item. The owner field is immutable
// through this path; the conditional write also guards against the item
// changing hands mid-update.
func (s *Store) UpdateItem(ctx context.Context, itemID, requesterID string, patch models.ItemPatch) (*models.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.OwnerId != requesterID {
		return nil, fmt.Errorf("item %s is not owned by %s: %w", itemID, requesterID, storage.ErrForbidden)
	}

	if patch.Title != nil {
		item.Title = *patch.Title
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.Category != nil {
		item.Category = *patch.Category
	}
	if patch.Size != nil {
		item.Size = *patch.Size
	}
	if patch.Condition != nil {
		item.Condition = *patch.Condition
	}
	if patch.Tags != nil {
		item.Tags = *patch.Tags
	}
	if patch.PointsValue != nil {
		item.PointsValue = *patch.PointsValue
	}
	if patch.Images != nil {
		item.Images = *patch.Images
	}
	if patch.IsAvailable != nil {
		item.IsAvailable = *patch.IsAvailable
	}

	item.SearchText = searchText(item)
	item.IsListed = ""
	if item.Listable() {
		item.IsListed = listedFlag
	}
	item.UpdatedAt = time.Now()

	itemAV, err := attributevalue.MarshalMap(item)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal updated item: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName:           aws.String(s.ItemsTableName),
		Item:                itemAV,
		ConditionExpression: aws.String("owner_id = :owner"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: requesterID},
		},
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("item %s changed owner during update: %w", itemID, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to update item in DynamoDB: %w", err)
	}

	return item, nil
}

// DeleteItem removes an item and decrements the owner's items_count. Admins
// bypass the ownership check.
func (s *Store) DeleteItem(ctx context.Context, itemID, requesterID string, isAdmin bool) error {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return err
	}

	if !isAdmin && item.OwnerId != requesterID {
		return fmt.Errorf("item %s is not owned by %s: %w", itemID, requesterID, storage.ErrForbidden)
	}

	input := &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Delete the item record.
				Delete: &types.Delete{
					TableName:           aws.String(s.ItemsTableName),
					Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: itemID}},
					ConditionExpression: aws.String("attribute_exists(id)"),
				},
			},
			{
				// Operation 2: Decrement the owner's items_count.
				Update: &types.Update{
					TableName:           aws.String(s.UsersTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: item.OwnerId}},
					UpdateExpression:    aws.String("SET items_count = items_count - :one, version = version + :one"),
					ConditionExpression: aws.String("items_count >= :one"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":one": &types.AttributeValueMemberN{Value: "1"},
					},
				},
			},
		},
	}

	if _, err := s.Client.TransactWriteItems(ctx, input); err != nil {
		return fmt.Errorf("failed to execute item deletion: %w", err)
	}

	return nil
}
