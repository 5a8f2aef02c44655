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

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// ApproveItem marks an item approved and clears any standing rejection.
// The conditional update makes the idempotency guard race-safe: two
// concurrent approvals cannot both succeed.
func (s *Store) ApproveItem(ctx context.Context, itemID string) (*models.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.IsApproved {
		return nil, fmt.Errorf("item %s: %w", itemID, storage.ErrAlreadyApproved)
	}

	update := "SET is_approved = :true, is_rejected = :false, updated_at = :now REMOVE rejection_reason"
	values := map[string]types.AttributeValue{
		":true":  &types.AttributeValueMemberBOOL{Value: true},
		":false": &types.AttributeValueMemberBOOL{Value: false},
		":now":   mustMarshalTime(time.Now()),
	}
	if item.IsAvailable {
		update = "SET is_approved = :true, is_rejected = :false, is_listed = :listed, updated_at = :now REMOVE rejection_reason"
		values[":listed"] = &types.AttributeValueMemberS{Value: listedFlag}
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.ItemsTableName),
		Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: itemID}},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String("is_approved = :false"),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("item %s: %w", itemID, storage.ErrAlreadyApproved)
		}
		return nil, fmt.Errorf("failed to approve item: %w", err)
	}

	var updated models.Item
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal approved item: %w", err)
	}

	return &updated, nil
}

// RejectItem marks an item rejected and removes it from public listings.
// Reason validation (non-empty, length cap) happens at the API boundary.
func (s *Store) RejectItem(ctx context.Context, itemID, reason string) (*models.Item, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if item.IsRejected {
		return nil, fmt.Errorf("item %s: %w", itemID, storage.ErrAlreadyRejected)
	}

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.ItemsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: itemID}},
		UpdateExpression:    aws.String("SET is_rejected = :true, is_approved = :false, rejection_reason = :reason, updated_at = :now REMOVE is_listed"),
		ConditionExpression: aws.String("is_rejected = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":true":   &types.AttributeValueMemberBOOL{Value: true},
			":false":  &types.AttributeValueMemberBOOL{Value: false},
			":reason": &types.AttributeValueMemberS{Value: reason},
			":now":    mustMarshalTime(time.Now()),
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("item %s: %w", itemID, storage.ErrAlreadyRejected)
		}
		return nil, fmt.Errorf("failed to reject item: %w", err)
	}

	var updated models.Item
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rejected item: %w", err)
	}

	return &updated, nil
}

// mustMarshalTime marshals a time.Time attribute value. Marshalling a
// concrete time cannot fail.
func mustMarshalTime(t time.Time) types.AttributeValue {
	av, err := attributevalue.Marshal(t)
	if err != nil {
		panic(err)
	}
	return av
}
