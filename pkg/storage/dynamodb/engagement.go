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

// ToggleLike adds or removes userID from the item's liked_by set, adjusting
// the like counter in the same update. Calling it twice restores the
// original state.
func (s *Store) ToggleLike(ctx context.Context, itemID, userID string) (*models.LikeResult, error) {
	item, err := s.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	liked := item.LikedByUser(userID)

	userSet := &types.AttributeValueMemberSS{Value: []string{userID}}
	values := map[string]types.AttributeValue{
		":one": &types.AttributeValueMemberN{Value: "1"},
		":u":   userSet,
		":uid": &types.AttributeValueMemberS{Value: userID},
	}

	var update, condition string
	if liked {
		update = "SET likes = likes - :one DELETE liked_by :u"
		condition = "contains(liked_by, :uid)"
	} else {
		update = "SET likes = likes + :one ADD liked_by :u"
		condition = "attribute_exists(id) AND NOT contains(liked_by, :uid)"
	}

	input := &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.ItemsTableName),
		Key:                       map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: itemID}},
		UpdateExpression:          aws.String(update),
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			// A concurrent toggle by the same user won the race.
			return nil, fmt.Errorf("like toggle for item %s: %w", itemID, storage.ErrConflict)
		}
		return nil, fmt.Errorf("failed to toggle like: %w", err)
	}

	var updated models.Item
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal liked item: %w", err)
	}

	return &models.LikeResult{Likes: updated.Likes, IsLiked: !liked}, nil
}

// IncrementViews bumps the approximate view counter. No condition beyond
// existence; lost increments under contention are acceptable.
func (s *Store) IncrementViews(ctx context.Context, itemID string) error {
	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.ItemsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: itemID}},
		UpdateExpression:    aws.String("SET #views = if_not_exists(#views, :zero) + :one"),
		ConditionExpression: aws.String("attribute_exists(id)"),
		ExpressionAttributeNames: map[string]string{
			"#views": "views",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":zero": &types.AttributeValueMemberN{Value: "0"},
			":one":  &types.AttributeValueMemberN{Value: "1"},
		},
	}

	if _, err := s.Client.UpdateItem(ctx, input); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}

	return nil
}

// MarkItemRedeemed takes the item out of the available pool and stamps the
// redemption fields. The availability check and the flip are one conditional
// update, so an item can only be redeemed once.
func (s *Store) MarkItemRedeemed(ctx context.Context, itemID, redeemedBy string, redemptionType models.RedemptionType) (*models.Item, error) {
	now := time.Now()

	input := &dynamodb.UpdateItemInput{
		TableName:           aws.String(s.ItemsTableName),
		Key:                 map[string]types.AttributeValue{"id": &types.AttributeValueMemberS{Value: itemID}},
		UpdateExpression:    aws.String("SET is_available = :false, redeemed_by = :by, redeemed_at = :at, redemption_type = :rtype, updated_at = :at REMOVE is_listed"),
		ConditionExpression: aws.String("is_available = :true"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
			":true":  &types.AttributeValueMemberBOOL{Value: true},
			":by":    &types.AttributeValueMemberS{Value: redeemedBy},
			":at":    mustMarshalTime(now),
			":rtype": &types.AttributeValueMemberS{Value: string(redemptionType)},
		},
		ReturnValues: types.ReturnValueAllNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return nil, fmt.Errorf("item %s: %w", itemID, storage.ErrItemUnavailable)
		}
		return nil, fmt.Errorf("failed to mark item redeemed: %w", err)
	}

	var updated models.Item
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return nil, fmt.Errorf("failed to unmarshal redeemed item: %w", err)
	}

	return &updated, nil
}
