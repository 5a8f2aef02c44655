package dynamodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
)

// CreditPoints atomically adds amount to the user's balance.
func (s *Store) CreditPoints(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("credit amount must be positive, got %d", amount)
	}

	return s.adjustPoints(ctx, userID, amount, "attribute_exists(user_id)")
}

// DebitPoints atomically subtracts amount from the user's balance. The
// balance check and the subtraction are a single conditional update, so a
// concurrent debit can never drive the balance negative.
func (s *Store) DebitPoints(ctx context.Context, userID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, fmt.Errorf("debit amount must be positive, got %d", amount)
	}

	newBalance, err := s.adjustPoints(ctx, userID, -amount, "attribute_exists(user_id) AND points >= :abs")
	if err != nil {
		var condCheckFailed *types.ConditionalCheckFailedException
		if errors.As(err, &condCheckFailed) {
			return 0, storage.ErrInsufficientPoints
		}
		return 0, err
	}

	return newBalance, nil
}

// adjustPoints applies a signed delta to the user's balance and returns the
// new balance.
func (s *Store) adjustPoints(ctx context.Context, userID string, delta int64, condition string) (int64, error) {
	values := map[string]types.AttributeValue{
		":delta": &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", delta)},
		":inc":   &types.AttributeValueMemberN{Value: "1"},
	}
	if delta < 0 {
		values[":abs"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", -delta)}
	}

	input := &dynamodb.UpdateItemInput{
		TableName: aws.String(s.UsersTableName),
		Key: map[string]types.AttributeValue{
			"user_id": &types.AttributeValueMemberS{Value: userID},
		},
		UpdateExpression:          aws.String("SET points = points + :delta, version = version + :inc"),
		ConditionExpression:       aws.String(condition),
		ExpressionAttributeValues: values,
		ReturnValues:              types.ReturnValueUpdatedNew,
	}

	result, err := s.Client.UpdateItem(ctx, input)
	if err != nil {
		return 0, err
	}

	var updated struct {
		Points int64 `dynamodbav:"points"`
	}
	if err := attributevalue.UnmarshalMap(result.Attributes, &updated); err != nil {
		return 0, fmt.Errorf("failed to unmarshal updated balance: %w", err)
	}

	return updated.Points, nil
}

// TransferPoints moves amount between two users as one DynamoDB transaction.
// If the debit side would overdraw, the whole transaction cancels and no
// credit occurs.
func (s *Store) TransferPoints(ctx context.Context, fromUserID, toUserID string, amount int64, transactionID string) error {
	if amount <= 0 {
		return fmt.Errorf("transfer amount must be positive, got %d", amount)
	}

	amountAV := &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", amount)}
	oneAV := &types.AttributeValueMemberN{Value: "1"}

	input := &dynamodb.TransactWriteItemsInput{
		ClientRequestToken: aws.String(transactionID),
		TransactItems: []types.TransactWriteItem{
			{
				// Operation 1: Debit the sender.
				Update: &types.Update{
					TableName:           aws.String(s.UsersTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: fromUserID}},
					UpdateExpression:    aws.String("SET points = points - :amount, version = version + :inc"),
					ConditionExpression: aws.String("attribute_exists(user_id) AND points >= :amount"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
						":inc":    oneAV,
					},
				},
			},
			{
				// Operation 2: Credit the receiver.
				Update: &types.Update{
					TableName:           aws.String(s.UsersTableName),
					Key:                 map[string]types.AttributeValue{"user_id": &types.AttributeValueMemberS{Value: toUserID}},
					UpdateExpression:    aws.String("SET points = points + :amount, version = version + :inc"),
					ConditionExpression: aws.String("attribute_exists(user_id)"),
					ExpressionAttributeValues: map[string]types.AttributeValue{
						":amount": amountAV,
						":inc":    oneAV,
					},
				},
			},
		},
	}

	_, err := s.Client.TransactWriteItems(ctx, input)
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			if len(tce.CancellationReasons) > 0 && tce.CancellationReasons[0].Code != nil && *tce.CancellationReasons[0].Code == "ConditionalCheckFailed" {
				return storage.ErrInsufficientPoints
			}
		}
		return fmt.Errorf("failed to execute point transfer: %w", err)
	}

	return nil
}
