package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage/dynamodb/mocks"
)

func TestCreditPoints(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{
			Attributes: map[string]types.AttributeValue{
				"points": &types.AttributeValueMemberN{Value: "150"},
			},
		}, nil)

		balance, err := store.CreditPoints(context.Background(), "user-1", 50)

		assert.NoError(t, err)
		assert.Equal(t, int64(150), balance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Rejects Non-Positive Amount", func(t *testing.T) {
		store := newTestStore(new(mocks.DynamoDBAPI))

		_, err := store.CreditPoints(context.Background(), "user-1", 0)

		assert.Error(t, err)
	})
}

func TestDebitPoints(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(&dynamodb.UpdateItemOutput{
			Attributes: map[string]types.AttributeValue{
				"points": &types.AttributeValueMemberN{Value: "20"},
			},
		}, nil)

		balance, err := store.DebitPoints(context.Background(), "user-1", 80)

		assert.NoError(t, err)
		assert.Equal(t, int64(20), balance)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Balance", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("UpdateItem", mock.Anything, mock.Anything).Return(nil, &types.ConditionalCheckFailedException{})

		_, err := store.DebitPoints(context.Background(), "user-1", 80)

		assert.ErrorIs(t, err, storage.ErrInsufficientPoints)
		mockClient.AssertExpectations(t)
	})
}

func TestTransferPoints(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.MatchedBy(func(input *dynamodb.TransactWriteItemsInput) bool {
			return len(input.TransactItems) == 2 && input.ClientRequestToken != nil
		})).Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		err := store.TransferPoints(context.Background(), "user-1", "user-2", 80, "tx-1")

		assert.NoError(t, err)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Balance Cancels Both Sides", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		reasons := []types.CancellationReason{
			{Code: aws.String("ConditionalCheckFailed")},
			{Code: aws.String("None")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		err := store.TransferPoints(context.Background(), "user-1", "user-2", 80, "tx-1")

		assert.ErrorIs(t, err, storage.ErrInsufficientPoints)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("throttled"))

		err := store.TransferPoints(context.Background(), "user-1", "user-2", 80, "tx-1")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute point transfer")
		mockClient.AssertExpectations(t)
	})
}
