package dynamodb

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage/dynamodb/mocks"
)

func newTestStore(client *mocks.DynamoDBAPI) *Store {
	return &Store{
		Client:         client,
		UsersTableName: "users",
		ItemsTableName: "items",
		SwapsTableName: "swaps",
	}
}

func TestCreateSwap(t *testing.T) {
	requestedItem := &models.Item{
		Id:          "item-1",
		OwnerId:     "owner-1",
		PointsValue: 80,
		IsAvailable: true,
		IsApproved:  true,
	}
	requester := &models.User{UserId: "requester-1", Points: 100, Version: 1}

	pointsSwap := func() *models.Swap {
		return &models.Swap{
			RequesterId:     "requester-1",
			RequestedItemId: "item-1",
			SwapType:        models.POINTS,
			PointsOffered:   80,
		}
	}

	t.Run("Points Swap Success", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		itemAV, _ := attributevalue.MarshalMap(requestedItem)
		userAV, _ := attributevalue.MarshalMap(requester)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: userAV}, nil)
		mockClient.On("Query", mock.Anything, mock.Anything).Once().Return(&dynamodb.QueryOutput{}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Once().Return(&dynamodb.TransactWriteItemsOutput{}, nil)

		created, err := store.CreateSwap(context.Background(), pointsSwap())

		assert.NoError(t, err)
		assert.NotEmpty(t, created.Id)
		assert.Equal(t, "owner-1", created.OwnerId)
		assert.Equal(t, models.PENDING, created.Status)
		mockClient.AssertExpectations(t)
	})

	t.Run("Requested Item Missing", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{}, nil)

		_, err := store.CreateSwap(context.Background(), pointsSwap())

		assert.ErrorIs(t, err, storage.ErrItemUnavailable)
		mockClient.AssertExpectations(t)
	})

	t.Run("Requested Item Not Listable", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		unavailable := *requestedItem
		unavailable.IsAvailable = false
		itemAV, _ := attributevalue.MarshalMap(&unavailable)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)

		_, err := store.CreateSwap(context.Background(), pointsSwap())

		assert.ErrorIs(t, err, storage.ErrItemUnavailable)
		mockClient.AssertExpectations(t)
	})

	t.Run("Self Swap", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		own := *requestedItem
		own.OwnerId = "requester-1"
		itemAV, _ := attributevalue.MarshalMap(&own)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)

		_, err := store.CreateSwap(context.Background(), pointsSwap())

		assert.ErrorIs(t, err, storage.ErrSelfSwap)
		mockClient.AssertExpectations(t)
	})

	t.Run("Direct Swap With No Offered Items", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		itemAV, _ := attributevalue.MarshalMap(requestedItem)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)

		swap := pointsSwap()
		swap.SwapType = models.DIRECT
		swap.PointsOffered = 0
		_, err := store.CreateSwap(context.Background(), swap)

		assert.ErrorIs(t, err, storage.ErrInvalidOffer)
		mockClient.AssertExpectations(t)
	})

	t.Run("Direct Swap With Foreign Offered Item", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		itemAV, _ := attributevalue.MarshalMap(requestedItem)
		foreign := &models.Item{Id: "item-2", OwnerId: "somebody-else", IsAvailable: true, IsApproved: true}
		foreignAV, _ := attributevalue.MarshalMap(foreign)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: foreignAV}, nil)

		swap := pointsSwap()
		swap.SwapType = models.DIRECT
		swap.PointsOffered = 0
		swap.OfferedItemIds = []string{"item-2"}
		_, err := store.CreateSwap(context.Background(), swap)

		assert.ErrorIs(t, err, storage.ErrInvalidOffer)
		mockClient.AssertExpectations(t)
	})

	t.Run("Direct Swap With Repeated Offered Item", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		itemAV, _ := attributevalue.MarshalMap(requestedItem)
		offered := &models.Item{Id: "item-2", OwnerId: "requester-1", IsAvailable: true, IsApproved: true}
		offeredAV, _ := attributevalue.MarshalMap(offered)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: offeredAV}, nil)

		swap := pointsSwap()
		swap.SwapType = models.DIRECT
		swap.PointsOffered = 0
		swap.OfferedItemIds = []string{"item-2", "item-2"}
		_, err := store.CreateSwap(context.Background(), swap)

		assert.ErrorIs(t, err, storage.ErrInvalidOffer)
		mockClient.AssertExpectations(t)
	})

	t.Run("Insufficient Points", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		itemAV, _ := attributevalue.MarshalMap(requestedItem)
		poor := &models.User{UserId: "requester-1", Points: 50}
		poorAV, _ := attributevalue.MarshalMap(poor)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: poorAV}, nil)

		_, err := store.CreateSwap(context.Background(), pointsSwap())

		assert.ErrorIs(t, err, storage.ErrInsufficientPoints)
		mockClient.AssertExpectations(t)
	})

	t.Run("Points Mismatch", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		itemAV, _ := attributevalue.MarshalMap(requestedItem)
		userAV, _ := attributevalue.MarshalMap(requester)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: userAV}, nil)

		swap := pointsSwap()
		swap.PointsOffered = 90
		_, err := store.CreateSwap(context.Background(), swap)

		assert.ErrorIs(t, err, storage.ErrPointsMismatch)
		mockClient.AssertExpectations(t)
	})

	t.Run("Duplicate Pending Request", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		itemAV, _ := attributevalue.MarshalMap(requestedItem)
		userAV, _ := attributevalue.MarshalMap(requester)
		existing, _ := attributevalue.MarshalMap(&models.Swap{Id: "swap-0", Status: models.PENDING})
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: userAV}, nil)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{existing}}, nil)

		_, err := store.CreateSwap(context.Background(), pointsSwap())

		assert.ErrorIs(t, err, storage.ErrDuplicateRequest)
		mockClient.AssertExpectations(t)
	})

	t.Run("Lost Lock Race", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		itemAV, _ := attributevalue.MarshalMap(requestedItem)
		userAV, _ := attributevalue.MarshalMap(requester)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: userAV}, nil)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)
		reasons := []types.CancellationReason{
			{Code: aws.String("None")},
			{Code: aws.String("ConditionalCheckFailed")},
		}
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, &types.TransactionCanceledException{CancellationReasons: reasons})

		_, err := store.CreateSwap(context.Background(), pointsSwap())

		assert.ErrorIs(t, err, storage.ErrDuplicateRequest)
		mockClient.AssertExpectations(t)
	})

	t.Run("Transaction Fails", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		itemAV, _ := attributevalue.MarshalMap(requestedItem)
		userAV, _ := attributevalue.MarshalMap(requester)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: itemAV}, nil)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Once().Return(&dynamodb.GetItemOutput{Item: userAV}, nil)
		mockClient.On("Query", mock.Anything, mock.Anything).Return(&dynamodb.QueryOutput{}, nil)
		mockClient.On("TransactWriteItems", mock.Anything, mock.Anything).Return(nil, errors.New("transaction failed"))

		_, err := store.CreateSwap(context.Background(), pointsSwap())

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute swap creation")
		mockClient.AssertExpectations(t)
	})
}
