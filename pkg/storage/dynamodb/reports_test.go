package dynamodb

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
	"github.com/SUSSSKIDD/server-ReWare/pkg/storage/dynamodb/mocks"
)

func TestGetUserDashboard(t *testing.T) {
	t.Run("Aggregates Items And Swaps", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		user := &models.User{UserId: "user-1", Points: 120, RatingSum: 9, ReviewsCount: 2}
		userAV, _ := attributevalue.MarshalMap(user)
		mockClient.On("GetItem", mock.Anything, mock.Anything).Return(&dynamodb.GetItemOutput{Item: userAV}, nil)

		listed := approvedItem()
		listed.Id = "item-1"
		hidden := approvedItem()
		hidden.Id = "item-2"
		hidden.IsAvailable = false
		listedAV, _ := attributevalue.MarshalMap(listed)
		hiddenAV, _ := attributevalue.MarshalMap(hidden)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return *input.TableName == "items"
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{listedAV, hiddenAV}}, nil)

		pending := pendingPointsSwap()
		completed := pendingPointsSwap()
		completed.Id = "swap-2"
		completed.Status = models.COMPLETED
		pendingAV, _ := attributevalue.MarshalMap(pending)
		completedAV, _ := attributevalue.MarshalMap(completed)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return *input.TableName == "swaps" && *input.IndexName == requesterIndex
		})).Return(&dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{pendingAV, completedAV}}, nil)
		mockClient.On("Query", mock.Anything, mock.MatchedBy(func(input *dynamodb.QueryInput) bool {
			return *input.TableName == "swaps" && *input.IndexName == swapOwnerIndex
		})).Return(&dynamodb.QueryOutput{}, nil)

		dashboard, err := store.GetUserDashboard(context.Background(), "user-1")

		assert.NoError(t, err)
		assert.Equal(t, 2, dashboard.TotalItems)
		assert.Equal(t, 1, dashboard.AvailableItems)
		assert.Equal(t, 1, dashboard.Swaps.Pending)
		assert.Equal(t, 1, dashboard.Swaps.Completed)
		assert.Equal(t, 4.5, dashboard.Rating)
		mockClient.AssertExpectations(t)
	})
}

func TestGetPlatformStats(t *testing.T) {
	t.Run("Counts Over The Window", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
			return *input.TableName == "users" && input.Select == types.SelectCount
		})).Return(&dynamodb.ScanOutput{Count: 3}, nil)
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
			return *input.TableName == "items" && input.Select == types.SelectCount
		})).Return(&dynamodb.ScanOutput{Count: 7}, nil)

		completed := pendingPointsSwap()
		completed.Status = models.COMPLETED
		completed.PointsTransaction = &models.PointsTransaction{
			FromUserId: "requester-1",
			ToUserId:   "owner-1",
			Amount:     80,
		}
		completedAV, _ := attributevalue.MarshalMap(completed)
		rejected := pendingPointsSwap()
		rejected.Id = "swap-2"
		rejected.Status = models.REJECTED
		rejectedAV, _ := attributevalue.MarshalMap(rejected)
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
			return *input.TableName == "swaps"
		})).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{completedAV, rejectedAV}}, nil)

		unreviewed := approvedItem()
		unreviewed.IsApproved = false
		unreviewedAV, _ := attributevalue.MarshalMap(unreviewed)
		mockClient.On("Scan", mock.Anything, mock.MatchedBy(func(input *dynamodb.ScanInput) bool {
			return *input.TableName == "items" && strings.Contains(*input.FilterExpression, "is_approved")
		})).Return(&dynamodb.ScanOutput{Items: []map[string]types.AttributeValue{unreviewedAV}}, nil)

		stats, err := store.GetPlatformStats(context.Background(), models.WindowWeek)

		assert.NoError(t, err)
		assert.Equal(t, models.WindowWeek, stats.Window)
		assert.WithinDuration(t, time.Now().Add(-7*24*time.Hour), stats.Since, time.Minute)
		assert.Equal(t, 3, stats.NewUsers)
		assert.Equal(t, 7, stats.NewItems)
		assert.Equal(t, 2, stats.NewSwaps)
		assert.Equal(t, 1, stats.CompletedSwaps)
		assert.Equal(t, int64(80), stats.PointsMoved)
		assert.Equal(t, 1, stats.PendingReview)
		mockClient.AssertExpectations(t)
	})

	t.Run("Window Start Keeps A Full Width Fraction", func(t *testing.T) {
		mockClient := new(mocks.DynamoDBAPI)
		store := newTestStore(mockClient)

		var sinceValues []string
		mockClient.On("Scan", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			input := args.Get(1).(*dynamodb.ScanInput)
			if av, ok := input.ExpressionAttributeValues[":since"].(*types.AttributeValueMemberS); ok {
				sinceValues = append(sinceValues, av.Value)
			}
		}).Return(&dynamodb.ScanOutput{}, nil)

		_, err := store.GetPlatformStats(context.Background(), models.WindowDay)

		assert.NoError(t, err)
		assert.Len(t, sinceValues, 3)
		for _, value := range sinceValues {
			assert.Regexp(t, `\.\d{9}Z$`, value)
		}
	})
}

func TestWindowStartOrdering(t *testing.T) {
	t.Run("Whole Second Boundary Sorts Before Sub Second Records", func(t *testing.T) {
		midnight := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
		inWindow := midnight.Add(500 * time.Millisecond).Format(time.RFC3339Nano)

		av, ok := windowStartAV(midnight).(*types.AttributeValueMemberS)

		assert.True(t, ok)
		assert.Equal(t, "2026-03-01T00:00:00.000000000Z", av.Value)
		assert.Less(t, av.Value, inWindow)
		// The bare rendering drops the zero fraction and sorts past the record.
		assert.Greater(t, midnight.Format(time.RFC3339Nano), inWindow)
	})
}
