package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/SUSSSKIDD/server-ReWare/pkg/models"
)

const (
	ownerIndex = "owner_id-index"

	defaultPerPage = 12
	maxPerPage     = 100
)

// ListAvailableItems returns one page of publicly listable items matching
// the query. The filtered scan is paginated to exhaustion so the page
// envelope can report exact totals.
func (s *Store) ListAvailableItems(ctx context.Context, query models.ItemQuery) (*models.ItemPage, error) {
	filters := []string{"is_listed = :listed"}
	values := map[string]types.AttributeValue{
		":listed": &types.AttributeValueMemberS{Value: listedFlag},
	}
	// "size" and "condition" are DynamoDB reserved words.
	names := map[string]string{}

	if query.Category != "" {
		filters = append(filters, "category = :category")
		values[":category"] = &types.AttributeValueMemberS{Value: query.Category}
	}
	if query.Size != "" {
		filters = append(filters, "#size = :size")
		values[":size"] = &types.AttributeValueMemberS{Value: query.Size}
		names["#size"] = "size"
	}
	if query.Condition != "" {
		filters = append(filters, "#condition = :condition")
		values[":condition"] = &types.AttributeValueMemberS{Value: query.Condition}
		names["#condition"] = "condition"
	}
	if query.MinPoints > 0 {
		filters = append(filters, "points_value >= :min_points")
		values[":min_points"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", query.MinPoints)}
	}
	if query.MaxPoints > 0 {
		filters = append(filters, "points_value <= :max_points")
		values[":max_points"] = &types.AttributeValueMemberN{Value: fmt.Sprintf("%d", query.MaxPoints)}
	}
	if query.Search != "" {
		filters = append(filters, "contains(search_text, :search)")
		values[":search"] = &types.AttributeValueMemberS{Value: strings.ToLower(query.Search)}
	}

	input := &dynamodb.ScanInput{
		TableName:                 aws.String(s.ItemsTableName),
		FilterExpression:          aws.String(strings.Join(filters, " AND ")),
		ExpressionAttributeValues: values,
	}
	if len(names) > 0 {
		input.ExpressionAttributeNames = names
	}

	var items []models.Item
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan items table: %w", err)
		}

		var page []models.Item
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal items: %w", err)
		}
		items = append(items, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sortItems(items, query.Sort)
	return paginate(items, query.Page, query.PerPage), nil
}

// sortItems orders the full result set before slicing a page out of it.
func sortItems(items []models.Item, order models.ItemSort) {
	switch order {
	case models.SortOldest:
		sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.Before(items[j].CreatedAt) })
	case models.SortPointsAsc:
		sort.Slice(items, func(i, j int) bool { return items[i].PointsValue < items[j].PointsValue })
	case models.SortPointsDesc:
		sort.Slice(items, func(i, j int) bool { return items[i].PointsValue > items[j].PointsValue })
	default:
		sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	}
}

// paginate slices one page out of the sorted result set and fills the page
// envelope with exact totals.
func paginate(items []models.Item, page, perPage int) *models.ItemPage {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	total := len(items)
	totalPages := (total + perPage - 1) / perPage
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return &models.ItemPage{
		Items: items[start:end],
		Page: models.PageInfo{
			CurrentPage: page,
			TotalPages:  totalPages,
			TotalItems:  total,
			HasNext:     page < totalPages,
			HasPrev:     page > 1,
		},
	}
}

// ListItemsByOwner retrieves all items owned by a user via the owner GSI.
func (s *Store) ListItemsByOwner(ctx context.Context, ownerID string) ([]models.Item, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.ItemsTableName),
		IndexName:              aws.String(ownerIndex),
		KeyConditionExpression: aws.String("owner_id = :owner"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":owner": &types.AttributeValueMemberS{Value: ownerID},
		},
	}

	var items []models.Item
	for {
		result, err := s.Client.Query(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to query items by owner: %w", err)
		}

		var page []models.Item
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal owner items: %w", err)
		}
		items = append(items, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	return items, nil
}

// ListPendingModeration retrieves items awaiting an admin decision
// (neither approved nor rejected).
func (s *Store) ListPendingModeration(ctx context.Context) ([]models.Item, error) {
	input := &dynamodb.ScanInput{
		TableName:        aws.String(s.ItemsTableName),
		FilterExpression: aws.String("is_approved = :false AND is_rejected = :false"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":false": &types.AttributeValueMemberBOOL{Value: false},
		},
	}

	var items []models.Item
	for {
		result, err := s.Client.Scan(ctx, input)
		if err != nil {
			return nil, fmt.Errorf("failed to scan moderation queue: %w", err)
		}

		var page []models.Item
		if err := attributevalue.UnmarshalListOfMaps(result.Items, &page); err != nil {
			return nil, fmt.Errorf("failed to unmarshal moderation queue: %w", err)
		}
		items = append(items, page...)

		if result.LastEvaluatedKey == nil {
			break
		}
		input.ExclusiveStartKey = result.LastEvaluatedKey
	}

	sortItems(items, models.SortOldest)
	return items, nil
}
