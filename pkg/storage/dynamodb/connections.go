package dynamodb

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

const connectionUserIndex = "user_id-index"

// connectionRecord is one WebSocket connection row.
type connectionRecord struct {
	ConnectionId string `dynamodbav:"connection_id"`
	UserId       string `dynamodbav:"user_id"`
}

// AddConnection records a new WebSocket connection for a user.
func (s *Store) AddConnection(ctx context.Context, connectionID, userID string) error {
	av, err := attributevalue.MarshalMap(connectionRecord{ConnectionId: connectionID, UserId: userID})
	if err != nil {
		return fmt.Errorf("failed to marshal connection: %w", err)
	}

	input := &dynamodb.PutItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Item:      av,
	}

	if _, err := s.Client.PutItem(ctx, input); err != nil {
		return fmt.Errorf("failed to store connection: %w", err)
	}

	return nil
}

// RemoveConnection deletes a connection record.
func (s *Store) RemoveConnection(ctx context.Context, connectionID string) error {
	input := &dynamodb.DeleteItemInput{
		TableName: aws.String(s.ConnectionsTableName),
		Key:       map[string]types.AttributeValue{"connection_id": &types.AttributeValueMemberS{Value: connectionID}},
	}

	if _, err := s.Client.DeleteItem(ctx, input); err != nil {
		return fmt.Errorf("failed to delete connection: %w", err)
	}

	return nil
}

// GetConnectionsForUser returns the active connection IDs for a user.
func (s *Store) GetConnectionsForUser(ctx context.Context, userID string) ([]string, error) {
	input := &dynamodb.QueryInput{
		TableName:              aws.String(s.ConnectionsTableName),
		IndexName:              aws.String(connectionUserIndex),
		KeyConditionExpression: aws.String("user_id = :user"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":user": &types.AttributeValueMemberS{Value: userID},
		},
	}

	result, err := s.Client.Query(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to query connections: %w", err)
	}

	var records []connectionRecord
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal connections: %w", err)
	}

	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.ConnectionId
	}

	return ids, nil
}
