package main

import (
	"context"
	"encoding/json"
	"log"
	"os"

	lambdaevents "github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"

	"github.com/SUSSSKIDD/server-ReWare/pkg/events"
	"github.com/SUSSSKIDD/server-ReWare/pkg/notifications"
	dydbstore "github.com/SUSSSKIDD/server-ReWare/pkg/storage/dynamodb"
)

var publisher notifications.Publisher

func init() {
	// Load environment variables from .env file (useful for local testing).
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize dependencies once.
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")
	if connectionsTable == "" {
		log.Fatal("DYNAMODB_CONNECTIONS_TABLE_NAME environment variable not set")
	}

	apiEndpoint := os.Getenv("WEBSOCKET_API_ENDPOINT")
	if apiEndpoint == "" {
		log.Fatal("WEBSOCKET_API_ENDPOINT environment variable not set")
	}

	// The notifier only touches the connections table.
	store := dydbstore.New(dbClient, nil, "", "", "", connectionsTable)

	publisher, err = notifications.NewPublisher(store, store, apiEndpoint)
	if err != nil {
		log.Fatalf("unable to create publisher, %v", err)
	}
}

// HandleRequest fans swap lifecycle events out to both parties' WebSocket
// connections.
func HandleRequest(ctx context.Context, sqsEvent lambdaevents.SQSEvent) error {
	for _, message := range sqsEvent.Records {
		log.Printf("Processing message %s", message.MessageId)

		var evt events.SwapEvent
		if err := json.Unmarshal([]byte(message.Body), &evt); err != nil {
			log.Printf("ERROR: failed to unmarshal swap event from SQS message %s: %v", message.MessageId, err)
			// Returning an error will cause SQS to retry the message, which is appropriate here.
			return err
		}

		msg := notifications.Message{
			Type: notifications.MessageTypeSwapUpdate,
			Payload: notifications.SwapUpdatePayload{
				SwapID: evt.SwapId,
				Status: string(evt.Status),
			},
		}

		for _, userID := range []string{evt.RequesterId, evt.OwnerId} {
			if err := publisher.PublishToUser(ctx, userID, msg); err != nil {
				log.Printf("ERROR: failed to notify user %s for swap %s: %v", userID, evt.SwapId, err)
				return err
			}
		}

		log.Printf("Successfully delivered swap event %s for swap %s", evt.Type, evt.SwapId)
	}

	return nil
}

func main() {
	lambda.Start(HandleRequest)
}
