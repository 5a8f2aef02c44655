package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/joho/godotenv"

	"github.com/SUSSSKIDD/server-ReWare/pkg/cache"
	"github.com/SUSSSKIDD/server-ReWare/pkg/events"
	"github.com/SUSSSKIDD/server-ReWare/pkg/handlers"
	dydbstore "github.com/SUSSSKIDD/server-ReWare/pkg/storage/dynamodb"
)

func main() {
	// Load environment variables from .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// AWS Session
	cfg, err := config.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	dbClient := dynamodb.NewFromConfig(cfg)
	usersTable := os.Getenv("DYNAMODB_USERS_TABLE_NAME")
	itemsTable := os.Getenv("DYNAMODB_ITEMS_TABLE_NAME")
	swapsTable := os.Getenv("DYNAMODB_SWAPS_TABLE_NAME")
	connectionsTable := os.Getenv("DYNAMODB_CONNECTIONS_TABLE_NAME")

	if usersTable == "" || itemsTable == "" || swapsTable == "" || connectionsTable == "" {
		log.Fatal("One or more DynamoDB table name environment variables are not set")
	}

	// SQS publisher for swap lifecycle events. Optional locally.
	var publisher events.Publisher = &events.NoOpPublisher{}
	if queueURL := os.Getenv("SQS_QUEUE_URL"); queueURL != "" {
		publisher = events.NewSQSPublisher(sqs.NewFromConfig(cfg), queueURL)
	} else {
		log.Println("SQS_QUEUE_URL not set, swap events will not be published")
	}

	// Redis cache for listings and stats. Optional locally.
	var pageCache *cache.Cache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		pageCache, err = cache.New(context.TODO(), addr)
		if err != nil {
			log.Fatalf("unable to connect to redis, %v", err)
		}
		defer pageCache.Close()
	} else {
		log.Println("REDIS_ADDR not set, responses will not be cached")
	}

	// Create our storage implementation
	store := dydbstore.New(dbClient, publisher, usersTable, itemsTable, swapsTable, connectionsTable)

	router := handlers.NewRouter(handlers.Config{
		Store:              store,
		Cache:              pageCache,
		Logger:             logger,
		ModerationRequired: os.Getenv("MODERATION_REQUIRED") == "true",
	})

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080" // Default port if not specified
	}

	log.Printf("Starting server on port %s", port)

	// Start the server
	err = http.ListenAndServe(":"+port, router)
	if err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
