package db

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// Collection names
const (
	UsersCollection             = "users"
	GameStatesCollection        = "game_states"
	BadgesCollection            = "badges"
	OfficialsCollection         = "officials"
	RatingsCollection           = "ratings"
	PromisesCollection          = "promises"
	EvidenceCollection          = "evidence"
	CampaignsCollection         = "campaigns"
	CampaignSupportsCollection  = "campaign_supports"
	PostsCollection             = "posts"
	CommentsCollection          = "comments"
	ModulesCollection           = "learning_modules"
	ModuleCompletionsCollection = "module_completions"
	QuizAttemptsCollection      = "quiz_attempts"
)

// GetCollection returns a collection by name
func GetCollection(collectionName string) *mongo.Collection {
	return MongoDatabase.Collection(collectionName)
}

// extractDBName parses the database name from the URI, defaulting to "civichub"
func extractDBName(uri string) string {
	u, err := url.Parse(uri)
	if err != nil {
		return "civichub"
	}
	if u.Path != "" && u.Path != "/" {
		return u.Path[1:] // Trim leading '/'
	}
	return "civichub"
}

// ConnectMongoDB establishes a connection to MongoDB using the provided URI
func ConnectMongoDB(uri string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	// Verify connection with a ping
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	MongoClient = client
	dbName := extractDBName(uri)
	log.Printf("Using database: %s", dbName)

	MongoDatabase = client.Database(dbName)

	if err := ensureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// ensureIndexes creates the indexes the application relies on for
// correctness. The unique index on game_states.userId guarantees one
// game-state record per user even under concurrent creation.
func ensureIndexes(ctx context.Context) error {
	_, err := GetCollection(GameStatesCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
