package services

import (
	"context"
	"fmt"
	"time"

	"civichub/db"
	"civichub/gamification"
	"civichub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements gamification.Store plus the rating and promise
// persistence used by the recompute services, all over the shared
// database connection.
type MongoStore struct{}

func NewMongoStore() *MongoStore {
	return &MongoStore{}
}

func (s *MongoStore) LoadUserGameState(ctx context.Context, userID primitive.ObjectID) (*models.UserGameState, error) {
	var state models.UserGameState
	err := db.GetCollection(db.GameStatesCollection).FindOne(ctx, bson.M{"userId": userID}).Decode(&state)
	if err == mongo.ErrNoDocuments {
		return nil, gamification.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// SaveUserGameState persists the game state with optimistic concurrency:
// the update matches on the version loaded with the record and bumps it,
// so a racing writer loses with ErrConflict instead of silently dropping
// points or badges.
func (s *MongoStore) SaveUserGameState(ctx context.Context, state *models.UserGameState) error {
	coll := db.GetCollection(db.GameStatesCollection)
	now := time.Now()

	if state.ID.IsZero() {
		state.ID = primitive.NewObjectID()
		state.Version = 1
		state.CreatedAt = now
		state.UpdatedAt = now
		_, err := coll.InsertOne(ctx, state)
		return err
	}

	loadedVersion := state.Version
	res, err := coll.UpdateOne(ctx,
		bson.M{"_id": state.ID, "version": loadedVersion},
		bson.M{
			"$set": bson.M{
				"impactPoints": state.ImpactPoints,
				"level":        state.Level,
				"badges":       state.Badges,
				"streaks":      state.Streaks,
				"updatedAt":    now,
			},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return gamification.ErrConflict
	}
	state.Version = loadedVersion + 1
	state.UpdatedAt = now
	return nil
}

// EnsureUserGameState creates the zeroed game state for a user if none
// exists. An upsert keyed on userId keeps concurrent first-touch callers
// from inserting duplicate records; the unique index on userId backs
// this up at the database level.
func (s *MongoStore) EnsureUserGameState(ctx context.Context, userID primitive.ObjectID) error {
	now := time.Now()
	_, err := db.GetCollection(db.GameStatesCollection).UpdateOne(ctx,
		bson.M{"userId": userID},
		bson.M{"$setOnInsert": bson.M{
			"userId":       userID,
			"impactPoints": 0,
			"level":        models.LevelCitizen,
			"badges":       []string{},
			"streaks":      models.StreakSet{},
			"version":      int64(1),
			"createdAt":    now,
			"updatedAt":    now,
		}},
		options.Update().SetUpsert(true))
	return err
}

func (s *MongoStore) LoadBadgeCatalog(ctx context.Context) ([]models.BadgeDefinition, error) {
	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := db.GetCollection(db.BadgesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var catalog []models.BadgeDefinition
	if err := cursor.All(ctx, &catalog); err != nil {
		return nil, err
	}
	return catalog, nil
}

func (s *MongoStore) CountUserRecords(ctx context.Context, userID primitive.ObjectID, record string) (int64, error) {
	switch record {
	case gamification.RecordRatings:
		return db.GetCollection(db.RatingsCollection).CountDocuments(ctx, bson.M{"userId": userID})
	case gamification.RecordReviews:
		// a review is a rating whose comment is at least 50 characters
		filter := bson.M{
			"userId": userID,
			"$expr": bson.M{"$gte": bson.A{
				bson.M{"$strLenCP": bson.M{"$ifNull": bson.A{"$comment", ""}}},
				50,
			}},
		}
		return db.GetCollection(db.RatingsCollection).CountDocuments(ctx, filter)
	case gamification.RecordEvidence:
		return db.GetCollection(db.EvidenceCollection).CountDocuments(ctx, bson.M{"userId": userID})
	case gamification.RecordCampaigns:
		return db.GetCollection(db.CampaignsCollection).CountDocuments(ctx, bson.M{"creatorId": userID})
	case gamification.RecordCampaignSupports:
		return db.GetCollection(db.CampaignSupportsCollection).CountDocuments(ctx, bson.M{"userId": userID})
	case gamification.RecordModuleCompletions:
		return db.GetCollection(db.ModuleCompletionsCollection).CountDocuments(ctx, bson.M{"userId": userID})
	default:
		return 0, fmt.Errorf("unknown record kind %q", record)
	}
}

func (s *MongoStore) HasCompletedModule(ctx context.Context, userID primitive.ObjectID, name string) (bool, error) {
	filter := bson.M{
		"userId": userID,
		"$or": bson.A{
			bson.M{"moduleTitle": name},
			bson.M{"category": name},
		},
	}
	n, err := db.GetCollection(db.ModuleCompletionsCollection).CountDocuments(ctx, filter)
	return n > 0, err
}

func (s *MongoStore) CategoryCompletion(ctx context.Context, userID primitive.ObjectID, category string) (int64, int64, error) {
	total, err := db.GetCollection(db.ModulesCollection).CountDocuments(ctx, bson.M{"category": category})
	if err != nil {
		return 0, 0, err
	}
	completed, err := db.GetCollection(db.ModuleCompletionsCollection).CountDocuments(ctx, bson.M{"userId": userID, "category": category})
	if err != nil {
		return 0, 0, err
	}
	return completed, total, nil
}

func (s *MongoStore) BestQuizScore(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "correctCount", Value: -1}})
	var attempt models.QuizAttempt
	err := db.GetCollection(db.QuizAttemptsCollection).FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&attempt)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(attempt.CorrectCount), nil
}

func (s *MongoStore) TopRatingUpvotes(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "upvotes", Value: -1}})
	var r models.Rating
	err := db.GetCollection(db.RatingsCollection).FindOne(ctx, bson.M{"userId": userID}, opts).Decode(&r)
	if err == mongo.ErrNoDocuments {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return int64(r.Upvotes), nil
}

// LoadOfficialRatings returns the approved ratings for an official.
// Pending and rejected ratings never enter the aggregate.
func (s *MongoStore) LoadOfficialRatings(ctx context.Context, officialID primitive.ObjectID) ([]models.Rating, error) {
	filter := bson.M{"officialId": officialID, "status": models.RatingStatusApproved}
	cursor, err := db.GetCollection(db.RatingsCollection).Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		return nil, err
	}
	return ratings, nil
}

func (s *MongoStore) SaveOfficialAverages(ctx context.Context, officialID primitive.ObjectID, averages models.AverageRating) error {
	res, err := db.GetCollection(db.OfficialsCollection).UpdateOne(ctx,
		bson.M{"_id": officialID},
		bson.M{"$set": bson.M{"averageRating": averages, "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return gamification.ErrNotFound
	}
	return nil
}

func (s *MongoStore) LoadPromiseEvidence(ctx context.Context, promiseID primitive.ObjectID) ([]models.Evidence, error) {
	cursor, err := db.GetCollection(db.EvidenceCollection).Find(ctx, bson.M{"promiseId": promiseID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var evidence []models.Evidence
	if err := cursor.All(ctx, &evidence); err != nil {
		return nil, err
	}
	return evidence, nil
}

func (s *MongoStore) SavePromiseStatus(ctx context.Context, promiseID primitive.ObjectID, status string) error {
	res, err := db.GetCollection(db.PromisesCollection).UpdateOne(ctx,
		bson.M{"_id": promiseID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now()}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return gamification.ErrNotFound
	}
	return nil
}
