package services

import (
	"context"
	"errors"
	"log"
	"time"

	"civichub/gamification"
	"civichub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Store is the persistence surface shared by the services: the
// gamification engine collaborators plus the rating and promise
// persistence used by the recompute services.
type Store interface {
	gamification.Store
	EnsureUserGameState(ctx context.Context, userID primitive.ObjectID) error
	LoadOfficialRatings(ctx context.Context, officialID primitive.ObjectID) ([]models.Rating, error)
	SaveOfficialAverages(ctx context.Context, officialID primitive.ObjectID, averages models.AverageRating) error
	LoadPromiseEvidence(ctx context.Context, promiseID primitive.ObjectID) ([]models.Evidence, error)
	SavePromiseStatus(ctx context.Context, promiseID primitive.ObjectID, status string) error
}

var (
	gameStore  Store
	gameEngine *gamification.Engine
	notifier   gamification.Notifier
)

// InitGamificationService wires the engine to the shared store and the
// notification collaborator. Must run after db.ConnectMongoDB.
func InitGamificationService(n gamification.Notifier) {
	gameStore = NewMongoStore()
	notifier = n
	gameEngine = gamification.NewEngine(gameStore, n)
}

// awardRetries bounds optimistic-concurrency retries per award
const awardRetries = 3

// AwardForAction runs the point-award pipeline, retrying a bounded number
// of times when a concurrent action on the same user wins the race. A
// missing game state (an account whose state creation failed at signup)
// is created once and the award retried, so no action loses its points.
func AwardForAction(ctx context.Context, userID primitive.ObjectID, action gamification.Action) (*gamification.AwardResult, error) {
	var res *gamification.AwardResult
	var err error
	ensured := false
	for attempt := 0; attempt < awardRetries; attempt++ {
		res, err = gameEngine.AwardPoints(ctx, userID, action)
		switch {
		case errors.Is(err, gamification.ErrNotFound) && !ensured:
			if ensureErr := EnsureGameState(ctx, userID); ensureErr != nil {
				return nil, ensureErr
			}
			ensured = true
		case errors.Is(err, gamification.ErrConflict):
			// lost the race, reload and retry
		default:
			return res, err
		}
	}
	return nil, err
}

// TryAwardForAction awards points without ever failing the caller. The
// primary action (the rating, the evidence, the post) is already
// persisted by the time this runs; a gamification failure is logged and
// swallowed so it cannot undo or block that write.
func TryAwardForAction(ctx context.Context, userID primitive.ObjectID, actionType gamification.ActionType) *gamification.AwardResult {
	res, err := AwardForAction(ctx, userID, gamification.Action{Type: actionType})
	if err != nil {
		log.Printf("point award %s for user %s failed: %v", actionType, userID.Hex(), err)
		return nil
	}
	return res
}

// EnsureGameState creates the zeroed game-state record for a new account.
// Safe to call again for an existing user and safe under concurrent
// first-touch.
func EnsureGameState(ctx context.Context, userID primitive.ObjectID) error {
	return gameStore.EnsureUserGameState(ctx, userID)
}

// GetGameState loads a user's game state
func GetGameState(ctx context.Context, userID primitive.ObjectID) (*models.UserGameState, error) {
	return gameStore.LoadUserGameState(ctx, userID)
}

// StreakRisks reports break risk for both streak categories
func StreakRisks(ctx context.Context, userID primitive.ObjectID) ([]gamification.StreakRisk, error) {
	return gameEngine.Risks(ctx, userID, time.Now())
}
