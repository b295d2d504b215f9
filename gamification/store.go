package gamification

import (
	"context"
	"errors"

	"civichub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	// ErrNotFound signals a missing record; the HTTP layer maps it to 404
	ErrNotFound = errors.New("record not found")
	// ErrConflict signals an optimistic-concurrency clash on save. The
	// engine never retries itself; the caller retries the whole
	// read-modify-write a bounded number of times.
	ErrConflict = errors.New("concurrent modification")
)

// Record kinds countable by CountUserRecords
const (
	RecordRatings           = "ratings"
	RecordReviews           = "reviews" // ratings carrying a comment of at least 50 characters
	RecordEvidence          = "evidence"
	RecordCampaigns         = "campaigns"
	RecordCampaignSupports  = "campaign_supports"
	RecordModuleCompletions = "module_completions"
)

// BadgeStore supplies the badge catalog and the historical counts badge
// criteria are judged against
type BadgeStore interface {
	LoadBadgeCatalog(ctx context.Context) ([]models.BadgeDefinition, error)
	CountUserRecords(ctx context.Context, userID primitive.ObjectID, record string) (int64, error)
	HasCompletedModule(ctx context.Context, userID primitive.ObjectID, moduleOrCategory string) (bool, error)
	CategoryCompletion(ctx context.Context, userID primitive.ObjectID, category string) (completed, total int64, err error)
	BestQuizScore(ctx context.Context, userID primitive.ObjectID) (int64, error)
	TopRatingUpvotes(ctx context.Context, userID primitive.ObjectID) (int64, error)
}

// Store is the persistence collaborator for the engine. SaveUserGameState
// must return ErrConflict when the record changed since it was loaded.
type Store interface {
	BadgeStore
	LoadUserGameState(ctx context.Context, userID primitive.ObjectID) (*models.UserGameState, error)
	SaveUserGameState(ctx context.Context, state *models.UserGameState) error
}

// Notifier dispatches fire-and-forget notifications. Implementations must
// not block the caller and must swallow their own failures.
type Notifier interface {
	NotifyBadgeEarned(userID string, badgeCodes []string)
	NotifyLevelUp(userID string, newLevel string, unlockedFeatures []string)
	NotifyPromiseStatusChanged(promiseID, oldStatus, newStatus string)
}
