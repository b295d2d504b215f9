package services

import (
	"context"
	"sync"

	"civichub/internal/cache"
	"civichub/models"
	"civichub/rating"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// officialLocks serializes average recomputation per official so a slow
// recompute cannot be overwritten by a faster one that read older data
var officialLocks sync.Map // official hex id -> *sync.Mutex

func lockForOfficial(id string) *sync.Mutex {
	mu, _ := officialLocks.LoadOrStore(id, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// RecomputeRatingOverall sets the derived overall score on a rating. It
// must run before every persist of a rating whose dimensions changed.
func RecomputeRatingOverall(r *models.Rating) {
	r.Overall = rating.Overall(*r)
}

// RecomputeOfficialAverages recomputes an official's aggregate from the
// current set of approved ratings and writes it through. Called
// synchronously after every rating create, update, delete, approval or
// rejection touching the official, so profile reads never see a stale
// aggregate.
func RecomputeOfficialAverages(ctx context.Context, officialID primitive.ObjectID) (models.AverageRating, error) {
	mu := lockForOfficial(officialID.Hex())
	mu.Lock()
	defer mu.Unlock()

	ratings, err := gameStore.LoadOfficialRatings(ctx, officialID)
	if err != nil {
		return models.AverageRating{}, err
	}

	averages := rating.Aggregate(ratings)
	if err := gameStore.SaveOfficialAverages(ctx, officialID, averages); err != nil {
		return models.AverageRating{}, err
	}

	cache.InvalidateOfficial(officialID.Hex())
	return averages, nil
}
