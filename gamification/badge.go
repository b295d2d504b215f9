package gamification

import (
	"context"
	"log"

	"civichub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Badge criterion types understood by the evaluator. Anything else fails
// closed.
const (
	CriteriaSpecificAction       = "specific_action"
	CriteriaRatingCount          = "rating_count"
	CriteriaReviewCount          = "review_count"
	CriteriaEvidenceCount        = "evidence_count"
	CriteriaCampaignCount        = "campaign_count"
	CriteriaCampaignSupportCount = "campaign_support_count"
	CriteriaModuleCompletion     = "module_completion"
	CriteriaCategoryCompletion   = "category_completion"
	CriteriaQuizScore            = "quiz_score"
	CriteriaUpvoteCount          = "upvote_count"
	CriteriaLevelReached         = "level_reached"
)

// countRecordForCriteria maps the plain counting criterion types onto
// store record kinds
var countRecordForCriteria = map[string]string{
	CriteriaRatingCount:          RecordRatings,
	CriteriaReviewCount:          RecordReviews,
	CriteriaEvidenceCount:        RecordEvidence,
	CriteriaCampaignCount:        RecordCampaigns,
	CriteriaCampaignSupportCount: RecordCampaignSupports,
}

// BadgeAward couples a newly earned badge code with its point reward
type BadgeAward struct {
	Code         string
	PointsReward int
}

// BadgeEvaluator checks the badge catalog against a user's history
type BadgeEvaluator struct {
	store BadgeStore
}

func NewBadgeEvaluator(store BadgeStore) *BadgeEvaluator {
	return &BadgeEvaluator{store: store}
}

// Evaluate returns the badges newly earned by this action, skipping any
// the user already owns. Evaluation is idempotent: with unchanged
// underlying counts a second run returns nothing new. A badge whose
// criteria cannot be checked is skipped with a warning rather than
// failing the award.
func (e *BadgeEvaluator) Evaluate(ctx context.Context, userID primitive.ObjectID, action ActionType, state *models.UserGameState) ([]BadgeAward, error) {
	catalog, err := e.store.LoadBadgeCatalog(ctx)
	if err != nil {
		return nil, err
	}

	var awards []BadgeAward
	for _, def := range catalog {
		if state.HasBadge(def.Code) {
			continue
		}
		ok, err := e.eligible(ctx, userID, action, state, def.Criteria)
		if err != nil {
			log.Printf("badge %s: criteria check failed: %v", def.Code, err)
			continue
		}
		if ok {
			awards = append(awards, BadgeAward{Code: def.Code, PointsReward: def.PointsReward})
		}
	}
	return awards, nil
}

func (e *BadgeEvaluator) eligible(ctx context.Context, userID primitive.ObjectID, action ActionType, state *models.UserGameState, c models.BadgeCriteria) (bool, error) {
	switch c.Type {
	case CriteriaSpecificAction:
		return c.SpecificValue != "" && string(action) == c.SpecificValue, nil

	case CriteriaRatingCount, CriteriaReviewCount, CriteriaEvidenceCount,
		CriteriaCampaignCount, CriteriaCampaignSupportCount:
		if c.Threshold <= 0 {
			return false, nil
		}
		n, err := e.store.CountUserRecords(ctx, userID, countRecordForCriteria[c.Type])
		if err != nil {
			return false, err
		}
		return n >= int64(c.Threshold), nil

	case CriteriaModuleCompletion:
		if c.SpecificValue != "" {
			return e.store.HasCompletedModule(ctx, userID, c.SpecificValue)
		}
		if c.Threshold <= 0 {
			return false, nil
		}
		n, err := e.store.CountUserRecords(ctx, userID, RecordModuleCompletions)
		if err != nil {
			return false, err
		}
		return n >= int64(c.Threshold), nil

	case CriteriaCategoryCompletion:
		if c.SpecificValue == "" {
			return false, nil
		}
		completed, total, err := e.store.CategoryCompletion(ctx, userID, c.SpecificValue)
		if err != nil {
			return false, err
		}
		return total > 0 && completed == total, nil

	case CriteriaQuizScore:
		if c.Threshold <= 0 {
			return false, nil
		}
		best, err := e.store.BestQuizScore(ctx, userID)
		if err != nil {
			return false, err
		}
		return best >= int64(c.Threshold), nil

	case CriteriaUpvoteCount:
		if c.Threshold <= 0 {
			return false, nil
		}
		top, err := e.store.TopRatingUpvotes(ctx, userID)
		if err != nil {
			return false, err
		}
		return top >= int64(c.Threshold), nil

	case CriteriaLevelReached:
		want := LevelRank(c.SpecificValue)
		return want >= 0 && LevelRank(state.Level) >= want, nil

	default:
		// unknown criterion type fails closed
		return false, nil
	}
}
