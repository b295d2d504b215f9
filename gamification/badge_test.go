package gamification

import (
	"context"
	"errors"
	"testing"

	"civichub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeBadgeStore struct {
	catalog    []models.BadgeDefinition
	counts     map[string]int64
	modules    map[string]bool
	catDone    map[string][2]int64 // category -> completed, total
	bestQuiz   int64
	topUpvotes int64
	countErr   error
	catalogErr error
}

func (f *fakeBadgeStore) LoadBadgeCatalog(ctx context.Context) ([]models.BadgeDefinition, error) {
	return f.catalog, f.catalogErr
}

func (f *fakeBadgeStore) CountUserRecords(ctx context.Context, userID primitive.ObjectID, record string) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return f.counts[record], nil
}

func (f *fakeBadgeStore) HasCompletedModule(ctx context.Context, userID primitive.ObjectID, name string) (bool, error) {
	return f.modules[name], nil
}

func (f *fakeBadgeStore) CategoryCompletion(ctx context.Context, userID primitive.ObjectID, category string) (int64, int64, error) {
	c := f.catDone[category]
	return c[0], c[1], nil
}

func (f *fakeBadgeStore) BestQuizScore(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return f.bestQuiz, nil
}

func (f *fakeBadgeStore) TopRatingUpvotes(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return f.topUpvotes, nil
}

func badgeDef(code, criteriaType string, threshold int, specific string) models.BadgeDefinition {
	return models.BadgeDefinition{
		Code:         code,
		Name:         code,
		PointsReward: 25,
		Criteria: models.BadgeCriteria{
			Type:          criteriaType,
			Threshold:     threshold,
			SpecificValue: specific,
		},
	}
}

func codes(awards []BadgeAward) []string {
	var out []string
	for _, a := range awards {
		out = append(out, a.Code)
	}
	return out
}

func TestSpecificActionBadge(t *testing.T) {
	store := &fakeBadgeStore{
		catalog: []models.BadgeDefinition{badgeDef("first-voice", CriteriaSpecificAction, 0, "rate-official")},
	}
	ev := NewBadgeEvaluator(store)
	state := &models.UserGameState{Level: models.LevelCitizen}

	awards, err := ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionRateOfficial, state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(awards) != 1 || awards[0].Code != "first-voice" {
		t.Errorf("expected first-voice, got %v", codes(awards))
	}

	awards, _ = ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionCreatePost, state)
	if len(awards) != 0 {
		t.Errorf("wrong action should not earn the badge, got %v", codes(awards))
	}
}

func TestCountingBadges(t *testing.T) {
	store := &fakeBadgeStore{
		catalog: []models.BadgeDefinition{
			badgeDef("rater-10", CriteriaRatingCount, 10, ""),
			badgeDef("reviewer-5", CriteriaReviewCount, 5, ""),
			badgeDef("investigator-3", CriteriaEvidenceCount, 3, ""),
		},
		counts: map[string]int64{
			RecordRatings:  10,
			RecordReviews:  4,
			RecordEvidence: 3,
		},
	}
	ev := NewBadgeEvaluator(store)
	state := &models.UserGameState{Level: models.LevelCitizen}

	awards, err := ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionRateOfficial, state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := codes(awards)
	if len(got) != 2 || got[0] != "rater-10" || got[1] != "investigator-3" {
		t.Errorf("expected rater-10 and investigator-3, got %v", got)
	}
}

func TestAlreadyOwnedBadgesSkipped(t *testing.T) {
	store := &fakeBadgeStore{
		catalog: []models.BadgeDefinition{badgeDef("rater-10", CriteriaRatingCount, 10, "")},
		counts:  map[string]int64{RecordRatings: 50},
	}
	ev := NewBadgeEvaluator(store)
	state := &models.UserGameState{Level: models.LevelCitizen, Badges: []string{"rater-10"}}

	awards, err := ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionRateOfficial, state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(awards) != 0 {
		t.Errorf("owned badge re-awarded: %v", codes(awards))
	}
}

func TestModuleCompletionBadge(t *testing.T) {
	store := &fakeBadgeStore{
		catalog: []models.BadgeDefinition{
			badgeDef("elections-101", CriteriaModuleCompletion, 0, "elections"),
			badgeDef("scholar-5", CriteriaModuleCompletion, 5, ""),
		},
		modules: map[string]bool{"elections": true},
		counts:  map[string]int64{RecordModuleCompletions: 4},
	}
	ev := NewBadgeEvaluator(store)
	state := &models.UserGameState{Level: models.LevelCitizen}

	awards, _ := ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionCompleteModule, state)
	got := codes(awards)
	if len(got) != 1 || got[0] != "elections-101" {
		t.Errorf("expected only elections-101, got %v", got)
	}
}

func TestCategoryCompletionBadge(t *testing.T) {
	store := &fakeBadgeStore{
		catalog: []models.BadgeDefinition{badgeDef("local-gov-master", CriteriaCategoryCompletion, 0, "local-government")},
		catDone: map[string][2]int64{"local-government": {3, 3}},
	}
	ev := NewBadgeEvaluator(store)
	state := &models.UserGameState{Level: models.LevelCitizen}

	awards, _ := ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionCompleteModule, state)
	if len(awards) != 1 {
		t.Fatalf("full category should earn the badge, got %v", codes(awards))
	}

	// empty category can never be completed
	store.catDone["local-government"] = [2]int64{0, 0}
	state.Badges = nil
	awards, _ = ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionCompleteModule, state)
	if len(awards) != 0 {
		t.Errorf("empty category earned a badge: %v", codes(awards))
	}
}

func TestQuizAndUpvoteBadges(t *testing.T) {
	store := &fakeBadgeStore{
		catalog: []models.BadgeDefinition{
			badgeDef("quiz-ace", CriteriaQuizScore, 8, ""),
			badgeDef("community-favorite", CriteriaUpvoteCount, 10, ""),
		},
		bestQuiz:   9,
		topUpvotes: 7,
	}
	ev := NewBadgeEvaluator(store)
	state := &models.UserGameState{Level: models.LevelCitizen}

	awards, _ := ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionCompleteQuiz, state)
	got := codes(awards)
	if len(got) != 1 || got[0] != "quiz-ace" {
		t.Errorf("expected quiz-ace only, got %v", got)
	}
}

func TestLevelReachedBadge(t *testing.T) {
	store := &fakeBadgeStore{
		catalog: []models.BadgeDefinition{badgeDef("rising-advocate", CriteriaLevelReached, 0, "advocate")},
	}
	ev := NewBadgeEvaluator(store)

	state := &models.UserGameState{Level: models.LevelCitizen}
	awards, _ := ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionRateOfficial, state)
	if len(awards) != 0 {
		t.Errorf("citizen earned advocate badge: %v", codes(awards))
	}

	// leader is at or above advocate
	state.Level = models.LevelLeader
	awards, _ = ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionRateOfficial, state)
	if len(awards) != 1 {
		t.Errorf("leader should earn advocate-level badge, got %v", codes(awards))
	}
}

func TestUnknownCriteriaFailClosed(t *testing.T) {
	store := &fakeBadgeStore{
		catalog: []models.BadgeDefinition{
			badgeDef("mystery", "reverse_psychology", 1, ""),
			badgeDef("no-threshold", CriteriaRatingCount, 0, ""),
		},
		counts: map[string]int64{RecordRatings: 100},
	}
	ev := NewBadgeEvaluator(store)
	state := &models.UserGameState{Level: models.LevelCitizen}

	awards, err := ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionRateOfficial, state)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(awards) != 0 {
		t.Errorf("malformed criteria should not award: %v", codes(awards))
	}
}

func TestCountErrorSkipsBadgeOnly(t *testing.T) {
	store := &fakeBadgeStore{
		catalog: []models.BadgeDefinition{
			badgeDef("rater-10", CriteriaRatingCount, 10, ""),
			badgeDef("first-voice", CriteriaSpecificAction, 0, "rate-official"),
		},
		countErr: errors.New("collection unavailable"),
	}
	ev := NewBadgeEvaluator(store)
	state := &models.UserGameState{Level: models.LevelCitizen}

	awards, err := ev.Evaluate(context.Background(), primitive.NewObjectID(), ActionRateOfficial, state)
	if err != nil {
		t.Fatalf("count failure should not fail evaluation: %v", err)
	}
	got := codes(awards)
	if len(got) != 1 || got[0] != "first-voice" {
		t.Errorf("expected first-voice despite count failure, got %v", got)
	}
}
