package gamification

import (
	"context"
	"testing"
	"time"

	"civichub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type fakeStore struct {
	fakeBadgeStore
	state   *models.UserGameState
	loadErr error
	saveErr error
	saved   int
}

func (f *fakeStore) LoadUserGameState(ctx context.Context, userID primitive.ObjectID) (*models.UserGameState, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	cp := *f.state
	return &cp, nil
}

func (f *fakeStore) SaveUserGameState(ctx context.Context, state *models.UserGameState) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved++
	f.state = state
	return nil
}

type fakeNotifier struct {
	badgeCalls   [][]string
	levelCalls   []string
	promiseCalls []string
}

func (n *fakeNotifier) NotifyBadgeEarned(userID string, badgeCodes []string) {
	n.badgeCalls = append(n.badgeCalls, badgeCodes)
}

func (n *fakeNotifier) NotifyLevelUp(userID string, newLevel string, unlockedFeatures []string) {
	n.levelCalls = append(n.levelCalls, newLevel)
}

func (n *fakeNotifier) NotifyPromiseStatusChanged(promiseID, oldStatus, newStatus string) {
	n.promiseCalls = append(n.promiseCalls, newStatus)
}

func freshState() *models.UserGameState {
	return &models.UserGameState{
		UserID: primitive.NewObjectID(),
		Level:  models.LevelCitizen,
	}
}

func TestFirstEvidenceAward(t *testing.T) {
	store := &fakeStore{state: freshState()}
	engine := NewEngine(store, nil)

	res, err := engine.AwardPoints(context.Background(), store.state.UserID, Action{Type: ActionSubmitEvidence})
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}

	// 20 base points, no streak bonus yet, no level change
	if res.ActionPoints != 20 || res.TotalAwarded != 20 {
		t.Errorf("awarded %d/%d points, want 20/20", res.ActionPoints, res.TotalAwarded)
	}
	if res.Level != models.LevelCitizen || res.LeveledUp {
		t.Errorf("level = %s leveledUp=%v, want citizen without level-up", res.Level, res.LeveledUp)
	}
	if res.Streak.Current != 1 || res.Streak.Longest != 1 {
		t.Errorf("civic streak = %d/%d, want 1/1", res.Streak.Current, res.Streak.Longest)
	}
	if store.state.ImpactPoints != 20 {
		t.Errorf("persisted points = %d, want 20", store.state.ImpactPoints)
	}
	if store.saved != 1 {
		t.Errorf("expected exactly one save, got %d", store.saved)
	}
}

func TestStreakBonusAppliesToSecondWeek(t *testing.T) {
	last := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	state := freshState()
	state.Streaks.Civic = models.StreakState{Current: 2, Longest: 2, LastActivity: &last}
	store := &fakeStore{state: state}
	engine := NewEngine(store, nil)

	res, err := engine.AwardPoints(context.Background(), state.UserID, Action{
		Type: ActionSubmitEvidence,
		At:   last.AddDate(0, 0, 6),
	})
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if res.Multiplier != 1.2 {
		t.Errorf("multiplier = %v, want 1.2 for a 2-week streak", res.Multiplier)
	}
	if res.ActionPoints != 24 {
		t.Errorf("points = %d, want 24", res.ActionPoints)
	}
	if res.Streak.Current != 3 {
		t.Errorf("streak = %d, want 3", res.Streak.Current)
	}
}

func TestBadgeRewardStacksOnActionPoints(t *testing.T) {
	state := freshState()
	store := &fakeStore{state: state}
	store.catalog = []models.BadgeDefinition{{
		Code:         "first-evidence",
		PointsReward: 30,
		Criteria:     models.BadgeCriteria{Type: CriteriaSpecificAction, SpecificValue: "submit-evidence"},
	}}
	notifier := &fakeNotifier{}
	engine := NewEngine(store, notifier)

	res, err := engine.AwardPoints(context.Background(), state.UserID, Action{Type: ActionSubmitEvidence})
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if res.TotalAwarded != 50 || res.BadgePoints != 30 {
		t.Errorf("total/badge = %d/%d, want 50/30", res.TotalAwarded, res.BadgePoints)
	}
	if !store.state.HasBadge("first-evidence") {
		t.Error("badge not persisted on game state")
	}
	if len(notifier.badgeCalls) != 1 {
		t.Errorf("badge notifications = %d, want 1", len(notifier.badgeCalls))
	}
}

func TestBadgeIdempotence(t *testing.T) {
	state := freshState()
	store := &fakeStore{state: state}
	store.catalog = []models.BadgeDefinition{{
		Code:         "first-evidence",
		PointsReward: 30,
		Criteria:     models.BadgeCriteria{Type: CriteriaSpecificAction, SpecificValue: "submit-evidence"},
	}}
	engine := NewEngine(store, nil)

	if _, err := engine.AwardPoints(context.Background(), state.UserID, Action{Type: ActionSubmitEvidence}); err != nil {
		t.Fatalf("first award failed: %v", err)
	}
	res, err := engine.AwardPoints(context.Background(), store.state.UserID, Action{Type: ActionSubmitEvidence})
	if err != nil {
		t.Fatalf("second award failed: %v", err)
	}
	if len(res.NewBadges) != 0 || res.BadgePoints != 0 {
		t.Errorf("second run re-awarded: badges=%v points=%d", res.NewBadges, res.BadgePoints)
	}
}

func TestLevelUpNotification(t *testing.T) {
	state := freshState()
	state.ImpactPoints = 95
	store := &fakeStore{state: state}
	notifier := &fakeNotifier{}
	engine := NewEngine(store, notifier)

	res, err := engine.AwardPoints(context.Background(), state.UserID, Action{Type: ActionSubmitEvidence})
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if !res.LeveledUp || res.Level != models.LevelAdvocate {
		t.Errorf("expected level-up to advocate, got %+v", res)
	}
	if len(notifier.levelCalls) != 1 || notifier.levelCalls[0] != models.LevelAdvocate {
		t.Errorf("level-up notification missing: %v", notifier.levelCalls)
	}
	if store.state.Level != models.LevelAdvocate {
		t.Errorf("persisted level = %s, want advocate", store.state.Level)
	}
}

func TestConflictSurfacesToCaller(t *testing.T) {
	store := &fakeStore{state: freshState(), saveErr: ErrConflict}
	engine := NewEngine(store, nil)

	_, err := engine.AwardPoints(context.Background(), store.state.UserID, Action{Type: ActionRateOfficial})
	if err != ErrConflict {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}

func TestMissingGameState(t *testing.T) {
	store := &fakeStore{state: freshState(), loadErr: ErrNotFound}
	engine := NewEngine(store, nil)

	_, err := engine.AwardPoints(context.Background(), primitive.NewObjectID(), Action{Type: ActionRateOfficial})
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRisksReportsBothCategories(t *testing.T) {
	last := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	state := freshState()
	state.Streaks.Civic = models.StreakState{Current: 3, Longest: 3, LastActivity: &last}
	state.Streaks.Learning = models.StreakState{Current: 5, Longest: 5, LastActivity: &last}
	store := &fakeStore{state: state}
	engine := NewEngine(store, nil)

	risks, err := engine.Risks(context.Background(), state.UserID, last.AddDate(0, 0, 1))
	if err != nil {
		t.Fatalf("risks failed: %v", err)
	}
	if len(risks) != 2 {
		t.Fatalf("expected 2 risk entries, got %d", len(risks))
	}
	if risks[0].Category != CategoryCivic || risks[0].AtRisk {
		t.Errorf("civic risk after one day: %+v", risks[0])
	}
	if risks[1].Category != CategoryLearning || !risks[1].AtRisk {
		t.Errorf("learning risk after one day: %+v", risks[1])
	}
}
