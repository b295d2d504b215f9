package services

import (
	"context"
	"testing"

	"civichub/gamification"
	"civichub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memStore is an in-memory Store for exercising the service layer
// without a database. Badge lookups return empty results so awards run
// against an empty catalog.
type memStore struct {
	states       map[primitive.ObjectID]*models.UserGameState
	ensures      int
	saveConflict int // fail this many saves with ErrConflict before succeeding
}

func newMemStore() *memStore {
	return &memStore{states: make(map[primitive.ObjectID]*models.UserGameState)}
}

func (m *memStore) LoadUserGameState(ctx context.Context, userID primitive.ObjectID) (*models.UserGameState, error) {
	state, ok := m.states[userID]
	if !ok {
		return nil, gamification.ErrNotFound
	}
	cp := *state
	return &cp, nil
}

func (m *memStore) SaveUserGameState(ctx context.Context, state *models.UserGameState) error {
	if m.saveConflict > 0 {
		m.saveConflict--
		return gamification.ErrConflict
	}
	m.states[state.UserID] = state
	return nil
}

func (m *memStore) EnsureUserGameState(ctx context.Context, userID primitive.ObjectID) error {
	m.ensures++
	if _, ok := m.states[userID]; ok {
		return nil
	}
	m.states[userID] = &models.UserGameState{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Level:  models.LevelCitizen,
		Badges: []string{},
	}
	return nil
}

func (m *memStore) LoadBadgeCatalog(ctx context.Context) ([]models.BadgeDefinition, error) {
	return nil, nil
}

func (m *memStore) CountUserRecords(ctx context.Context, userID primitive.ObjectID, record string) (int64, error) {
	return 0, nil
}

func (m *memStore) HasCompletedModule(ctx context.Context, userID primitive.ObjectID, name string) (bool, error) {
	return false, nil
}

func (m *memStore) CategoryCompletion(ctx context.Context, userID primitive.ObjectID, category string) (int64, int64, error) {
	return 0, 0, nil
}

func (m *memStore) BestQuizScore(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (m *memStore) TopRatingUpvotes(ctx context.Context, userID primitive.ObjectID) (int64, error) {
	return 0, nil
}

func (m *memStore) LoadOfficialRatings(ctx context.Context, officialID primitive.ObjectID) ([]models.Rating, error) {
	return nil, nil
}

func (m *memStore) SaveOfficialAverages(ctx context.Context, officialID primitive.ObjectID, averages models.AverageRating) error {
	return nil
}

func (m *memStore) LoadPromiseEvidence(ctx context.Context, promiseID primitive.ObjectID) ([]models.Evidence, error) {
	return nil, nil
}

func (m *memStore) SavePromiseStatus(ctx context.Context, promiseID primitive.ObjectID, status string) error {
	return nil
}

func useStore(t *testing.T, store Store) {
	t.Helper()
	prevStore, prevEngine, prevNotifier := gameStore, gameEngine, notifier
	gameStore = store
	notifier = nil
	gameEngine = gamification.NewEngine(store, nil)
	t.Cleanup(func() {
		gameStore, gameEngine, notifier = prevStore, prevEngine, prevNotifier
	})
}

func TestAwardCreatesMissingGameState(t *testing.T) {
	store := newMemStore()
	useStore(t, store)
	userID := primitive.NewObjectID()

	// no signup-time state exists for this user
	res, err := AwardForAction(context.Background(), userID, gamification.Action{Type: gamification.ActionCreatePost})
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if res.ActionPoints != 5 {
		t.Errorf("points = %d, want 5", res.ActionPoints)
	}
	if store.ensures != 1 {
		t.Errorf("state creations = %d, want 1", store.ensures)
	}
	state, ok := store.states[userID]
	if !ok {
		t.Fatal("game state not created")
	}
	if state.ImpactPoints != 5 {
		t.Errorf("persisted points = %d, want 5", state.ImpactPoints)
	}
}

func TestAwardCreatesStateOnlyOnce(t *testing.T) {
	store := newMemStore()
	useStore(t, store)
	userID := primitive.NewObjectID()

	if _, err := AwardForAction(context.Background(), userID, gamification.Action{Type: gamification.ActionCreatePost}); err != nil {
		t.Fatalf("first award failed: %v", err)
	}
	if _, err := AwardForAction(context.Background(), userID, gamification.Action{Type: gamification.ActionCreateComment}); err != nil {
		t.Fatalf("second award failed: %v", err)
	}
	if store.ensures != 1 {
		t.Errorf("state creations = %d, want 1", store.ensures)
	}
	if got := store.states[userID].ImpactPoints; got != 7 {
		t.Errorf("points = %d, want 7", got)
	}
}

func TestAwardRetriesOnConflict(t *testing.T) {
	store := newMemStore()
	userID := primitive.NewObjectID()
	store.states[userID] = &models.UserGameState{UserID: userID, Level: models.LevelCitizen}
	store.saveConflict = awardRetries - 1
	useStore(t, store)

	res, err := AwardForAction(context.Background(), userID, gamification.Action{Type: gamification.ActionRateOfficial})
	if err != nil {
		t.Fatalf("award failed after retries: %v", err)
	}
	if res == nil || res.ActionPoints == 0 {
		t.Errorf("expected points awarded on the final attempt, got %+v", res)
	}
}

func TestAwardGivesUpAfterRepeatedConflicts(t *testing.T) {
	store := newMemStore()
	userID := primitive.NewObjectID()
	store.states[userID] = &models.UserGameState{UserID: userID, Level: models.LevelCitizen}
	store.saveConflict = awardRetries
	useStore(t, store)

	_, err := AwardForAction(context.Background(), userID, gamification.Action{Type: gamification.ActionRateOfficial})
	if err != gamification.ErrConflict {
		t.Errorf("expected ErrConflict, got %v", err)
	}
}
