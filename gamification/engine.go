package gamification

import (
	"context"
	"log"
	"time"

	"civichub/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Engine runs the point-award pipeline for one triggering action:
// multiplier from the pre-update streak, streak update, badge evaluation,
// level progression, then a single optimistic save of the game state.
// Notifications go out after the save and are best effort.
type Engine struct {
	store    Store
	badges   *BadgeEvaluator
	notifier Notifier
}

func NewEngine(store Store, notifier Notifier) *Engine {
	return &Engine{
		store:    store,
		badges:   NewBadgeEvaluator(store),
		notifier: notifier,
	}
}

// Action describes the triggering action. BasePoints of 0 means use the
// action type's default; a zero At means now.
type Action struct {
	Type       ActionType
	BasePoints int
	At         time.Time
}

// AwardResult reports everything one award changed
type AwardResult struct {
	ActionPoints    int                `json:"actionPoints"`
	BadgePoints     int                `json:"badgePoints"`
	TotalAwarded    int                `json:"totalAwarded"`
	Multiplier      float64            `json:"multiplier"`
	NewBadges       []string           `json:"newBadges,omitempty"`
	StreakCategory  Category           `json:"streakCategory"`
	Streak          models.StreakState `json:"streak"`
	NewStreakRecord bool               `json:"newStreakRecord"`
	PreviousLevel   string             `json:"previousLevel"`
	Level           string             `json:"level"`
	LeveledUp       bool               `json:"leveledUp"`
	ImpactPoints    int                `json:"impactPoints"`
}

// AwardPoints applies one action to the user's game state. It returns
// ErrNotFound when no game state exists and ErrConflict when the state
// changed underneath; the caller is expected to retry a bounded number
// of times. Badge evaluation failures never abort the award.
func (e *Engine) AwardPoints(ctx context.Context, userID primitive.ObjectID, action Action) (*AwardResult, error) {
	state, err := e.store.LoadUserGameState(ctx, userID)
	if err != nil {
		return nil, err
	}

	at := action.At
	if at.IsZero() {
		at = time.Now()
	}
	base := action.BasePoints
	if base == 0 {
		base = action.Type.BasePoints()
	}
	cat := action.Type.StreakCategory()

	var streak models.StreakState
	if cat == CategoryLearning {
		streak = state.Streaks.Learning
	} else {
		streak = state.Streaks.Civic
	}

	// multiplier reads the streak as it stood before this action
	mult := ComputeMultiplier(streak, cat, state.Level, action.Type)
	points := AwardedPoints(base, mult)

	updated, record := UpdateStreak(streak, cat, at)
	if cat == CategoryLearning {
		state.Streaks.Learning = updated
	} else {
		state.Streaks.Civic = updated
	}
	state.ImpactPoints += points

	res := &AwardResult{
		ActionPoints:    points,
		Multiplier:      mult,
		StreakCategory:  cat,
		Streak:          updated,
		NewStreakRecord: record,
		PreviousLevel:   state.Level,
	}

	// badge rewards stack on top of the action points
	awards, err := e.badges.Evaluate(ctx, userID, action.Type, state)
	if err != nil {
		log.Printf("badge evaluation for user %s failed: %v", userID.Hex(), err)
	}
	for _, a := range awards {
		state.Badges = append(state.Badges, a.Code)
		state.ImpactPoints += a.PointsReward
		res.BadgePoints += a.PointsReward
		res.NewBadges = append(res.NewBadges, a.Code)
	}

	state.Level = LevelFor(state.ImpactPoints)
	res.Level = state.Level
	res.LeveledUp = LevelRank(state.Level) > LevelRank(res.PreviousLevel)
	res.TotalAwarded = res.ActionPoints + res.BadgePoints
	res.ImpactPoints = state.ImpactPoints

	if err := e.store.SaveUserGameState(ctx, state); err != nil {
		return nil, err
	}

	e.dispatch(userID, res)
	return res, nil
}

// Risks reports break risk for both streak categories without mutating
// anything
func (e *Engine) Risks(ctx context.Context, userID primitive.ObjectID, now time.Time) ([]StreakRisk, error) {
	state, err := e.store.LoadUserGameState(ctx, userID)
	if err != nil {
		return nil, err
	}
	return []StreakRisk{
		RiskFor(state.Streaks.Civic, CategoryCivic, now),
		RiskFor(state.Streaks.Learning, CategoryLearning, now),
	}, nil
}

func (e *Engine) dispatch(userID primitive.ObjectID, res *AwardResult) {
	if e.notifier == nil {
		return
	}
	if len(res.NewBadges) > 0 {
		e.notifier.NotifyBadgeEarned(userID.Hex(), res.NewBadges)
	}
	if res.LeveledUp {
		e.notifier.NotifyLevelUp(userID.Hex(), res.Level, UnlockedFeatures(res.Level))
	}
}
