package gamification

import (
	"testing"

	"civichub/models"
)

func TestCivicStreakMultiplierTiers(t *testing.T) {
	tests := []struct {
		current int
		want    float64
	}{
		{0, 1.0},
		{1, 1.0},
		{2, 1.2},
		{3, 1.2},
		{4, 1.5},
		{12, 1.5},
	}
	for _, tt := range tests {
		st := models.StreakState{Current: tt.current}
		got := ComputeMultiplier(st, CategoryCivic, models.LevelCitizen, ActionSubmitEvidence)
		if got != tt.want {
			t.Errorf("civic streak %d: multiplier = %v, want %v", tt.current, got, tt.want)
		}
	}
}

func TestLearningStreakMultiplierTiers(t *testing.T) {
	tests := []struct {
		current int
		want    float64
	}{
		{2, 1.0},
		{3, 1.2},
		{6, 1.2},
		{7, 1.5},
	}
	for _, tt := range tests {
		st := models.StreakState{Current: tt.current}
		got := ComputeMultiplier(st, CategoryLearning, models.LevelCitizen, ActionCompleteModule)
		if got != tt.want {
			t.Errorf("learning streak %d: multiplier = %v, want %v", tt.current, got, tt.want)
		}
	}
}

func TestLevelBonus(t *testing.T) {
	st := models.StreakState{Current: 0}

	// advocate bonus is restricted to rating and evidence actions
	if got := ComputeMultiplier(st, CategoryCivic, models.LevelAdvocate, ActionRateOfficial); got != 1.1 {
		t.Errorf("advocate rate-official: %v, want 1.1", got)
	}
	if got := ComputeMultiplier(st, CategoryCivic, models.LevelAdvocate, ActionCreatePost); got != 1.0 {
		t.Errorf("advocate create-post: %v, want 1.0", got)
	}

	// leader bonus applies everywhere
	if got := ComputeMultiplier(st, CategoryCivic, models.LevelLeader, ActionCreatePost); got != 1.2 {
		t.Errorf("leader create-post: %v, want 1.2", got)
	}
}

func TestMultiplierStacksLevelOnStreak(t *testing.T) {
	st := models.StreakState{Current: 4}
	got := ComputeMultiplier(st, CategoryCivic, models.LevelLeader, ActionSubmitEvidence)
	want := 1.5 * 1.2
	if got != want {
		t.Errorf("stacked multiplier = %v, want %v", got, want)
	}
}

func TestMultiplierNeverBelowOne(t *testing.T) {
	st := models.StreakState{Current: -7} // corrupted state degrades, not fails
	got := ComputeMultiplier(st, CategoryCivic, "", ActionSubmitEvidence)
	if got != 1.0 {
		t.Errorf("corrupted streak state: multiplier = %v, want 1.0", got)
	}
}

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in   float64
		want int
	}{
		{2.4, 2},
		{2.5, 3},
		{2.6, 3},
		{16.5, 17},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundHalfUp(tt.in); got != tt.want {
			t.Errorf("RoundHalfUp(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestAwardedPoints(t *testing.T) {
	// 15 * 1.1 = 16.5 rounds up to 17
	if got := AwardedPoints(15, 1.1); got != 17 {
		t.Errorf("AwardedPoints(15, 1.1) = %d, want 17", got)
	}
	if got := AwardedPoints(20, 1.0); got != 20 {
		t.Errorf("AwardedPoints(20, 1.0) = %d, want 20", got)
	}
	if got := AwardedPoints(20, 1.5); got != 30 {
		t.Errorf("AwardedPoints(20, 1.5) = %d, want 30", got)
	}
}
