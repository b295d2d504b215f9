package gamification

import (
	"testing"

	"civichub/models"
)

func TestLevelBoundaries(t *testing.T) {
	tests := []struct {
		points int
		want   string
	}{
		{0, models.LevelCitizen},
		{99, models.LevelCitizen},
		{100, models.LevelAdvocate},
		{499, models.LevelAdvocate},
		{500, models.LevelLeader},
		{10000, models.LevelLeader},
	}
	for _, tt := range tests {
		if got := LevelFor(tt.points); got != tt.want {
			t.Errorf("LevelFor(%d) = %s, want %s", tt.points, got, tt.want)
		}
	}
}

func TestProgressToNext(t *testing.T) {
	p := ProgressToNext(100)
	if p.CurrentLevel != models.LevelAdvocate || p.ProgressPercent != 0 {
		t.Errorf("at 100 points: %+v", p)
	}

	p = ProgressToNext(499)
	if p.ProgressPercent != 99 || p.PointsToNext != 1 {
		t.Errorf("at 499 points: %+v", p)
	}

	p = ProgressToNext(50)
	if p.CurrentLevel != models.LevelCitizen || p.NextLevel != models.LevelAdvocate || p.ProgressPercent != 50 {
		t.Errorf("at 50 points: %+v", p)
	}

	// top level pins at 100 with no next level beyond itself
	p = ProgressToNext(800)
	if p.CurrentLevel != models.LevelLeader || p.NextLevel != models.LevelLeader || p.ProgressPercent != 100 {
		t.Errorf("at 800 points: %+v", p)
	}
}

func TestLevelRank(t *testing.T) {
	if LevelRank(models.LevelCitizen) >= LevelRank(models.LevelAdvocate) {
		t.Error("citizen should rank below advocate")
	}
	if LevelRank(models.LevelAdvocate) >= LevelRank(models.LevelLeader) {
		t.Error("advocate should rank below leader")
	}
	if LevelRank("superhero") != -1 {
		t.Error("unknown level should rank below everything")
	}
}
