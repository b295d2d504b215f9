package rating

import (
	"testing"

	"civichub/models"
)

func scored(integrity, responsiveness, effectiveness, transparency int) models.Rating {
	r := models.Rating{
		Integrity:      integrity,
		Responsiveness: responsiveness,
		Effectiveness:  effectiveness,
		Transparency:   transparency,
	}
	r.Overall = Overall(r)
	return r
}

func TestOverall(t *testing.T) {
	tests := []struct {
		scores [4]int
		want   float64
	}{
		{[4]int{4, 4, 4, 4}, 4.0},
		{[4]int{2, 2, 2, 2}, 2.0},
		{[4]int{5, 4, 4, 4}, 4.3}, // 4.25 rounds half up
		{[4]int{1, 2, 3, 4}, 2.5},
	}
	for _, tt := range tests {
		got := Overall(scored(tt.scores[0], tt.scores[1], tt.scores[2], tt.scores[3]))
		if got != tt.want {
			t.Errorf("Overall(%v) = %v, want %v", tt.scores, got, tt.want)
		}
	}
}

func TestAggregateRoundTrip(t *testing.T) {
	ratings := []models.Rating{
		scored(4, 4, 4, 4),
		scored(2, 2, 2, 2),
	}
	if ratings[0].Overall != 4.0 || ratings[1].Overall != 2.0 {
		t.Fatalf("per-rating overalls = %v, %v", ratings[0].Overall, ratings[1].Overall)
	}

	agg := Aggregate(ratings)
	for name, got := range map[string]float64{
		"integrity":      agg.Integrity,
		"responsiveness": agg.Responsiveness,
		"effectiveness":  agg.Effectiveness,
		"transparency":   agg.Transparency,
		"overall":        agg.Overall,
	} {
		if got != 3.0 {
			t.Errorf("average %s = %v, want 3.0", name, got)
		}
	}
	if agg.TotalRatings != 2 {
		t.Errorf("totalRatings = %d, want 2", agg.TotalRatings)
	}
}

func TestAggregateEmpty(t *testing.T) {
	agg := Aggregate(nil)
	if agg != (models.AverageRating{}) {
		t.Errorf("empty aggregate should be all zero, got %+v", agg)
	}
}

func TestAggregateRounding(t *testing.T) {
	ratings := []models.Rating{
		scored(5, 5, 5, 5),
		scored(4, 4, 4, 4),
		scored(4, 4, 4, 4),
	}
	agg := Aggregate(ratings)
	// 13/3 = 4.333... rounds to 4.3
	if agg.Integrity != 4.3 {
		t.Errorf("integrity = %v, want 4.3", agg.Integrity)
	}
}

func TestValidScore(t *testing.T) {
	for _, bad := range []int{0, -1, 6, 100} {
		if ValidScore(bad) {
			t.Errorf("score %d should be invalid", bad)
		}
	}
	for s := 1; s <= 5; s++ {
		if !ValidScore(s) {
			t.Errorf("score %d should be valid", s)
		}
	}
}
