// Package rating holds the aggregation math for official ratings: the
// per-rating overall score and the official-wide dimension averages.
package rating

import (
	"math"

	"civichub/models"
)

// Round1 rounds to one decimal place with .5 rounding up
func Round1(x float64) float64 {
	return math.Floor(x*10+0.5) / 10
}

// Overall derives a rating's overall score: the mean of its four
// dimension scores rounded to one decimal. It is recomputed before every
// save so stored ratings can never carry a stale overall.
func Overall(r models.Rating) float64 {
	sum := r.Integrity + r.Responsiveness + r.Effectiveness + r.Transparency
	return Round1(float64(sum) / 4)
}

// Aggregate computes an official's averages over the given ratings: the
// mean of each dimension and of the overall score, each rounded to one
// decimal. Zero ratings yields the all-zero aggregate.
func Aggregate(ratings []models.Rating) models.AverageRating {
	if len(ratings) == 0 {
		return models.AverageRating{}
	}

	var integrity, responsiveness, effectiveness, transparency, overall float64
	for _, r := range ratings {
		integrity += float64(r.Integrity)
		responsiveness += float64(r.Responsiveness)
		effectiveness += float64(r.Effectiveness)
		transparency += float64(r.Transparency)
		overall += r.Overall
	}

	n := float64(len(ratings))
	return models.AverageRating{
		Integrity:      Round1(integrity / n),
		Responsiveness: Round1(responsiveness / n),
		Effectiveness:  Round1(effectiveness / n),
		Transparency:   Round1(transparency / n),
		Overall:        Round1(overall / n),
		TotalRatings:   len(ratings),
	}
}

// ValidScore reports whether a dimension score is in the accepted 1..5
// range
func ValidScore(score int) bool {
	return score >= 1 && score <= 5
}
