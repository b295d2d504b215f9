package gamification

import (
	"time"

	"civichub/models"
)

// Category identifies which streak an action feeds
type Category string

const (
	CategoryCivic    Category = "civic"
	CategoryLearning Category = "learning"
)

// Continuity windows, in whole days since the previous activity.
// Learning streaks run on a daily cadence and continue on a gap of
// exactly one day. Civic streaks run on a weekly cadence and accept a
// gap of 5 to 9 days. A streak counts as broken once the idle time
// reaches the break threshold.
const (
	dailyBreakAfterDays  = 2
	weeklyMinGapDays     = 5
	weeklyMaxGapDays     = 9
	weeklyBreakAfterDays = 10
)

// UpdateStreak applies one activity at the given time and returns the new
// streak state plus whether a new longest-streak record was set. A repeat
// activity on the same day leaves the counters untouched but refreshes
// LastActivity to the newest timestamp; this policy applies to both
// categories.
func UpdateStreak(st models.StreakState, cat Category, at time.Time) (models.StreakState, bool) {
	prevLongest := st.Longest

	if st.LastActivity == nil {
		st.Current = 1
	} else {
		gap := daysBetween(*st.LastActivity, at)
		switch {
		case gap == 0:
			// same-day repeat: counters unchanged
		case continues(cat, gap):
			st.Current++
		default:
			st.Current = 1
		}
	}

	if st.Current > st.Longest {
		st.Longest = st.Current
	}
	t := at
	st.LastActivity = &t
	return st, st.Longest > prevLongest
}

// continues reports whether a gap of whole days keeps the streak alive
func continues(cat Category, gap int) bool {
	if cat == CategoryLearning {
		return gap == 1
	}
	return gap >= weeklyMinGapDays && gap <= weeklyMaxGapDays
}

// daysBetween is the whole-day gap between two timestamps, floored.
// Out-of-order timestamps clamp to zero so clock skew cannot produce a
// negative gap.
func daysBetween(from, to time.Time) int {
	d := to.Sub(from)
	if d < 0 {
		return 0
	}
	return int(d.Hours() / 24)
}

// StreakRisk is the read-only break-risk report for one streak category
type StreakRisk struct {
	Category       Category `json:"category"`
	Current        int      `json:"current"`
	DaysSinceLast  int      `json:"daysSinceLast"`
	DaysUntilBreak int      `json:"daysUntilBreak"`
	AtRisk         bool     `json:"atRisk"`
}

// RiskFor computes break risk for a streak without mutating it. A streak
// is at risk when one more idle day would break it.
func RiskFor(st models.StreakState, cat Category, now time.Time) StreakRisk {
	breakAfter := dailyBreakAfterDays
	if cat == CategoryCivic {
		breakAfter = weeklyBreakAfterDays
	}

	risk := StreakRisk{Category: cat, Current: st.Current}
	if st.LastActivity == nil || st.Current == 0 {
		return risk
	}

	risk.DaysSinceLast = daysBetween(*st.LastActivity, now)
	remaining := breakAfter - risk.DaysSinceLast
	if remaining < 0 {
		remaining = 0
	}
	risk.DaysUntilBreak = remaining
	risk.AtRisk = remaining <= 1
	return risk
}
