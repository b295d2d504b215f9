package gamification

import (
	"math"

	"civichub/models"
)

// ActionType identifies a point-earning user action
type ActionType string

const (
	ActionRateOfficial    ActionType = "rate-official"
	ActionSubmitEvidence  ActionType = "submit-evidence"
	ActionCreateCampaign  ActionType = "create-campaign"
	ActionSupportCampaign ActionType = "support-campaign"
	ActionCompleteModule  ActionType = "complete-module"
	ActionCompleteQuiz    ActionType = "complete-quiz"
	ActionCreatePost      ActionType = "create-post"
	ActionCreateComment   ActionType = "create-comment"
)

// defaultBasePoints is the base award per action before multipliers
var defaultBasePoints = map[ActionType]int{
	ActionRateOfficial:    15,
	ActionSubmitEvidence:  20,
	ActionCreateCampaign:  25,
	ActionSupportCampaign: 10,
	ActionCompleteModule:  10,
	ActionCompleteQuiz:    10,
	ActionCreatePost:      5,
	ActionCreateComment:   2,
}

// advocateBonusActions are the only actions the advocate-level bonus
// applies to; leaders get their bonus on every action
var advocateBonusActions = map[ActionType]bool{
	ActionRateOfficial:   true,
	ActionSubmitEvidence: true,
}

// BasePoints returns the default base award for the action, 0 for an
// unknown action type
func (a ActionType) BasePoints() int {
	return defaultBasePoints[a]
}

// StreakCategory maps an action to the streak it feeds: learning actions
// feed the learning streak, everything else feeds the civic streak
func (a ActionType) StreakCategory() Category {
	if a == ActionCompleteModule || a == ActionCompleteQuiz {
		return CategoryLearning
	}
	return CategoryCivic
}

// ComputeMultiplier derives the point multiplier from the streak feeding
// this action and the user's level. Streak tiers are exclusive, only the
// highest applies, and the level bonus stacks multiplicatively on top.
// A corrupted streak state degrades to no bonus instead of failing the
// award, so the result is always at least 1.0.
func ComputeMultiplier(st models.StreakState, cat Category, level string, action ActionType) float64 {
	m := 1.0

	cur := st.Current
	if cur < 0 {
		cur = 0
	}

	switch cat {
	case CategoryLearning:
		if cur >= 7 {
			m *= 1.5
		} else if cur >= 3 {
			m *= 1.2
		}
	default:
		if cur >= 4 {
			m *= 1.5
		} else if cur >= 2 {
			m *= 1.2
		}
	}

	switch level {
	case models.LevelAdvocate:
		if advocateBonusActions[action] {
			m *= 1.1
		}
	case models.LevelLeader:
		m *= 1.2
	}

	if m < 1.0 {
		m = 1.0
	}
	return m
}

// RoundHalfUp rounds to the nearest integer with .5 rounding up
func RoundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

// AwardedPoints applies a multiplier to base points with half-up rounding
func AwardedPoints(base int, multiplier float64) int {
	return RoundHalfUp(float64(base) * multiplier)
}
