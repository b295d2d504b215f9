package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User levels, ordered citizen < advocate < leader
const (
	LevelCitizen  = "citizen"
	LevelAdvocate = "advocate"
	LevelLeader   = "leader"
)

// StreakState tracks consecutive activity for one streak category.
// Longest never drops below Current.
type StreakState struct {
	Current      int        `bson:"current" json:"current"`
	Longest      int        `bson:"longest" json:"longest"`
	LastActivity *time.Time `bson:"lastActivity,omitempty" json:"lastActivity,omitempty"`
}

// StreakSet holds both per-category streaks for a user
type StreakSet struct {
	Civic    StreakState `bson:"civic" json:"civic"`
	Learning StreakState `bson:"learning" json:"learning"`
}

// UserGameState is the per-user gamification record: cumulative impact
// points, derived level, earned badges and activity streaks. Version is
// bumped on every save and used for optimistic concurrency control.
type UserGameState struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID       primitive.ObjectID `bson:"userId" json:"userId"`
	ImpactPoints int                `bson:"impactPoints" json:"impactPoints"`
	Level        string             `bson:"level" json:"level"`
	Badges       []string           `bson:"badges" json:"badges"`
	Streaks      StreakSet          `bson:"streaks" json:"streaks"`
	Version      int64              `bson:"version" json:"-"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasBadge reports whether the user already owns the badge code
func (s *UserGameState) HasBadge(code string) bool {
	for _, b := range s.Badges {
		if b == code {
			return true
		}
	}
	return false
}

// BadgeCriteria describes when a badge is earned. Threshold and
// SpecificValue are interpreted per criteria type.
type BadgeCriteria struct {
	Type          string `bson:"type" json:"type"`
	Threshold     int    `bson:"threshold,omitempty" json:"threshold,omitempty"`
	SpecificValue string `bson:"specificValue,omitempty" json:"specificValue,omitempty"`
}

// BadgeDefinition is one entry in the badge catalog, read-only to the
// gamification engine
type BadgeDefinition struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code         string             `bson:"code" json:"code"`
	Name         string             `bson:"name" json:"name"`
	Description  string             `bson:"description,omitempty" json:"description,omitempty"`
	Icon         string             `bson:"icon,omitempty" json:"icon,omitempty"`
	PointsReward int                `bson:"pointsReward" json:"pointsReward"`
	Criteria     BadgeCriteria      `bson:"criteria" json:"criteria"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
}

// GamificationEvent is broadcast to WebSocket clients when something
// noteworthy happens to a user's game state
type GamificationEvent struct {
	Type       string    `json:"type"` // "badge_earned", "level_up", "points_awarded", "promise_status_changed"
	UserID     string    `json:"userId,omitempty"`
	BadgeCodes []string  `json:"badgeCodes,omitempty"`
	Points     int       `json:"points,omitempty"`
	NewScore   int       `json:"newScore,omitempty"`
	Level      string    `json:"level,omitempty"`
	PromiseID  string    `json:"promiseId,omitempty"`
	OldStatus  string    `json:"oldStatus,omitempty"`
	NewStatus  string    `json:"newStatus,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
