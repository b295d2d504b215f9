package gamification

import "civichub/models"

// Level thresholds in cumulative impact points
const (
	advocateThreshold = 100
	leaderThreshold   = 500
)

// LevelFor maps cumulative points to a level
func LevelFor(points int) string {
	switch {
	case points >= leaderThreshold:
		return models.LevelLeader
	case points >= advocateThreshold:
		return models.LevelAdvocate
	default:
		return models.LevelCitizen
	}
}

// LevelRank orders levels citizen < advocate < leader. Unknown levels
// rank below citizen so comparisons against them fail closed.
func LevelRank(level string) int {
	switch level {
	case models.LevelCitizen:
		return 0
	case models.LevelAdvocate:
		return 1
	case models.LevelLeader:
		return 2
	default:
		return -1
	}
}

// Progress reports a user's level and how far they are toward the next
type Progress struct {
	CurrentLevel    string `json:"currentLevel"`
	NextLevel       string `json:"nextLevel"`
	ProgressPercent int    `json:"progressPercent"`
	PointsToNext    int    `json:"pointsToNext"`
}

// ProgressToNext computes progress toward the next level. Percent is
// floored. At the top level progress pins at 100 with NextLevel equal to
// the current level.
func ProgressToNext(points int) Progress {
	switch {
	case points >= leaderThreshold:
		return Progress{
			CurrentLevel:    models.LevelLeader,
			NextLevel:       models.LevelLeader,
			ProgressPercent: 100,
		}
	case points >= advocateThreshold:
		return Progress{
			CurrentLevel:    models.LevelAdvocate,
			NextLevel:       models.LevelLeader,
			ProgressPercent: (points - advocateThreshold) * 100 / (leaderThreshold - advocateThreshold),
			PointsToNext:    leaderThreshold - points,
		}
	default:
		return Progress{
			CurrentLevel:    models.LevelCitizen,
			NextLevel:       models.LevelAdvocate,
			ProgressPercent: points * 100 / advocateThreshold,
			PointsToNext:    advocateThreshold - points,
		}
	}
}

// UnlockedFeatures lists what a level opens up, included in level-up
// notifications
func UnlockedFeatures(level string) []string {
	switch level {
	case models.LevelAdvocate:
		return []string{"campaign-creation", "rating-point-bonus"}
	case models.LevelLeader:
		return []string{"global-point-bonus", "leader-spotlight"}
	default:
		return nil
	}
}
