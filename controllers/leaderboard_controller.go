package controllers

import (
	"net/http"

	"civichub/db"
	"civichub/internal/cache"
	"civichub/models"
	"civichub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// LeaderboardEntry is one ranked row in the impact-point leaderboard
type LeaderboardEntry struct {
	Rank         int      `json:"rank"`
	UserID       string   `json:"userId"`
	Name         string   `json:"name"`
	ImpactPoints int      `json:"impactPoints"`
	Level        string   `json:"level"`
	Badges       []string `json:"badges"`
	CurrentUser  bool     `json:"currentUser"`
}

// GetLeaderboard returns the top users by cumulative impact points. The
// ranked rows are cached briefly in Redis; the CurrentUser flag is
// stamped per request after the cache read.
func GetLeaderboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	limit := limitQuery(c, 25, 100)

	var entries []LeaderboardEntry
	if !cache.GetLeaderboard(limit, &entries) {
		var err error
		entries, err = buildLeaderboard(c, limit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch leaderboard data"})
			return
		}
		cache.SetLeaderboard(limit, entries)
	}

	for i := range entries {
		entries[i].CurrentUser = entries[i].UserID == userID.Hex()
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries, "total": len(entries)})
}

func buildLeaderboard(c *gin.Context, limit int) ([]LeaderboardEntry, error) {
	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "impactPoints", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := db.GetCollection(db.GameStatesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var states []models.UserGameState
	if err := cursor.All(ctx, &states); err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, 0, len(states))
	for _, s := range states {
		ids = append(ids, s.UserID)
	}

	names := map[primitive.ObjectID]string{}
	if len(ids) > 0 {
		userCursor, err := db.GetCollection(db.UsersCollection).Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
		if err != nil {
			return nil, err
		}
		defer userCursor.Close(ctx)

		var users []models.User
		if err := userCursor.All(ctx, &users); err != nil {
			return nil, err
		}
		for _, u := range users {
			name := u.DisplayName
			if name == "" {
				name = utils.ExtractNameFromEmail(u.Email)
			}
			names[u.ID] = name
		}
	}

	entries := make([]LeaderboardEntry, 0, len(states))
	for i, s := range states {
		entries = append(entries, LeaderboardEntry{
			Rank:         i + 1,
			UserID:       s.UserID.Hex(),
			Name:         names[s.UserID],
			ImpactPoints: s.ImpactPoints,
			Level:        s.Level,
			Badges:       s.Badges,
		})
	}
	return entries, nil
}
