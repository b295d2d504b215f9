package controllers

import (
	"net/http"

	"civichub/db"
	"civichub/gamification"
	"civichub/models"
	"civichub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetMyGameState returns the caller's points, level, streaks and badges
// along with level progress and unlocked features
func GetMyGameState(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	state, err := services.GetGameState(ctx, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to fetch game state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":            state,
		"progress":         gamification.ProgressToNext(state.ImpactPoints),
		"unlockedFeatures": gamification.UnlockedFeatures(state.Level),
	})
}

// GetStreakRisks reports whether either streak is about to break
func GetStreakRisks(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	risks, err := services.StreakRisks(ctx, userID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": "Failed to compute streak risks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"risks": risks})
}

// ListBadges returns the full badge catalog
func ListBadges(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "code", Value: 1}})
	cursor, err := db.GetCollection(db.BadgesCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch badges"})
		return
	}
	defer cursor.Close(ctx)

	var badges []models.BadgeDefinition
	if err := cursor.All(ctx, &badges); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode badges"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"badges": badges, "total": len(badges)})
}
