package controllers

import (
	"errors"
	"net/http"
	"time"

	"civichub/db"
	"civichub/gamification"
	"civichub/models"
	"civichub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetProfile returns the caller's account together with their game state
func GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var user models.User
	err := db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{"_id": userID}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch profile"})
		return
	}

	state, err := services.GetGameState(ctx, userID)
	if errors.Is(err, gamification.ErrNotFound) {
		// accounts created before gamification launched
		if err := services.EnsureGameState(ctx, userID); err == nil {
			state, err = services.GetGameState(ctx, userID)
		}
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch game state"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":     user,
		"state":    state,
		"progress": gamification.ProgressToNext(state.ImpactPoints),
	})
}

type profileUpdateRequest struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
	AvatarURL   string `json:"avatarUrl"`
}

// UpdateProfile edits the caller's display fields
func UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req profileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	set := bson.M{"updatedAt": time.Now()}
	if req.DisplayName != "" {
		set["displayName"] = req.DisplayName
	}
	if req.Bio != "" {
		set["bio"] = req.Bio
	}
	if req.AvatarURL != "" {
		set["avatarUrl"] = req.AvatarURL
	}

	result, err := db.GetCollection(db.UsersCollection).UpdateOne(ctx, bson.M{"_id": userID}, bson.M{"$set": set})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated"})
}
