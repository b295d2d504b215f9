package controllers

import (
	"log"
	"net/http"
	"time"

	"civichub/db"
	"civichub/gamification"
	"civichub/models"
	"civichub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type campaignRequest struct {
	Title         string `json:"title" binding:"required"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	SupporterGoal int    `json:"supporterGoal"`
}

// CreateCampaign starts a crowd-supported campaign and awards points
func CreateCampaign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req campaignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	now := time.Now()
	campaign := models.Campaign{
		ID:            primitive.NewObjectID(),
		CreatorID:     userID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		SupporterGoal: req.SupporterGoal,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if _, err := db.GetCollection(db.CampaignsCollection).InsertOne(ctx, campaign); err != nil {
		log.Printf("Error saving campaign: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save campaign"})
		return
	}

	award := services.TryAwardForAction(ctx, userID, gamification.ActionCreateCampaign)
	c.JSON(http.StatusCreated, gin.H{"campaign": campaign, "award": award})
}

// ListCampaigns returns campaigns sorted by supporter count
func ListCampaigns(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "supporterCount", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(int64(limitQuery(c, 50, 200)))
	cursor, err := db.GetCollection(db.CampaignsCollection).Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch campaigns"})
		return
	}
	defer cursor.Close(ctx)

	var campaigns []models.Campaign
	if err := cursor.All(ctx, &campaigns); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode campaigns"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"campaigns": campaigns, "total": len(campaigns)})
}

// SupportCampaign records the caller's support, once per campaign, and
// awards points
func SupportCampaign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	campaignID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	campaigns := db.GetCollection(db.CampaignsCollection)
	if err := campaigns.FindOne(ctx, bson.M{"_id": campaignID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Campaign not found"})
		return
	}

	supports := db.GetCollection(db.CampaignSupportsCollection)
	existing, err := supports.CountDocuments(ctx, bson.M{"campaignId": campaignID, "userId": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing support"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You already support this campaign"})
		return
	}

	support := models.CampaignSupport{
		ID:         primitive.NewObjectID(),
		CampaignID: campaignID,
		UserID:     userID,
		CreatedAt:  time.Now(),
	}
	if _, err := supports.InsertOne(ctx, support); err != nil {
		log.Printf("Error saving campaign support: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record support"})
		return
	}

	if _, err := campaigns.UpdateOne(ctx, bson.M{"_id": campaignID},
		bson.M{"$inc": bson.M{"supporterCount": 1}, "$set": bson.M{"updatedAt": time.Now()}}); err != nil {
		log.Printf("Error bumping supporter count: %v", err)
	}

	award := services.TryAwardForAction(ctx, userID, gamification.ActionSupportCampaign)
	c.JSON(http.StatusCreated, gin.H{"message": "Support recorded", "award": award})
}
