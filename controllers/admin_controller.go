package controllers

import (
	"log"
	"net/http"
	"time"

	"civichub/db"
	"civichub/internal/cache"
	"civichub/models"
	"civichub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type officialRequest struct {
	Name     string `json:"name" binding:"required"`
	Office   string `json:"office" binding:"required"`
	Party    string `json:"party"`
	District string `json:"district"`
	Bio      string `json:"bio"`
	PhotoURL string `json:"photoUrl"`
}

// CreateOfficial adds an official to the directory. Admin only.
func CreateOfficial(c *gin.Context) {
	var req officialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	now := time.Now()
	official := models.Official{
		ID:        primitive.NewObjectID(),
		Name:      req.Name,
		Office:    req.Office,
		Party:     req.Party,
		District:  req.District,
		Bio:       req.Bio,
		PhotoURL:  req.PhotoURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.GetCollection(db.OfficialsCollection).InsertOne(ctx, official); err != nil {
		log.Printf("Error saving official: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create official"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"official": official})
}

// UpdateOfficial edits directory fields on an official. The aggregate
// rating block is never writable here.
func UpdateOfficial(c *gin.Context) {
	officialID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req officialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	update := bson.M{"$set": bson.M{
		"name":      req.Name,
		"office":    req.Office,
		"party":     req.Party,
		"district":  req.District,
		"bio":       req.Bio,
		"photoUrl":  req.PhotoURL,
		"updatedAt": time.Now(),
	}}
	result, err := db.GetCollection(db.OfficialsCollection).UpdateOne(ctx, bson.M{"_id": officialID}, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update official"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Official not found"})
		return
	}

	cache.InvalidateOfficial(officialID.Hex())
	c.JSON(http.StatusOK, gin.H{"message": "Official updated"})
}

type moderateRequest struct {
	Status string `json:"status" binding:"required"`
}

// ModerateRating approves or rejects a pending rating and refreshes the
// official's aggregates. Moderator only.
func ModerateRating(c *gin.Context) {
	ratingID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req moderateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.Status != models.RatingStatusApproved && req.Status != models.RatingStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be approved or rejected"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var rating models.Rating
	err := db.GetCollection(db.RatingsCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": ratingID},
		bson.M{"$set": bson.M{"status": req.Status, "updatedAt": time.Now()}},
	).Decode(&rating)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rating not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to moderate rating"})
		return
	}

	if _, err := services.RecomputeOfficialAverages(ctx, rating.OfficialID); err != nil {
		log.Printf("Error recomputing averages for official %s: %v", rating.OfficialID.Hex(), err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating " + req.Status})
}

// ListPendingRatings returns ratings awaiting moderation, oldest first
func ListPendingRatings(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	cursor, err := db.GetCollection(db.RatingsCollection).Find(ctx, bson.M{"status": models.RatingStatusPending})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch pending ratings"})
		return
	}
	defer cursor.Close(ctx)

	var ratings []models.Rating
	if err := cursor.All(ctx, &ratings); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ratings": ratings, "total": len(ratings)})
}

type badgeRequest struct {
	Code         string               `json:"code" binding:"required"`
	Name         string               `json:"name" binding:"required"`
	Description  string               `json:"description"`
	Icon         string               `json:"icon"`
	PointsReward int                  `json:"pointsReward" binding:"min=0"`
	Criteria     models.BadgeCriteria `json:"criteria" binding:"required"`
}

// CreateBadge adds a badge definition to the catalog. Admin only.
func CreateBadge(c *gin.Context) {
	var req badgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	badges := db.GetCollection(db.BadgesCollection)
	existing, err := badges.CountDocuments(ctx, bson.M{"code": req.Code})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check badge code"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "Badge code already exists"})
		return
	}

	badge := models.BadgeDefinition{
		ID:           primitive.NewObjectID(),
		Code:         req.Code,
		Name:         req.Name,
		Description:  req.Description,
		Icon:         req.Icon,
		PointsReward: req.PointsReward,
		Criteria:     req.Criteria,
		CreatedAt:    time.Now(),
	}
	if _, err := badges.InsertOne(ctx, badge); err != nil {
		log.Printf("Error saving badge: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create badge"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"badge": badge})
}

type moduleRequest struct {
	Title    string `json:"title" binding:"required"`
	Category string `json:"category" binding:"required"`
	Summary  string `json:"summary"`
	Order    int    `json:"order"`
}

// CreateModule adds a learning module. Admin only.
func CreateModule(c *gin.Context) {
	var req moduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	module := models.LearningModule{
		ID:        primitive.NewObjectID(),
		Title:     req.Title,
		Category:  req.Category,
		Summary:   req.Summary,
		Order:     req.Order,
		CreatedAt: time.Now(),
	}
	if _, err := db.GetCollection(db.ModulesCollection).InsertOne(ctx, module); err != nil {
		log.Printf("Error saving module: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create module"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"module": module})
}
