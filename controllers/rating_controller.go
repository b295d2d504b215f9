package controllers

import (
	"log"
	"net/http"
	"time"

	"civichub/db"
	"civichub/gamification"
	"civichub/models"
	"civichub/rating"
	"civichub/services"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ratingRequest struct {
	OfficialID     string `json:"officialId" binding:"required"`
	Integrity      int    `json:"integrity" binding:"required"`
	Responsiveness int    `json:"responsiveness" binding:"required"`
	Effectiveness  int    `json:"effectiveness" binding:"required"`
	Transparency   int    `json:"transparency" binding:"required"`
	Comment        string `json:"comment"`
}

func (r *ratingRequest) validScores() bool {
	return rating.ValidScore(r.Integrity) && rating.ValidScore(r.Responsiveness) &&
		rating.ValidScore(r.Effectiveness) && rating.ValidScore(r.Transparency)
}

// CreateRating stores a new rating for an official, recomputes the
// official's averages and awards points. One rating per user per
// official.
func CreateRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if !req.validScores() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dimension scores must be between 1 and 5"})
		return
	}

	officialID, err := primitive.ObjectIDFromHex(req.OfficialID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid official ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	officials := db.GetCollection(db.OfficialsCollection)
	if err := officials.FindOne(ctx, bson.M{"_id": officialID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Official not found"})
		return
	}

	ratings := db.GetCollection(db.RatingsCollection)
	existing, err := ratings.CountDocuments(ctx, bson.M{"officialId": officialID, "userId": userID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing rating"})
		return
	}
	if existing > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already rated this official"})
		return
	}

	now := time.Now()
	r := models.Rating{
		ID:             primitive.NewObjectID(),
		OfficialID:     officialID,
		UserID:         userID,
		Integrity:      req.Integrity,
		Responsiveness: req.Responsiveness,
		Effectiveness:  req.Effectiveness,
		Transparency:   req.Transparency,
		Comment:        req.Comment,
		Status:         models.RatingStatusPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	services.RecomputeRatingOverall(&r)

	if _, err := ratings.InsertOne(ctx, r); err != nil {
		log.Printf("Error saving rating: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save rating"})
		return
	}

	// the rating is persisted; averages and points are layered on top
	if _, err := services.RecomputeOfficialAverages(ctx, officialID); err != nil {
		log.Printf("Error recomputing averages for official %s: %v", officialID.Hex(), err)
	}
	award := services.TryAwardForAction(ctx, userID, gamification.ActionRateOfficial)

	c.JSON(http.StatusCreated, gin.H{"rating": r, "award": award})
}

// UpdateRating changes one of the caller's ratings. Edits reset the
// moderation status to pending and the overall is rederived before save.
func UpdateRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ratingID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req ratingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if !req.validScores() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Dimension scores must be between 1 and 5"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	ratings := db.GetCollection(db.RatingsCollection)
	var existing models.Rating
	err := ratings.FindOne(ctx, bson.M{"_id": ratingID, "userId": userID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rating not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rating"})
		return
	}

	existing.Integrity = req.Integrity
	existing.Responsiveness = req.Responsiveness
	existing.Effectiveness = req.Effectiveness
	existing.Transparency = req.Transparency
	existing.Comment = req.Comment
	existing.Status = models.RatingStatusPending
	existing.UpdatedAt = time.Now()
	services.RecomputeRatingOverall(&existing)

	update := bson.M{"$set": bson.M{
		"integrity":      existing.Integrity,
		"responsiveness": existing.Responsiveness,
		"effectiveness":  existing.Effectiveness,
		"transparency":   existing.Transparency,
		"comment":        existing.Comment,
		"overall":        existing.Overall,
		"status":         existing.Status,
		"updatedAt":      existing.UpdatedAt,
	}}
	if _, err := ratings.UpdateOne(ctx, bson.M{"_id": ratingID}, update); err != nil {
		log.Printf("Error updating rating: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rating"})
		return
	}

	if _, err := services.RecomputeOfficialAverages(ctx, existing.OfficialID); err != nil {
		log.Printf("Error recomputing averages for official %s: %v", existing.OfficialID.Hex(), err)
	}

	c.JSON(http.StatusOK, gin.H{"rating": existing})
}

// DeleteRating removes one of the caller's ratings and recomputes the
// official's averages
func DeleteRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ratingID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	ratings := db.GetCollection(db.RatingsCollection)
	var existing models.Rating
	err := ratings.FindOneAndDelete(ctx, bson.M{"_id": ratingID, "userId": userID}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Rating not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rating"})
		return
	}

	if _, err := services.RecomputeOfficialAverages(ctx, existing.OfficialID); err != nil {
		log.Printf("Error recomputing averages for official %s: %v", existing.OfficialID.Hex(), err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Rating deleted"})
}

// ListOfficialRatings returns the approved ratings for an official
func ListOfficialRatings(c *gin.Context) {
	officialID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "upvotes", Value: -1}, {Key: "createdAt", Value: -1}}).
		SetLimit(int64(limitQuery(c, 50, 200)))
	cursor, err := db.GetCollection(db.RatingsCollection).
		Find(ctx, bson.M{"officialId": officialID, "status": models.RatingStatusApproved}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch ratings"})
		return
	}
	defer cursor.Close(ctx)

	var list []models.Rating
	if err := cursor.All(ctx, &list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode ratings"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ratings": list, "total": len(list)})
}

// UpvoteRating adds the caller's upvote to someone else's rating, once
func UpvoteRating(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ratingID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	ratings := db.GetCollection(db.RatingsCollection)
	res := ratings.FindOneAndUpdate(ctx,
		bson.M{"_id": ratingID, "userId": bson.M{"$ne": userID}, "upvoterIds": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"upvoterIds": userID}, "$inc": bson.M{"upvotes": 1}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var updated models.Rating
	if err := res.Decode(&updated); err != nil {
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusConflict, gin.H{"error": "Rating not found, already upvoted, or your own"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upvote rating"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"upvotes": updated.Upvotes})
}
