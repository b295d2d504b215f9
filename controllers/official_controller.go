package controllers

import (
	"log"
	"net/http"

	"civichub/db"
	"civichub/internal/cache"
	"civichub/models"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListOfficials returns officials sorted by overall average rating
func ListOfficials(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{}
	if office := c.Query("office"); office != "" {
		filter["office"] = office
	}
	if district := c.Query("district"); district != "" {
		filter["district"] = district
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "averageRating.overall", Value: -1}}).
		SetLimit(int64(limitQuery(c, 50, 200)))
	cursor, err := db.GetCollection(db.OfficialsCollection).Find(ctx, filter, opts)
	if err != nil {
		log.Printf("Failed to fetch officials: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch officials"})
		return
	}
	defer cursor.Close(ctx)

	var officials []models.Official
	if err := cursor.All(ctx, &officials); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode officials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"officials": officials, "total": len(officials)})
}

// GetOfficial returns one official's profile, served from cache when the
// aggregate has not changed since the last recompute
func GetOfficial(c *gin.Context) {
	officialID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var cached models.Official
	if cache.GetOfficial(officialID.Hex(), &cached) {
		c.JSON(http.StatusOK, gin.H{"official": cached})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var official models.Official
	err := db.GetCollection(db.OfficialsCollection).FindOne(ctx, bson.M{"_id": officialID}).Decode(&official)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Official not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch official"})
		return
	}

	cache.SetOfficial(officialID.Hex(), official)
	c.JSON(http.StatusOK, gin.H{"official": official})
}
