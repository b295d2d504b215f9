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

type promiseRequest struct {
	OfficialID  string `json:"officialId" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

type evidenceRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	SourceURL   string `json:"sourceUrl"`
	Status      string `json:"status" binding:"required"` // supporting or opposing
}

// CreatePromise records a promise made by an official, starting
// unverified until evidence arrives
func CreatePromise(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}

	var req promiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	officialID, err := primitive.ObjectIDFromHex(req.OfficialID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid official ID"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := db.GetCollection(db.OfficialsCollection).FindOne(ctx, bson.M{"_id": officialID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Official not found"})
		return
	}

	now := time.Now()
	promise := models.Promise{
		ID:          primitive.NewObjectID(),
		OfficialID:  officialID,
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Status:      models.PromiseStatusUnverified,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := db.GetCollection(db.PromisesCollection).InsertOne(ctx, promise); err != nil {
		log.Printf("Error saving promise: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save promise"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"promise": promise})
}

// ListOfficialPromises returns an official's promises with their derived
// status
func ListOfficialPromises(c *gin.Context) {
	officialID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection(db.PromisesCollection).Find(ctx, bson.M{"officialId": officialID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch promises"})
		return
	}
	defer cursor.Close(ctx)

	var promises []models.Promise
	if err := cursor.All(ctx, &promises); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode promises"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"promises": promises, "total": len(promises)})
}

// SubmitEvidence attaches a supporting or opposing entry to a promise,
// reinfers the promise status and awards points
func SubmitEvidence(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	promiseID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req evidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.Status != models.EvidenceSupporting && req.Status != models.EvidenceOpposing {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Evidence status must be supporting or opposing"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := db.GetCollection(db.PromisesCollection).FindOne(ctx, bson.M{"_id": promiseID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promise not found"})
		return
	}

	evidence := models.Evidence{
		ID:          primitive.NewObjectID(),
		PromiseID:   promiseID,
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		SourceURL:   req.SourceURL,
		Status:      req.Status,
		CreatedAt:   time.Now(),
	}

	if _, err := db.GetCollection(db.EvidenceCollection).InsertOne(ctx, evidence); err != nil {
		log.Printf("Error saving evidence: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save evidence"})
		return
	}

	// evidence is persisted; status inference and points come after and
	// never undo the submission
	status, err := services.RecomputePromiseStatus(ctx, promiseID)
	if err != nil {
		log.Printf("Error recomputing status for promise %s: %v", promiseID.Hex(), err)
	}
	award := services.TryAwardForAction(ctx, userID, gamification.ActionSubmitEvidence)

	c.JSON(http.StatusCreated, gin.H{"evidence": evidence, "promiseStatus": status, "award": award})
}

// ListPromiseEvidence returns the evidence attached to a promise
func ListPromiseEvidence(c *gin.Context) {
	promiseID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := db.GetCollection(db.EvidenceCollection).Find(ctx, bson.M{"promiseId": promiseID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch evidence"})
		return
	}
	defer cursor.Close(ctx)

	var list []models.Evidence
	if err := cursor.All(ctx, &list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode evidence"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"evidence": list, "total": len(list)})
}
