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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ListModules returns learning modules, optionally filtered by category
func ListModules(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{}
	if category := c.Query("category"); category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "category", Value: 1}, {Key: "order", Value: 1}})
	cursor, err := db.GetCollection(db.ModulesCollection).Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch modules"})
		return
	}
	defer cursor.Close(ctx)

	var modules []models.LearningModule
	if err := cursor.All(ctx, &modules); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode modules"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"modules": modules, "total": len(modules)})
}

// CompleteModule records a module completion, feeds the learning streak
// and awards points. Completing the same module twice is a no-op for the
// completion record but still counts as learning activity.
func CompleteModule(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	moduleID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var module models.LearningModule
	err := db.GetCollection(db.ModulesCollection).FindOne(ctx, bson.M{"_id": moduleID}).Decode(&module)
	if err == mongo.ErrNoDocuments {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch module"})
		return
	}

	completions := db.GetCollection(db.ModuleCompletionsCollection)
	existing, err := completions.CountDocuments(ctx, bson.M{"userId": userID, "moduleId": moduleID})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check completion"})
		return
	}

	if existing == 0 {
		completion := models.ModuleCompletion{
			ID:          primitive.NewObjectID(),
			UserID:      userID,
			ModuleID:    moduleID,
			ModuleTitle: module.Title,
			Category:    module.Category,
			CompletedAt: time.Now(),
		}
		if _, err := completions.InsertOne(ctx, completion); err != nil {
			log.Printf("Error saving module completion: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record completion"})
			return
		}
	}

	award := services.TryAwardForAction(ctx, userID, gamification.ActionCompleteModule)
	c.JSON(http.StatusOK, gin.H{"message": "Module completed", "award": award, "firstCompletion": existing == 0})
}

type quizAttemptRequest struct {
	CorrectCount  int `json:"correctCount" binding:"min=0"`
	QuestionCount int `json:"questionCount" binding:"required,min=1"`
}

// SubmitQuizAttempt records a completed quiz run for a module and awards
// points
func SubmitQuizAttempt(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	moduleID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req quizAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	if req.CorrectCount > req.QuestionCount {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Correct count cannot exceed question count"})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := db.GetCollection(db.ModulesCollection).FindOne(ctx, bson.M{"_id": moduleID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Module not found"})
		return
	}

	attempt := models.QuizAttempt{
		ID:            primitive.NewObjectID(),
		UserID:        userID,
		ModuleID:      moduleID,
		CorrectCount:  req.CorrectCount,
		QuestionCount: req.QuestionCount,
		CompletedAt:   time.Now(),
	}
	if _, err := db.GetCollection(db.QuizAttemptsCollection).InsertOne(ctx, attempt); err != nil {
		log.Printf("Error saving quiz attempt: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attempt"})
		return
	}

	award := services.TryAwardForAction(ctx, userID, gamification.ActionCompleteQuiz)
	c.JSON(http.StatusCreated, gin.H{"attempt": attempt, "award": award})
}
