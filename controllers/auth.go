package controllers

import (
	"log"
	"net/http"
	"time"

	"civichub/db"
	"civichub/models"
	"civichub/services"
	"civichub/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type signupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"displayName"`
}

type verifyEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup creates a user account plus its zeroed game state and sends a
// verification code
func Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := db.GetCollection(db.UsersCollection)
	count, err := users.CountDocuments(ctx, bson.M{"email": req.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing account"})
		return
	}
	if count > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "An account with this email already exists"})
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	displayName := req.DisplayName
	if displayName == "" {
		displayName = utils.ExtractNameFromEmail(req.Email)
	}

	now := time.Now()
	user := models.User{
		ID:               primitive.NewObjectID(),
		Email:            req.Email,
		PasswordHash:     hash,
		DisplayName:      displayName,
		Role:             models.RoleUser,
		VerificationCode: utils.GenerateRandomCode(6),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if _, err := users.InsertOne(ctx, user); err != nil {
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	if err := services.EnsureGameState(ctx, user.ID); err != nil {
		// account exists; the state gets created lazily on first award
		log.Printf("Error creating game state for %s: %v", user.ID.Hex(), err)
	}

	go func() {
		if err := utils.SendVerificationEmail(user.Email, user.VerificationCode); err != nil {
			log.Printf("Error sending verification email: %v", err)
		}
	}()

	c.JSON(http.StatusCreated, gin.H{"message": "Account created. Check your email for a verification code.", "userId": user.ID.Hex()})
}

// VerifyEmail confirms the signup verification code
func VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	users := db.GetCollection(db.UsersCollection)
	res, err := users.UpdateOne(ctx,
		bson.M{"email": req.Email, "verificationCode": req.Code},
		bson.M{"$set": bson.M{"verified": true, "updatedAt": time.Now()}, "$unset": bson.M{"verificationCode": ""}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify email"})
		return
	}
	if res.MatchedCount == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid verification code"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email verified"})
}

// Login checks credentials and issues a JWT
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	var user models.User
	err := db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{"email": req.Email}).Decode(&user)
	if err == mongo.ErrNoDocuments || (err == nil && !utils.CheckPasswordHash(req.Password, user.PasswordHash)) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log in"})
		return
	}
	if !user.Verified {
		c.JSON(http.StatusForbidden, gin.H{"error": "Email not verified"})
		return
	}

	token, err := utils.GenerateJWTToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user": gin.H{
			"id":          user.ID.Hex(),
			"email":       user.Email,
			"displayName": user.DisplayName,
			"role":        user.Role,
		},
	})
}
