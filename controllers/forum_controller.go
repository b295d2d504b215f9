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

type postRequest struct {
	Title string   `json:"title" binding:"required"`
	Body  string   `json:"body" binding:"required"`
	Tags  []string `json:"tags"`
}

// CreatePost publishes a forum post and awards points
func CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	now := time.Now()
	post := models.Post{
		ID:        primitive.NewObjectID(),
		AuthorID:  userID,
		Title:     req.Title,
		Body:      req.Body,
		Tags:      req.Tags,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := db.GetCollection(db.PostsCollection).InsertOne(ctx, post); err != nil {
		log.Printf("Error saving post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	award := services.TryAwardForAction(ctx, userID, gamification.ActionCreatePost)
	c.JSON(http.StatusCreated, gin.H{"post": post, "award": award})
}

// ListPosts returns forum posts newest first, optionally filtered by tag
func ListPosts(c *gin.Context) {
	ctx, cancel := requestContext()
	defer cancel()

	filter := bson.M{}
	if tag := c.Query("tag"); tag != "" {
		filter["tags"] = tag
	}

	limit := limitQuery(c, 20, 100)
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := db.GetCollection(db.PostsCollection).Find(ctx, filter, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch posts"})
		return
	}
	defer cursor.Close(ctx)

	var posts []models.Post
	if err := cursor.All(ctx, &posts); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "total": len(posts)})
}

type commentRequest struct {
	Body string `json:"body" binding:"required"`
}

// CreateComment replies to a forum post and awards points
func CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	if err := db.GetCollection(db.PostsCollection).FindOne(ctx, bson.M{"_id": postID}).Err(); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
		return
	}

	comment := models.Comment{
		ID:        primitive.NewObjectID(),
		PostID:    postID,
		AuthorID:  userID,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	if _, err := db.GetCollection(db.CommentsCollection).InsertOne(ctx, comment); err != nil {
		log.Printf("Error saving comment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create comment"})
		return
	}

	award := services.TryAwardForAction(ctx, userID, gamification.ActionCreateComment)
	c.JSON(http.StatusCreated, gin.H{"comment": comment, "award": award})
}

// ListComments returns the comments on a post, oldest first
func ListComments(c *gin.Context) {
	postID, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := requestContext()
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := db.GetCollection(db.CommentsCollection).Find(ctx, bson.M{"postId": postID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch comments"})
		return
	}
	defer cursor.Close(ctx)

	var comments []models.Comment
	if err := cursor.All(ctx, &comments); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode comments"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments, "total": len(comments)})
}
