package controllers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"civichub/gamification"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// requestContext is the per-handler database deadline
func requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

// currentUserID pulls the authenticated user's ID set by the auth
// middleware; writes the 401 itself when missing
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	v, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return primitive.NilObjectID, false
	}
	id, ok := v.(primitive.ObjectID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// objectIDParam parses an ObjectID path parameter; writes the 400 itself
// on a malformed ID
func objectIDParam(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return primitive.NilObjectID, false
	}
	return id, true
}

// statusForError maps engine errors onto HTTP statuses
func statusForError(err error) int {
	switch {
	case errors.Is(err, gamification.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, gamification.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// limitQuery parses a bounded ?limit= query parameter
func limitQuery(c *gin.Context, def, max int) int {
	limit := def
	if s := c.Query("limit"); s != "" {
		if parsed, err := strconv.Atoi(s); err == nil && parsed > 0 && parsed <= max {
			limit = parsed
		}
	}
	return limit
}
