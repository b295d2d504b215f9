package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Moderation states for a rating
const (
	RatingStatusPending  = "pending"
	RatingStatusApproved = "approved"
	RatingStatusRejected = "rejected"
)

// Rating is one user's score of an official across four dimensions.
// Each dimension is an integer in [1,5]. Overall is derived (the mean of
// the four dimensions rounded to one decimal) and is recomputed before
// every save, never accepted from the client.
type Rating struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id,omitempty"`
	OfficialID     primitive.ObjectID   `bson:"officialId" json:"officialId"`
	UserID         primitive.ObjectID   `bson:"userId" json:"userId"`
	Integrity      int                  `bson:"integrity" json:"integrity"`
	Responsiveness int                  `bson:"responsiveness" json:"responsiveness"`
	Effectiveness  int                  `bson:"effectiveness" json:"effectiveness"`
	Transparency   int                  `bson:"transparency" json:"transparency"`
	Overall        float64              `bson:"overall" json:"overall"`
	Comment        string               `bson:"comment,omitempty" json:"comment,omitempty"`
	Upvotes        int                  `bson:"upvotes" json:"upvotes"`
	UpvoterIDs     []primitive.ObjectID `bson:"upvoterIds,omitempty" json:"-"`
	Status         string               `bson:"status" json:"status"`
	CreatedAt      time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time            `bson:"updatedAt" json:"updatedAt"`
}
