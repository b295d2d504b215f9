package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Official represents an elected official users can rate
type Official struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name          string             `bson:"name" json:"name"`
	Office        string             `bson:"office" json:"office"` // e.g. "Mayor", "City Council"
	Party         string             `bson:"party,omitempty" json:"party,omitempty"`
	District      string             `bson:"district,omitempty" json:"district,omitempty"`
	Bio           string             `bson:"bio,omitempty" json:"bio,omitempty"`
	PhotoURL      string             `bson:"photoUrl,omitempty" json:"photoUrl,omitempty"`
	AverageRating AverageRating      `bson:"averageRating" json:"averageRating"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// AverageRating is the aggregate over an official's approved ratings.
// All fields are zero when the official has no approved ratings.
type AverageRating struct {
	Integrity      float64 `bson:"integrity" json:"integrity"`
	Responsiveness float64 `bson:"responsiveness" json:"responsiveness"`
	Effectiveness  float64 `bson:"effectiveness" json:"effectiveness"`
	Transparency   float64 `bson:"transparency" json:"transparency"`
	Overall        float64 `bson:"overall" json:"overall"`
	TotalRatings   int     `bson:"totalRatings" json:"totalRatings"`
}
