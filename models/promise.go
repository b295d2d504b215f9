package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Promise lifecycle states, derived from the evidence balance
const (
	PromiseStatusKept       = "kept"
	PromiseStatusBroken     = "broken"
	PromiseStatusInProgress = "in-progress"
	PromiseStatusUnverified = "unverified"
)

// Evidence stances
const (
	EvidenceSupporting = "supporting"
	EvidenceOpposing   = "opposing"
)

// Promise is a campaign promise attached to an official. Status is derived
// from the attached evidence and recomputed on every evidence mutation.
type Promise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	OfficialID  primitive.ObjectID `bson:"officialId" json:"officialId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Category    string             `bson:"category,omitempty" json:"category,omitempty"`
	Status      string             `bson:"status" json:"status"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Evidence is a sourced supporting or opposing entry on a promise
type Evidence struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	PromiseID   primitive.ObjectID `bson:"promiseId" json:"promiseId"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	SourceURL   string             `bson:"sourceUrl,omitempty" json:"sourceUrl,omitempty"`
	Status      string             `bson:"status" json:"status"` // supporting or opposing
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
