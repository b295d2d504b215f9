package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Campaign is a crowd-supported initiative created by a user
type Campaign struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CreatorID      primitive.ObjectID `bson:"creatorId" json:"creatorId"`
	Title          string             `bson:"title" json:"title"`
	Description    string             `bson:"description,omitempty" json:"description,omitempty"`
	Category       string             `bson:"category,omitempty" json:"category,omitempty"`
	SupporterGoal  int                `bson:"supporterGoal,omitempty" json:"supporterGoal,omitempty"`
	SupporterCount int                `bson:"supporterCount" json:"supporterCount"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CampaignSupport records one user supporting one campaign
type CampaignSupport struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CampaignID primitive.ObjectID `bson:"campaignId" json:"campaignId"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
