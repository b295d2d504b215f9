package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// LearningModule is one unit of civic-education content
type LearningModule struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Title     string             `bson:"title" json:"title"`
	Category  string             `bson:"category" json:"category"` // e.g. "local-government", "elections"
	Summary   string             `bson:"summary,omitempty" json:"summary,omitempty"`
	Order     int                `bson:"order" json:"order"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// ModuleCompletion records a user finishing a module. Category is
// denormalized from the module so completion counts can be taken
// without a join.
type ModuleCompletion struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	ModuleID    primitive.ObjectID `bson:"moduleId" json:"moduleId"`
	ModuleTitle string             `bson:"moduleTitle" json:"moduleTitle"`
	Category    string             `bson:"category" json:"category"`
	CompletedAt time.Time          `bson:"completedAt" json:"completedAt"`
}

// QuizAttempt records one completed quiz run for a module
type QuizAttempt struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID         primitive.ObjectID `bson:"userId" json:"userId"`
	ModuleID       primitive.ObjectID `bson:"moduleId" json:"moduleId"`
	CorrectCount   int                `bson:"correctCount" json:"correctCount"`
	QuestionCount  int                `bson:"questionCount" json:"questionCount"`
	CompletedAt    time.Time          `bson:"completedAt" json:"completedAt"`
}
