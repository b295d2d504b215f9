package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User roles used by the RBAC layer
const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User defines a user account
type User struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Email            string             `bson:"email" json:"email"`
	PasswordHash     string             `bson:"passwordHash" json:"-"`
	DisplayName      string             `bson:"displayName" json:"displayName"`
	Bio              string             `bson:"bio,omitempty" json:"bio,omitempty"`
	AvatarURL        string             `bson:"avatarUrl,omitempty" json:"avatarUrl,omitempty"`
	Role             string             `bson:"role" json:"role"`
	Verified         bool               `bson:"verified" json:"verified"`
	VerificationCode string             `bson:"verificationCode,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt        time.Time          `bson:"updatedAt" json:"updatedAt"`
}
