package utils

import (
	"context"
	"fmt"
	"time"

	"civichub/db"
	"civichub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// GetUserByEmail fetches a user account by email
func GetUserByEmail(email string) (*models.User, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	err := db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, fmt.Errorf("no user found for email: %s", email)
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserIDFromEmail resolves an email to the account's ObjectID
func GetUserIDFromEmail(email string) (primitive.ObjectID, error) {
	user, err := GetUserByEmail(email)
	if err != nil {
		return primitive.NilObjectID, err
	}
	return user.ID, nil
}
