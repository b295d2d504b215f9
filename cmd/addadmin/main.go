package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"civichub/config"
	"civichub/db"
	"civichub/models"
	"civichub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Parse command line flags
	email := flag.String("email", "", "Account email (required)")
	password := flag.String("password", "", "Account password (required for new accounts)")
	name := flag.String("name", "", "Display name")
	role := flag.String("role", models.RoleAdmin, "Role: 'admin' or 'moderator'")
	configPath := flag.String("config", "config/config.prod.yml", "Path to config file")
	flag.Parse()

	if *email == "" {
		fmt.Println("Error: email is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *role != models.RoleAdmin && *role != models.RoleModerator {
		fmt.Println("Error: role must be 'admin' or 'moderator'")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := db.ConnectMongoDB(cfg.Database.URI); err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.MongoClient.Disconnect(context.Background())

	dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	users := db.GetCollection(db.UsersCollection)

	// Promote an existing account when one matches the email
	var existing models.User
	err = users.FindOne(dbCtx, bson.M{"email": *email}).Decode(&existing)
	if err == nil {
		_, err = users.UpdateOne(dbCtx, bson.M{"_id": existing.ID},
			bson.M{"$set": bson.M{"role": *role, "updatedAt": time.Now()}})
		if err != nil {
			log.Fatalf("Failed to update role: %v", err)
		}
		fmt.Printf("Promoted %s to %s\n", *email, *role)
		return
	}
	if err != mongo.ErrNoDocuments {
		log.Fatalf("Database error: %v", err)
	}

	if *password == "" {
		log.Fatalf("No account with email %s; pass -password to create one", *email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	displayName := *name
	if displayName == "" {
		displayName = utils.ExtractNameFromEmail(*email)
	}

	now := time.Now()
	user := models.User{
		Email:        *email,
		PasswordHash: string(hashedPassword),
		DisplayName:  displayName,
		Role:         *role,
		Verified:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	result, err := users.InsertOne(dbCtx, user)
	if err != nil {
		log.Fatalf("Failed to create account: %v", err)
	}

	fmt.Printf("Account created\n")
	fmt.Printf("   ID: %s\n", result.InsertedID)
	fmt.Printf("   Email: %s\n", *email)
	fmt.Printf("   Role: %s\n", *role)
}
