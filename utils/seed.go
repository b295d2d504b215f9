package utils

import (
	"context"
	"log"
	"time"

	"civichub/db"
	"civichub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func defaultBadges() []models.BadgeDefinition {
	return []models.BadgeDefinition{
		{Code: "first-voice", Name: "First Voice", Description: "Rate your first official", Icon: "megaphone", PointsReward: 10,
			Criteria: models.BadgeCriteria{Type: "specific_action", SpecificValue: "rate-official"}},
		{Code: "first-evidence", Name: "Fact Finder", Description: "Submit your first piece of evidence", Icon: "search", PointsReward: 10,
			Criteria: models.BadgeCriteria{Type: "specific_action", SpecificValue: "submit-evidence"}},
		{Code: "rater-10", Name: "Seasoned Rater", Description: "Rate 10 officials", Icon: "star", PointsReward: 50,
			Criteria: models.BadgeCriteria{Type: "rating_count", Threshold: 10}},
		{Code: "reviewer-5", Name: "Thoughtful Reviewer", Description: "Write 5 detailed reviews", Icon: "pen", PointsReward: 40,
			Criteria: models.BadgeCriteria{Type: "review_count", Threshold: 5}},
		{Code: "investigator-10", Name: "Investigator", Description: "Submit 10 pieces of evidence", Icon: "folder", PointsReward: 60,
			Criteria: models.BadgeCriteria{Type: "evidence_count", Threshold: 10}},
		{Code: "organizer", Name: "Organizer", Description: "Start 3 campaigns", Icon: "flag", PointsReward: 50,
			Criteria: models.BadgeCriteria{Type: "campaign_count", Threshold: 3}},
		{Code: "ally-20", Name: "Reliable Ally", Description: "Support 20 campaigns", Icon: "handshake", PointsReward: 40,
			Criteria: models.BadgeCriteria{Type: "campaign_support_count", Threshold: 20}},
		{Code: "scholar-5", Name: "Civic Scholar", Description: "Complete 5 learning modules", Icon: "book", PointsReward: 30,
			Criteria: models.BadgeCriteria{Type: "module_completion", Threshold: 5}},
		{Code: "elections-adept", Name: "Elections Adept", Description: "Finish every module in the elections category", Icon: "ballot", PointsReward: 60,
			Criteria: models.BadgeCriteria{Type: "category_completion", SpecificValue: "elections"}},
		{Code: "quiz-ace", Name: "Quiz Ace", Description: "Answer 8 quiz questions correctly in one attempt", Icon: "bolt", PointsReward: 30,
			Criteria: models.BadgeCriteria{Type: "quiz_score", Threshold: 8}},
		{Code: "community-favorite", Name: "Community Favorite", Description: "Get 10 upvotes on one of your ratings", Icon: "heart", PointsReward: 40,
			Criteria: models.BadgeCriteria{Type: "upvote_count", Threshold: 10}},
		{Code: "rising-advocate", Name: "Rising Advocate", Description: "Reach the advocate level", Icon: "arrow-up", PointsReward: 25,
			Criteria: models.BadgeCriteria{Type: "level_reached", SpecificValue: "advocate"}},
		{Code: "community-leader", Name: "Community Leader", Description: "Reach the leader level", Icon: "crown", PointsReward: 50,
			Criteria: models.BadgeCriteria{Type: "level_reached", SpecificValue: "leader"}},
	}
}

func defaultModules() []models.LearningModule {
	return []models.LearningModule{
		{Title: "How Local Government Works", Category: "local-government", Order: 1},
		{Title: "Reading a City Budget", Category: "local-government", Order: 2},
		{Title: "Attending a Council Meeting", Category: "local-government", Order: 3},
		{Title: "Registering to Vote", Category: "elections", Order: 1},
		{Title: "Understanding Your Ballot", Category: "elections", Order: 2},
		{Title: "Tracking Campaign Promises", Category: "accountability", Order: 1},
		{Title: "Evaluating Evidence and Sources", Category: "accountability", Order: 2},
	}
}

// SeedBadgeCatalog upserts the default badge catalog by code
func SeedBadgeCatalog() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := db.GetCollection(db.BadgesCollection)
	for _, badge := range defaultBadges() {
		update := bson.M{
			"$set": bson.M{
				"name":         badge.Name,
				"description":  badge.Description,
				"icon":         badge.Icon,
				"pointsReward": badge.PointsReward,
				"criteria":     badge.Criteria,
			},
			"$setOnInsert": bson.M{"createdAt": time.Now()},
		}
		_, err := coll.UpdateOne(ctx, bson.M{"code": badge.Code}, update, options.Update().SetUpsert(true))
		if err != nil {
			log.Printf("Failed to seed badge %s: %v", badge.Code, err)
		}
	}
	log.Printf("Badge catalog seeded (%d definitions)", len(defaultBadges()))
}

// SeedLearningModules upserts the default learning modules by title
func SeedLearningModules() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	coll := db.GetCollection(db.ModulesCollection)
	for _, m := range defaultModules() {
		update := bson.M{
			"$set":         bson.M{"category": m.Category, "order": m.Order},
			"$setOnInsert": bson.M{"createdAt": time.Now()},
		}
		_, err := coll.UpdateOne(ctx, bson.M{"title": m.Title}, update, options.Update().SetUpsert(true))
		if err != nil {
			log.Printf("Failed to seed module %s: %v", m.Title, err)
		}
	}
	log.Printf("Learning modules seeded (%d modules)", len(defaultModules()))
}
