package websocket

import (
	"context"
	"log"
	"time"

	"civichub/db"
	"civichub/models"
	"civichub/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Notifier delivers gamification notifications over the WebSocket hub,
// with a best-effort email on level-up. Every method is fire-and-forget:
// a delivery failure is logged and never reaches the triggering action.
type Notifier struct{}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) NotifyBadgeEarned(userID string, badgeCodes []string) {
	SendToUser(userID, models.GamificationEvent{
		Type:       "badge_earned",
		UserID:     userID,
		BadgeCodes: badgeCodes,
		Timestamp:  time.Now(),
	})
}

func (n *Notifier) NotifyLevelUp(userID string, newLevel string, unlockedFeatures []string) {
	SendToUser(userID, models.GamificationEvent{
		Type:      "level_up",
		UserID:    userID,
		Level:     newLevel,
		Timestamp: time.Now(),
	})

	go func() {
		email, err := emailForUser(userID)
		if err != nil {
			log.Printf("Level-up email lookup for %s failed: %v", userID, err)
			return
		}
		if err := utils.SendLevelUpEmail(email, newLevel); err != nil {
			log.Printf("Level-up email to %s failed: %v", email, err)
		}
	}()
}

func (n *Notifier) NotifyPromiseStatusChanged(promiseID, oldStatus, newStatus string) {
	BroadcastEvent(models.GamificationEvent{
		Type:      "promise_status_changed",
		PromiseID: promiseID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		Timestamp: time.Now(),
	})
}

func emailForUser(userID string) (string, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var user models.User
	if err := db.GetCollection(db.UsersCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return "", err
	}
	return user.Email, nil
}
