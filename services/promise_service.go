package services

import (
	"context"

	"civichub/db"
	"civichub/gamification"
	"civichub/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Promise status thresholds: a verdict needs a strict majority and at
// least verdictMinimum entries on the winning side.
const verdictMinimum = 3

// InferStatus derives a promise's lifecycle status from its evidence.
// Rules apply in order: no evidence is unverified; a supporting majority
// of at least three is kept; an opposing majority of at least three is
// broken; anything else with evidence is in-progress.
func InferStatus(evidence []models.Evidence) string {
	if len(evidence) == 0 {
		return models.PromiseStatusUnverified
	}

	var supporting, opposing int
	for _, e := range evidence {
		switch e.Status {
		case models.EvidenceSupporting:
			supporting++
		case models.EvidenceOpposing:
			opposing++
		}
	}

	switch {
	case supporting > opposing && supporting >= verdictMinimum:
		return models.PromiseStatusKept
	case opposing > supporting && opposing >= verdictMinimum:
		return models.PromiseStatusBroken
	default:
		return models.PromiseStatusInProgress
	}
}

// RecomputePromiseStatus reloads a promise's evidence, infers the status
// and persists it when it changed, notifying watchers of the transition.
// Returns the (possibly unchanged) current status.
func RecomputePromiseStatus(ctx context.Context, promiseID primitive.ObjectID) (string, error) {
	var promise models.Promise
	err := db.GetCollection(db.PromisesCollection).FindOne(ctx, bson.M{"_id": promiseID}).Decode(&promise)
	if err == mongo.ErrNoDocuments {
		return "", gamification.ErrNotFound
	}
	if err != nil {
		return "", err
	}

	evidence, err := gameStore.LoadPromiseEvidence(ctx, promiseID)
	if err != nil {
		return "", err
	}

	newStatus := InferStatus(evidence)
	if newStatus == promise.Status {
		return newStatus, nil
	}

	if err := gameStore.SavePromiseStatus(ctx, promiseID, newStatus); err != nil {
		return "", err
	}
	if notifier != nil {
		notifier.NotifyPromiseStatusChanged(promiseID.Hex(), promise.Status, newStatus)
	}
	return newStatus, nil
}
