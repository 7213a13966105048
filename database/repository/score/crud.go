package scoreRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"playarena/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetByBookingID returns the score record for a booking.
func (repo *MongoScoreRepo) GetByBookingID(ctx context.Context, bookingID string) (*models.ScoreRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var record models.ScoreRecord
	if err := repo.coll.FindOne(ctx, bson.M{"bookingId": bookingID}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching scores for booking %s: %w", bookingID, err)
	}
	return &record, nil
}

// IncrementCheckin adds +1 to the player's entry, creating the record
// and/or the entry on first touch.
func (repo *MongoScoreRepo) IncrementCheckin(ctx context.Context, bookingID string, gameType models.GameType, attuid string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return repo.addScore(ctx, bookingID, gameType, attuid, 1)
}

// addScore increments an existing entry in place, or pushes a new entry,
// upserting the record itself on first write for the booking.
func (repo *MongoScoreRepo) addScore(ctx context.Context, bookingID string, gameType models.GameType, attuid string, delta int) error {
	now := time.Now()

	// Step 1: increment in place if the player already has an entry.
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"bookingId": bookingID, "scores.attuid": attuid},
		bson.M{
			"$inc": bson.M{"scores.$.score": delta},
			"$set": bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to increment score for %s: %w", attuid, err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	// Step 2: no entry yet; push one, creating the record if needed.
	_, err = repo.coll.UpdateOne(ctx,
		bson.M{"bookingId": bookingID},
		bson.M{
			"$push": bson.M{"scores": models.PlayerScore{ATTUID: attuid, Score: delta}},
			"$set":  bson.M{"updatedAt": now},
			"$setOnInsert": bson.M{
				"id":        uuid.New().String(),
				"bookingId": bookingID,
				"gameType":  gameType,
				"final":     false,
				"createdAt": now,
			},
		},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to record score for %s: %w", attuid, err)
	}
	return nil
}

// SubmitFinal claims the one-shot final submission and folds the entries
// onto any provisional check-in scores in one document write, so the
// submission either lands completely or not at all.
func (repo *MongoScoreRepo) SubmitFinal(ctx context.Context, bookingID string, gameType models.GameType, entries []models.PlayerScore) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// The filter excludes already-final records, so a duplicate submission
	// either matches nothing (record exists, final) or trips the unique
	// bookingId index on the upsert insert path.
	res, err := repo.coll.UpdateOne(ctx,
		bson.M{"bookingId": bookingID, "final": bson.M{"$ne": true}},
		finalClaimPipeline(bookingID, gameType, entries, time.Now()),
		options.Update().SetUpsert(true),
	)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrFinalExists
		}
		return fmt.Errorf("failed to submit final scores for booking %s: %w", bookingID, err)
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrFinalExists
	}
	return nil
}

// finalClaimPipeline builds the single $set stage that marks the record
// final and merges the submitted entries onto whatever check-in scores
// exist: entries for known players are added in place, the rest are
// appended. One stage on one document keeps the claim and the score
// mutations atomic.
func finalClaimPipeline(bookingID string, gameType models.GameType, entries []models.PlayerScore, now time.Time) mongo.Pipeline {
	submitted := make(bson.A, 0, len(entries))
	for _, e := range entries {
		submitted = append(submitted, bson.M{"attuid": e.ATTUID, "score": e.Score})
	}

	existing := bson.M{"$ifNull": bson.A{"$scores", bson.A{}}}
	existingIDs := bson.M{"$map": bson.M{"input": existing, "as": "s", "in": "$$s.attuid"}}

	merged := bson.M{"$concatArrays": bson.A{
		bson.M{"$map": bson.M{
			"input": existing,
			"as":    "s",
			"in": bson.M{
				"attuid": "$$s.attuid",
				"score": bson.M{"$add": bson.A{
					"$$s.score",
					bson.M{"$ifNull": bson.A{
						bson.M{"$first": bson.M{"$map": bson.M{
							"input": bson.M{"$filter": bson.M{
								"input": submitted,
								"as":    "e",
								"cond":  bson.M{"$eq": bson.A{"$$e.attuid", "$$s.attuid"}},
							}},
							"as": "e",
							"in": "$$e.score",
						}}},
						0,
					}},
				}},
			},
		}},
		bson.M{"$filter": bson.M{
			"input": submitted,
			"as":    "e",
			"cond":  bson.M{"$not": bson.A{bson.M{"$in": bson.A{"$$e.attuid", existingIDs}}}},
		}},
	}}

	return mongo.Pipeline{bson.D{{Key: "$set", Value: bson.M{
		"id":        bson.M{"$ifNull": bson.A{"$id", uuid.New().String()}},
		"bookingId": bookingID,
		"gameType":  bson.M{"$ifNull": bson.A{"$gameType", string(gameType)}},
		"final":     true,
		"scores":    merged,
		"createdAt": bson.M{"$ifNull": bson.A{"$createdAt", now}},
		"updatedAt": now,
	}}}}
}
