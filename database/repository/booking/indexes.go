package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the booking collection indexes. The unique
// compound index on the slot key is the durable backstop against double
// booking should two creates somehow both pass the lease stage.
func (repo *MongoBookingRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "gameType", Value: 1},
				{Key: "slot.date", Value: 1},
				{Key: "slot.startTime", Value: 1},
			},
			Options: options.Index().SetUnique(true).SetName("uniq_slot_key"),
		},
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_booking_id"),
		},
		{
			Keys:    bson.D{{Key: "players.attuid", Value: 1}},
			Options: options.Index().SetName("by_player"),
		},
		{
			Keys: bson.D{
				{Key: "bookingType", Value: 1},
				{Key: "slot.date", Value: 1},
			},
			Options: options.Index().SetName("by_type_date"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create booking indexes: %w", err)
	}
	return nil
}
