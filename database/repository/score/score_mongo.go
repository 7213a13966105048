package scoreRepo

import (
	"context"
	"fmt"
	"time"

	"playarena/database"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoScoreRepo implements ScoreRepository using MongoDB.
type MongoScoreRepo struct {
	coll *mongo.Collection
}

// NewMongoScoreRepo constructs a new instance of MongoScoreRepo.
func NewMongoScoreRepo() ScoreRepository {
	return &MongoScoreRepo{
		coll: database.Collection("game_scores"),
	}
}

// EnsureIndexes creates the score collection indexes. The unique bookingId
// index makes the single-record-per-booking invariant atomic.
func (repo *MongoScoreRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "bookingId", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_booking"),
		},
		{
			Keys:    bson.D{{Key: "gameType", Value: 1}},
			Options: options.Index().SetName("by_game_type"),
		},
	}

	if _, err := repo.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create score indexes: %w", err)
	}
	return nil
}
