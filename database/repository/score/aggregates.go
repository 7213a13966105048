package scoreRepo

import (
	"context"
	"fmt"
	"time"

	"playarena/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// AggregateByUser sums all recorded scores per (attuid, gameType), sorted
// by attuid then game type for deterministic output.
func (repo *MongoScoreRepo) AggregateByUser(ctx context.Context, gameType models.GameType) ([]models.UserScoreTotal, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	match := bson.M{}
	if gameType != "" {
		match["gameType"] = gameType
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$unwind", Value: "$scores"}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"attuid":   "$scores.attuid",
				"gameType": "$gameType",
			},
			"total": bson.M{"$sum": "$scores.score"},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"attuid":   "$_id.attuid",
			"gameType": "$_id.gameType",
			"total":    1,
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "attuid", Value: 1}, {Key: "gameType", Value: 1}}}},
	}

	cursor, err := repo.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("score aggregation error: %w", err)
	}
	defer cursor.Close(ctx)

	var totals []models.UserScoreTotal
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("error decoding score aggregation: %w", err)
	}
	return totals, nil
}
