package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"playarena/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FindLiveBySlot returns the booking holding the exact slot key, if any.
func (repo *MongoBookingRepo) FindLiveBySlot(ctx context.Context, gameType models.GameType, date, startTime string) (*models.GameBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"gameType":       gameType,
		"slot.date":      date,
		"slot.startTime": startTime,
	}
	var booking models.GameBooking
	if err := repo.coll.FindOne(ctx, filter).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error querying slot %s %s %s: %w", gameType, date, startTime, err)
	}
	return &booking, nil
}

// FindByTypeAndDate returns all bookings for one game type on one date.
func (repo *MongoBookingRepo) FindByTypeAndDate(ctx context.Context, gameType models.GameType, date string) ([]models.GameBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"gameType": gameType, "slot.date": date}
	opts := options.Find().SetSort(bson.D{{Key: "slot.startTime", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for %s on %s: %w", gameType, date, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.GameBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// FindByPlayer returns every booking listing attuid as a player, newest first.
func (repo *MongoBookingRepo) FindByPlayer(ctx context.Context, attuid string) ([]models.GameBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"players.attuid": attuid}
	opts := options.Find().SetSort(bson.D{{Key: "slot.date", Value: -1}, {Key: "slot.startTime", Value: -1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying bookings for player %s: %w", attuid, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.GameBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding bookings: %w", err)
	}
	return bookings, nil
}

// FindArenaGames returns arena-type bookings still below the player cap,
// optionally narrowed by date and game type. Window filtering against the
// current time is the caller's concern.
func (repo *MongoBookingRepo) FindArenaGames(ctx context.Context, date string, gameType models.GameType) ([]models.GameBooking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"bookingType": models.BookingArena,
		"$expr":       bson.M{"$lt": bson.A{bson.M{"$size": "$players"}, models.MaxPlayers}},
	}
	if date != "" {
		filter["slot.date"] = date
	}
	if gameType != "" {
		filter["gameType"] = gameType
	}

	opts := options.Find().SetSort(bson.D{{Key: "slot.date", Value: 1}, {Key: "slot.startTime", Value: 1}})
	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying open arena games: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []models.GameBooking
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("error decoding open arena games: %w", err)
	}
	return bookings, nil
}
