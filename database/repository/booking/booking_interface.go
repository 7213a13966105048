package bookingRepo

import (
	"context"
	"errors"

	"playarena/models"
)

// ErrNotFound is returned when no booking matches the query.
var ErrNotFound = errors.New("booking not found")

// ErrSlotTaken is returned when the unique slot index rejects an insert,
// the durable backstop against double booking.
var ErrSlotTaken = errors.New("slot already booked")

// BookingRepository is the authoritative store for game bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.GameBooking) error
	GetByID(ctx context.Context, id string) (*models.GameBooking, error)
	Replace(ctx context.Context, booking *models.GameBooking) error
	Delete(ctx context.Context, id string) error

	// FindLiveBySlot returns the booking holding the exact
	// (gameType, date, startTime) key, or ErrNotFound.
	FindLiveBySlot(ctx context.Context, gameType models.GameType, date, startTime string) (*models.GameBooking, error)

	// FindByTypeAndDate returns all bookings for a game type on a date,
	// used to rebuild the availability view from the authoritative set.
	FindByTypeAndDate(ctx context.Context, gameType models.GameType, date string) ([]models.GameBooking, error)

	// FindByPlayer returns every booking that lists attuid as a player.
	FindByPlayer(ctx context.Context, attuid string) ([]models.GameBooking, error)

	// FindArenaGames returns arena-type bookings, optionally filtered by
	// date and/or game type (empty string means no filter).
	FindArenaGames(ctx context.Context, date string, gameType models.GameType) ([]models.GameBooking, error)

	EnsureIndexes(ctx context.Context) error
}
