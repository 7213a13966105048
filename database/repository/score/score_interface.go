package scoreRepo

import (
	"context"
	"errors"

	"playarena/models"
)

// ErrNotFound is returned when no score record matches the query.
var ErrNotFound = errors.New("score record not found")

// ErrFinalExists is returned when a final submission already exists for
// the booking; final scores are accepted exactly once.
var ErrFinalExists = errors.New("final scores already submitted for booking")

// ScoreRepository is the authoritative store for per-booking score records.
type ScoreRepository interface {
	GetByBookingID(ctx context.Context, bookingID string) (*models.ScoreRecord, error)

	// IncrementCheckin adds +1 to the player's entry for the booking,
	// creating the record and/or the entry as needed. Idempotence across
	// repeated check-ins is enforced upstream by the check-in flag.
	IncrementCheckin(ctx context.Context, bookingID string, gameType models.GameType, attuid string) error

	// SubmitFinal atomically claims the one-shot final submission for the
	// booking and adds the entries onto any check-in-derived scores.
	// Returns ErrFinalExists if a final submission was already recorded.
	SubmitFinal(ctx context.Context, bookingID string, gameType models.GameType, entries []models.PlayerScore) error

	// AggregateByUser sums all recorded scores per (attuid, gameType),
	// optionally filtered to one game type, sorted by attuid.
	AggregateByUser(ctx context.Context, gameType models.GameType) ([]models.UserScoreTotal, error)

	EnsureIndexes(ctx context.Context) error
}
