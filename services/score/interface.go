package score

import (
	"context"

	"playarena/models"
)

// ScoreEntry is one submitted result. The score arrives as a JSON number
// and is validated to be a non-negative whole value.
type ScoreEntry struct {
	ATTUID string  `json:"attuid"`
	Score  float64 `json:"score"`
}

// ScoreService records and aggregates post-game results.
type ScoreService interface {
	// RecordCheckinScore upserts a provisional +1 for a successful
	// check-in; idempotence across repeated check-ins is guaranteed by
	// the caller's check-in flag.
	RecordCheckinScore(ctx context.Context, booking *models.GameBooking, attuid string) error

	// SubmitFinalScores records the creator's one-shot final results for
	// an ended game, adding onto any check-in-derived increments.
	SubmitFinalScores(ctx context.Context, caller, bookingID string, entries []ScoreEntry) (*models.ScoreRecord, error)

	// GetScores returns the score record for one booking.
	GetScores(ctx context.Context, bookingID string) (*models.ScoreRecord, error)

	// AggregateByUser returns summed scores per identity and game type,
	// optionally filtered to one game type.
	AggregateByUser(ctx context.Context, gameType models.GameType) ([]models.UserScoreTotal, error)
}
