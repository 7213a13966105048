package score

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	bookingRepo "playarena/database/repository/booking"
	scoreRepo "playarena/database/repository/score"
	"playarena/models"

	"go.uber.org/zap"
)

// DefaultScoreService is the production score ledger.
type DefaultScoreService struct {
	Repo     scoreRepo.ScoreRepository
	Bookings bookingRepo.BookingRepository
	Logger   *zap.Logger
}

// NewDefaultScoreService constructs the ledger over its repositories.
func NewDefaultScoreService(repo scoreRepo.ScoreRepository, bookings bookingRepo.BookingRepository, logger *zap.Logger) *DefaultScoreService {
	return &DefaultScoreService{Repo: repo, Bookings: bookings, Logger: logger}
}

// RecordCheckinScore upserts a provisional +1 for a check-in.
func (s *DefaultScoreService) RecordCheckinScore(ctx context.Context, booking *models.GameBooking, attuid string) error {
	if err := s.Repo.IncrementCheckin(ctx, booking.ID, booking.GameType, attuid); err != nil {
		return fmt.Errorf("failed to record check-in score: %w", err)
	}
	return nil
}

// SubmitFinalScores validates and records the creator's one-shot final
// results for an ended game.
func (s *DefaultScoreService) SubmitFinalScores(ctx context.Context, caller, bookingID string, entries []ScoreEntry) (*models.ScoreRecord, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Creator() != caller {
		return nil, ErrNotCreator
	}
	if !booking.Slot.Ended(time.Now()) {
		return nil, ErrGameNotEnded
	}

	converted, err := validateEntries(booking, entries)
	if err != nil {
		return nil, err
	}

	if err := s.Repo.SubmitFinal(ctx, booking.ID, booking.GameType, converted); err != nil {
		if errors.Is(err, scoreRepo.ErrFinalExists) {
			return nil, ErrDuplicateSubmission
		}
		return nil, fmt.Errorf("failed to submit final scores: %w", err)
	}

	s.Logger.Info("final scores recorded",
		zap.String("bookingId", booking.ID),
		zap.String("gameType", string(booking.GameType)),
		zap.Int("entries", len(converted)))

	return s.Repo.GetByBookingID(ctx, booking.ID)
}

// validateEntries enforces the entry invariants: every identity is a
// participant, no duplicates, entry count within the player count, and
// every score a non-negative whole number.
func validateEntries(booking *models.GameBooking, entries []ScoreEntry) ([]models.PlayerScore, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no entries given", ErrInvalidEntries)
	}
	if len(entries) > len(booking.Players) {
		return nil, fmt.Errorf("%w: more entries than participants", ErrInvalidEntries)
	}

	seen := make(map[string]struct{}, len(entries))
	converted := make([]models.PlayerScore, 0, len(entries))
	for _, e := range entries {
		if !booking.HasPlayer(e.ATTUID) {
			return nil, fmt.Errorf("%w: %s is not a participant", ErrInvalidEntries, e.ATTUID)
		}
		if _, dup := seen[e.ATTUID]; dup {
			return nil, fmt.Errorf("%w: duplicate entry for %s", ErrInvalidEntries, e.ATTUID)
		}
		seen[e.ATTUID] = struct{}{}

		if e.Score < 0 || e.Score != math.Trunc(e.Score) {
			return nil, fmt.Errorf("%w: score for %s must be a non-negative whole number", ErrInvalidEntries, e.ATTUID)
		}
		converted = append(converted, models.PlayerScore{ATTUID: e.ATTUID, Score: int(e.Score)})
	}
	return converted, nil
}

// GetScores returns the score record for one booking.
func (s *DefaultScoreService) GetScores(ctx context.Context, bookingID string) (*models.ScoreRecord, error) {
	return s.Repo.GetByBookingID(ctx, bookingID)
}

// AggregateByUser returns summed scores per identity and game type.
func (s *DefaultScoreService) AggregateByUser(ctx context.Context, gameType models.GameType) ([]models.UserScoreTotal, error) {
	return s.Repo.AggregateByUser(ctx, gameType)
}
