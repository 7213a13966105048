package arena

import (
	"context"
	"fmt"
	"time"

	"playarena/models"

	"go.uber.org/zap"
)

// CheckIn flips the caller's attendance flag once the game window has
// begun, and records a provisional +1 in the score ledger.
func (s *DefaultArenaService) CheckIn(ctx context.Context, caller, bookingID string) (*models.GameBooking, error) {
	release, err := s.acquireBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if !booking.Slot.Started(now) {
		return nil, ErrNotStarted
	}
	if booking.Slot.Ended(now) {
		return nil, ErrGameEnded
	}

	idx := -1
	for i, p := range booking.Players {
		if p.ATTUID == caller {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrNotParticipant
	}
	if booking.Players[idx].CheckedIn {
		return nil, ErrAlreadyCheckedIn
	}

	booking.Players[idx].CheckedIn = true
	if err := s.Repo.Replace(ctx, booking); err != nil {
		return nil, err
	}

	// Best-effort: a ledger hiccup must not undo a successful check-in.
	if err := s.Scores.RecordCheckinScore(ctx, booking, caller); err != nil {
		s.Logger.Error("check-in score recording failed",
			zap.String("bookingId", booking.ID),
			zap.String("attuid", caller),
			zap.Error(err))
	}

	s.Logger.Info("player checked in",
		zap.String("bookingId", booking.ID),
		zap.String("attuid", caller))

	title := "Checked in"
	body := fmt.Sprintf("You are checked in for the %s game at %s.",
		gameLabel(booking.GameType), booking.Location)
	s.notifyPlayers([]models.Player{{ATTUID: caller}}, title, body)

	return booking, nil
}
