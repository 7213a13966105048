package arena

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// CancelBooking hard-deletes a not-yet-started booking. The slot's lease
// is long expired by now, so removal plus cache invalidation is all it
// takes for the window to reappear as bookable.
func (s *DefaultArenaService) CancelBooking(ctx context.Context, caller, bookingID string) error {
	release, err := s.acquireBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	defer release()

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.Creator() != caller {
		return ErrNotCreator
	}
	if booking.Slot.Started(time.Now()) {
		return ErrGameStarted
	}

	if err := s.Repo.Delete(ctx, bookingID); err != nil {
		return err
	}

	s.Availability.Invalidate(ctx, booking.GameType, booking.Slot.Date)

	s.Logger.Info("booking canceled",
		zap.String("bookingId", booking.ID),
		zap.String("slot", booking.Slot.Key()))

	title := fmt.Sprintf("%s game canceled", gameLabel(booking.GameType))
	body := fmt.Sprintf("The %s game at %s on %s %s-%s was canceled.",
		gameLabel(booking.GameType), booking.Location,
		booking.Slot.Date, booking.Slot.StartTime, booking.Slot.EndTime)
	s.notifyPlayers(booking.Players, title, body)

	return nil
}
