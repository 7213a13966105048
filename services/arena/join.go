package arena

import (
	"context"
	"fmt"
	"time"

	"playarena/models"

	"go.uber.org/zap"
)

// JoinArenaGame adds the caller to an open arena game. The booking lease
// serializes concurrent joins so the player cap holds under contention.
func (s *DefaultArenaService) JoinArenaGame(ctx context.Context, caller, bookingID string) (*models.GameBooking, error) {
	release, err := s.acquireBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if booking.BookingType != models.BookingArena {
		return nil, ErrPrivateGame
	}
	if booking.IsFull() {
		return nil, ErrGameFull
	}
	if booking.Slot.Started(time.Now()) {
		return nil, ErrGameStarted
	}
	if booking.HasPlayer(caller) {
		return nil, ErrAlreadyJoined
	}

	if err := s.Roster.ValidateAll(ctx, []string{caller}); err != nil {
		return nil, err
	}

	booking.Players = append(booking.Players, models.Player{ATTUID: caller})
	if err := s.Repo.Replace(ctx, booking); err != nil {
		return nil, err
	}

	s.Availability.Invalidate(ctx, booking.GameType, booking.Slot.Date)

	s.Logger.Info("player joined arena game",
		zap.String("bookingId", booking.ID),
		zap.String("attuid", caller),
		zap.Int("players", len(booking.Players)))

	title := fmt.Sprintf("Joined %s game", gameLabel(booking.GameType))
	body := fmt.Sprintf("You joined the %s game at %s on %s %s-%s.",
		gameLabel(booking.GameType), booking.Location,
		booking.Slot.Date, booking.Slot.StartTime, booking.Slot.EndTime)
	s.notifyPlayers([]models.Player{{ATTUID: caller}}, title, body)

	return booking, nil
}
