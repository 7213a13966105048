package arena

import (
	"context"
	"errors"
	"strings"
	"time"

	bookingRepo "playarena/database/repository/booking"
	"playarena/models"

	"go.uber.org/zap"
)

// acquireBooking takes the mutation lease for a booking and returns the
// release func; callers defer it so the lease is dropped on every exit
// path, leaving the TTL purely as a crash backstop.
func (s *DefaultArenaService) acquireBooking(ctx context.Context, bookingID string) (func(), error) {
	ok, err := s.Leases.AcquireBookingLease(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrBookingBusy
	}
	return func() {
		releaseCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := s.Leases.ReleaseBookingLease(releaseCtx, bookingID); err != nil {
			s.Logger.Warn("booking lease release failed",
				zap.String("bookingId", bookingID), zap.Error(err))
		}
	}, nil
}

// loadBooking fetches a booking and maps the repository's absence error
// onto the service taxonomy.
func (s *DefaultArenaService) loadBooking(ctx context.Context, bookingID string) (*models.GameBooking, error) {
	booking, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return booking, nil
}

// notifyPlayers fans one event out to each recipient independently and
// concurrently; a failed enqueue is logged and never fails the booking
// operation that triggered it.
func (s *DefaultArenaService) notifyPlayers(players []models.Player, title, body string) {
	for _, p := range players {
		go func(attuid string) {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.Notifier.Notify(ctx, attuid, title, body); err != nil {
				s.Logger.Warn("notification dispatch failed",
					zap.String("attuid", attuid),
					zap.String("title", title),
					zap.Error(err))
			}
		}(p.ATTUID)
	}
}

// gameLabel renders a game type for human-readable messages.
func gameLabel(g models.GameType) string {
	return strings.ReplaceAll(string(g), "_", " ")
}
