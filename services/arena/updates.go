package arena

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "playarena/database/repository/booking"
	"playarena/models"

	"go.uber.org/zap"
)

// UpdateBooking applies the creator's changes to a not-yet-started
// booking. A slot change runs the same lease-then-recheck protocol as
// create against the new slot key, and both the old and new availability
// entries are invalidated in the same operation.
func (s *DefaultArenaService) UpdateBooking(ctx context.Context, caller, bookingID string, req UpdateBookingRequest) (*models.GameBooking, error) {
	release, err := s.acquireBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	defer release()

	booking, err := s.loadBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking.Creator() != caller {
		return nil, ErrNotCreator
	}
	if booking.Slot.Started(time.Now()) {
		return nil, ErrGameStarted
	}

	oldGameType := booking.GameType
	oldSlot := booking.Slot

	updated := *booking
	updated.Players = append([]models.Player(nil), booking.Players...)

	if req.GameType != nil {
		if !req.GameType.IsValid() {
			return nil, validationf("unknown game type %q", *req.GameType)
		}
		updated.GameType = *req.GameType
	}
	if req.Location != nil {
		if strings.TrimSpace(*req.Location) == "" {
			return nil, validationf("location must not be empty")
		}
		updated.Location = *req.Location
	}
	if req.Slot != nil {
		if err := s.validateSlot(*req.Slot); err != nil {
			return nil, err
		}
		updated.Slot = *req.Slot
	}
	if req.Colleagues != nil {
		if booking.BookingType != models.BookingPrivate {
			return nil, validationf("only private games take an invitee list")
		}
		players, err := buildPrivatePlayers(caller, req.Colleagues)
		if err != nil {
			return nil, err
		}
		if err := s.Roster.ValidateAll(ctx, req.Colleagues); err != nil {
			return nil, err
		}
		// Keep flags for players retained across the change; the creator's
		// entry carries over as-is.
		players[0].CheckedIn = booking.Players[0].CheckedIn
		for i := 1; i < len(players); i++ {
			for _, prev := range booking.Players {
				if prev.ATTUID == players[i].ATTUID {
					players[i].CheckedIn = prev.CheckedIn
					break
				}
			}
		}
		updated.Players = players
	}

	slotMoved := updated.GameType != oldGameType || updated.Slot != oldSlot
	if slotMoved {
		ok, err := s.Leases.AcquireSlotLease(ctx, updated.GameType, updated.Slot.Date, updated.Slot.StartTime)
		if err != nil {
			return nil, fmt.Errorf("lease manager unavailable: %w", err)
		}
		if !ok {
			return nil, ErrSlotHeld
		}

		holder, err := s.Repo.FindLiveBySlot(ctx, updated.GameType, updated.Slot.Date, updated.Slot.StartTime)
		if err == nil && holder.ID != booking.ID {
			return nil, ErrSlotTaken
		} else if err != nil && !errors.Is(err, bookingRepo.ErrNotFound) {
			return nil, err
		}
	}

	if err := s.Repo.Replace(ctx, &updated); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	// The freed slot reappears and the claimed one disappears once the
	// derived views rebuild.
	s.Availability.Invalidate(ctx, oldGameType, oldSlot.Date)
	if slotMoved {
		s.Availability.Invalidate(ctx, updated.GameType, updated.Slot.Date)
	}

	s.Logger.Info("booking updated",
		zap.String("bookingId", booking.ID),
		zap.Bool("slotMoved", slotMoved))

	title := fmt.Sprintf("%s game updated", gameLabel(updated.GameType))
	body := fmt.Sprintf("The %s game was updated: %s on %s %s-%s.",
		gameLabel(updated.GameType), updated.Location,
		updated.Slot.Date, updated.Slot.StartTime, updated.Slot.EndTime)
	s.notifyPlayers(updated.Players, title, body)

	return &updated, nil
}
