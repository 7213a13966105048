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

// CreatePrivateGame reserves a slot for the caller plus 1-3 invited
// colleagues; the full player list is fixed at creation time.
func (s *DefaultArenaService) CreatePrivateGame(ctx context.Context, caller string, req CreateBookingRequest) (*models.GameBooking, error) {
	players, err := buildPrivatePlayers(caller, req.Colleagues)
	if err != nil {
		return nil, err
	}
	return s.create(ctx, models.BookingPrivate, players, req)
}

// CreateArenaGame reserves a slot as an open game with the caller as the
// only initial participant.
func (s *DefaultArenaService) CreateArenaGame(ctx context.Context, caller string, req CreateBookingRequest) (*models.GameBooking, error) {
	if len(req.Colleagues) > 0 {
		return nil, validationf("arena games do not take an invitee list; players join on their own")
	}
	players := []models.Player{{ATTUID: caller}}
	return s.create(ctx, models.BookingArena, players, req)
}

// create runs the two-step reservation protocol: validate, lease the slot
// key, re-check the authoritative store, persist, invalidate the derived
// views, and fan out notifications. The slot lease is left to expire on
// its own short TTL; it exists only to keep near-simultaneous creates
// from racing the store check.
func (s *DefaultArenaService) create(ctx context.Context, bookingType models.BookingType, players []models.Player, req CreateBookingRequest) (*models.GameBooking, error) {
	if err := s.validateCreateInput(req); err != nil {
		return nil, err
	}

	attuids := make([]string, len(players))
	for i, p := range players {
		attuids[i] = p.ATTUID
	}
	if err := s.Roster.ValidateAll(ctx, attuids); err != nil {
		return nil, err
	}

	ok, err := s.Leases.AcquireSlotLease(ctx, req.GameType, req.Slot.Date, req.Slot.StartTime)
	if err != nil {
		return nil, fmt.Errorf("lease manager unavailable: %w", err)
	}
	if !ok {
		return nil, ErrSlotHeld
	}

	// Authoritative re-check; the cached availability view is never
	// trusted for exclusivity.
	if _, err := s.Repo.FindLiveBySlot(ctx, req.GameType, req.Slot.Date, req.Slot.StartTime); err == nil {
		return nil, ErrSlotTaken
	} else if !errors.Is(err, bookingRepo.ErrNotFound) {
		return nil, err
	}

	booking := &models.GameBooking{
		GameType:    req.GameType,
		BookingType: bookingType,
		Players:     players,
		Slot:        req.Slot,
		Location:    req.Location,
	}
	if err := s.Repo.Create(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotTaken) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	s.Availability.Invalidate(ctx, booking.GameType, booking.Slot.Date)

	s.Logger.Info("booking created",
		zap.String("bookingId", booking.ID),
		zap.String("gameType", string(booking.GameType)),
		zap.String("bookingType", string(booking.BookingType)),
		zap.String("slot", booking.Slot.Key()))

	title := fmt.Sprintf("%s game booked", gameLabel(booking.GameType))
	body := fmt.Sprintf("Your %s game at %s on %s %s-%s is confirmed.",
		gameLabel(booking.GameType), booking.Location,
		booking.Slot.Date, booking.Slot.StartTime, booking.Slot.EndTime)
	s.notifyPlayers(booking.Players, title, body)

	return booking, nil
}

// validateCreateInput checks the caller-supplied fields shared by both
// booking types. Validation failures have no side effects.
func (s *DefaultArenaService) validateCreateInput(req CreateBookingRequest) error {
	if !req.GameType.IsValid() {
		return validationf("unknown game type %q", req.GameType)
	}
	if strings.TrimSpace(req.Location) == "" {
		return validationf("location is required")
	}
	return s.validateSlot(req.Slot)
}

// validateSlot checks a caller-supplied slot: well-formed single grid
// window, future start, and within the arena's bookable hours.
func (s *DefaultArenaService) validateSlot(slot models.Slot) error {
	if err := slot.Validate(); err != nil {
		return validationf("invalid slot: %v", err)
	}
	start, err := slot.StartAt()
	if err != nil {
		return validationf("invalid slot: %v", err)
	}
	if start.Before(time.Now()) {
		return validationf("slot must start in the future")
	}
	startMin, _ := models.MinutesOfDay(slot.StartTime)
	endMin, _ := models.MinutesOfDay(slot.EndTime)
	if startMin < s.OpenHour*60 || endMin > s.CloseHour*60 {
		return validationf("slot must fall within arena hours %02d:00-%02d:00", s.OpenHour, s.CloseHour)
	}
	return nil
}

// buildPrivatePlayers assembles the fixed player list of a private game:
// the creator first, then 1-3 distinct colleagues.
func buildPrivatePlayers(caller string, colleagues []string) ([]models.Player, error) {
	if len(colleagues) == 0 {
		return nil, validationf("a private game needs at least one colleague")
	}
	if len(colleagues) > models.MaxPrivateColleagues {
		return nil, validationf("a private game takes at most %d colleagues", models.MaxPrivateColleagues)
	}

	players := []models.Player{{ATTUID: caller}}
	seen := map[string]struct{}{caller: {}}
	for _, id := range colleagues {
		id = strings.TrimSpace(id)
		if id == "" {
			return nil, validationf("colleague attuid must not be empty")
		}
		if _, dup := seen[id]; dup {
			return nil, validationf("duplicate player %s", id)
		}
		seen[id] = struct{}{}
		players = append(players, models.Player{ATTUID: id})
	}
	return players, nil
}
