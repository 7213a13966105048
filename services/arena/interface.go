package arena

import (
	"context"

	bookingRepo "playarena/database/repository/booking"
	"playarena/models"
	"playarena/services/availability"
	"playarena/services/lock"
	"playarena/services/notification"
	"playarena/services/roster"
	"playarena/services/score"

	"go.uber.org/zap"
)

// CreateBookingRequest carries the caller's input for a new game booking.
// Colleagues applies to private games only.
type CreateBookingRequest struct {
	GameType   models.GameType `json:"gameType"`
	Slot       models.Slot     `json:"slot"`
	Location   string          `json:"location"`
	Colleagues []string        `json:"colleagues,omitempty"`
}

// UpdateBookingRequest carries the creator's changes. Nil fields are left
// unchanged; Colleagues replaces the invitee list of a private game.
type UpdateBookingRequest struct {
	GameType   *models.GameType `json:"gameType,omitempty"`
	Slot       *models.Slot     `json:"slot,omitempty"`
	Location   *string          `json:"location,omitempty"`
	Colleagues []string         `json:"colleagues,omitempty"`
}

// ArenaService owns the booking lifecycle: create, join, check-in,
// update, cancel, and the read-only listing views.
type ArenaService interface {
	CreatePrivateGame(ctx context.Context, caller string, req CreateBookingRequest) (*models.GameBooking, error)
	CreateArenaGame(ctx context.Context, caller string, req CreateBookingRequest) (*models.GameBooking, error)
	JoinArenaGame(ctx context.Context, caller, bookingID string) (*models.GameBooking, error)
	CheckIn(ctx context.Context, caller, bookingID string) (*models.GameBooking, error)
	UpdateBooking(ctx context.Context, caller, bookingID string, req UpdateBookingRequest) (*models.GameBooking, error)
	CancelBooking(ctx context.Context, caller, bookingID string) error
	MyBookings(ctx context.Context, caller string) ([]models.GameBooking, error)
	OpenArenaGames(ctx context.Context, date string, gameType models.GameType) ([]models.GameBooking, error)
}

// DefaultArenaService is the production booking lifecycle manager.
// OpenHour and CloseHour bound the bookable day; slots outside them are
// rejected at create and update time so the availability grid always
// represents every live booking.
type DefaultArenaService struct {
	Repo         bookingRepo.BookingRepository
	Roster       roster.RosterService
	Leases       lock.LeaseManager
	Availability availability.AvailabilityService
	Scores       score.ScoreService
	Notifier     notification.Dispatcher
	Logger       *zap.Logger
	OpenHour     int
	CloseHour    int
}
