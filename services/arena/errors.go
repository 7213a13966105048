package arena

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals that the referenced booking does not exist.
	ErrNotFound = errors.New("booking not found")

	// ErrNotCreator signals a creator-only action by a non-creator.
	ErrNotCreator = errors.New("only the booking creator can perform this action")

	// ErrBookingBusy signals that another mutation holds the booking
	// lease; the caller should retry later, not immediately.
	ErrBookingBusy = errors.New("booking is being modified by another request")

	// ErrSlotHeld signals that another create/update holds the slot lease.
	ErrSlotHeld = errors.New("slot is currently being reserved by someone else")

	// ErrSlotTaken signals that the slot is already covered by a booking.
	ErrSlotTaken = errors.New("slot is already booked")

	// ErrGameFull signals a join against a booking at the player cap.
	ErrGameFull = errors.New("game is already full")

	// ErrAlreadyJoined signals a join by an existing participant.
	ErrAlreadyJoined = errors.New("already a participant of this game")

	// ErrPrivateGame signals a join against an invite-only booking.
	ErrPrivateGame = errors.New("cannot join a private game")

	// ErrGameStarted rejects mutations once the slot window has begun.
	ErrGameStarted = errors.New("game has already started")

	// ErrGameEnded rejects check-ins after the slot window has elapsed.
	ErrGameEnded = errors.New("game has already ended")

	// ErrNotStarted rejects check-ins before the slot window has begun.
	ErrNotStarted = errors.New("game has not started yet")

	// ErrNotParticipant signals a check-in by a non-participant.
	ErrNotParticipant = errors.New("not a participant of this game")

	// ErrAlreadyCheckedIn signals a repeated check-in.
	ErrAlreadyCheckedIn = errors.New("already checked in")
)

// ValidationError carries a malformed-input message; it never has side
// effects.
type ValidationError struct {
	Msg string
}

func (e ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...interface{}) error {
	return ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}
