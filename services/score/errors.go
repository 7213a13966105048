package score

import "errors"

var (
	// ErrNotCreator signals a final submission by someone other than the
	// booking creator.
	ErrNotCreator = errors.New("only the booking creator can submit final scores")

	// ErrGameNotEnded signals a final submission before the slot window
	// has elapsed.
	ErrGameNotEnded = errors.New("game has not ended yet")

	// ErrDuplicateSubmission signals a second final submission for the
	// same booking.
	ErrDuplicateSubmission = errors.New("final scores already submitted")

	// ErrInvalidEntries signals malformed score entries; wrapped with the
	// specific reason.
	ErrInvalidEntries = errors.New("invalid score entries")
)
