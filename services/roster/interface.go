package roster

import (
	"context"
	"errors"

	"playarena/models"
)

// ErrRosterUnavailable signals that the cached roster could not be read at
// all. Validation-dependent operations fail closed on this error; callers
// surface it distinctly so the client can retry.
var ErrRosterUnavailable = errors.New("employee roster unavailable")

// ErrUnknownIdentity signals that at least one identity is not present in
// the authoritative roster.
var ErrUnknownIdentity = errors.New("identity not found in roster")

// RosterService validates identities against the externally maintained,
// cached employee directory. This service never populates or refreshes the
// cache; the directory sync job owns that.
type RosterService interface {
	// ValidateAll returns nil only if every attuid is present in the
	// roster. No partial results: any miss fails the whole set.
	ValidateAll(ctx context.Context, attuids []string) error

	// Lookup returns one roster entry by attuid.
	Lookup(ctx context.Context, attuid string) (*models.AuthUser, error)

	// All returns the full cached roster.
	All(ctx context.Context) ([]models.AuthUser, error)
}
