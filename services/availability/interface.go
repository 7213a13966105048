package availability

import (
	"context"

	"playarena/models"
)

// AvailabilityService answers "what windows remain open for game X on date
// D" with bounded staleness. Cached answers are never the basis for an
// exclusivity decision; the lease manager and the authoritative store
// re-check at mutation time.
type AvailabilityService interface {
	// GetAvailableSlots returns the fixed day grid minus windows covered
	// by live bookings, served from cache when fresh.
	GetAvailableSlots(ctx context.Context, gameType models.GameType, date string) ([]models.Slot, error)

	// Invalidate drops the cached availability entry for the key along
	// with every open-game listing the key can affect. Idempotent and
	// safe to call speculatively.
	Invalidate(ctx context.Context, gameType models.GameType, date string)

	// CachedOpenGames returns a cached open-game listing for the filter
	// pair, with ok=false on a miss.
	CachedOpenGames(ctx context.Context, date string, gameType models.GameType) ([]models.GameBooking, bool)

	// StoreOpenGames caches an open-game listing for the filter pair.
	StoreOpenGames(ctx context.Context, date string, gameType models.GameType, games []models.GameBooking)
}
