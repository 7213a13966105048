package arena

import (
	"context"
	"time"

	"playarena/models"
)

// MyBookings returns every booking the caller participates in.
func (s *DefaultArenaService) MyBookings(ctx context.Context, caller string) ([]models.GameBooking, error) {
	return s.Repo.FindByPlayer(ctx, caller)
}

// OpenArenaGames lists joinable arena games, optionally filtered by date
// and game type. The listing is cached per filter pair with the standard
// TTL; creates, joins, updates and cancels invalidate it.
func (s *DefaultArenaService) OpenArenaGames(ctx context.Context, date string, gameType models.GameType) ([]models.GameBooking, error) {
	if date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return nil, validationf("invalid date %q", date)
		}
	}
	if gameType != "" && !gameType.IsValid() {
		return nil, validationf("unknown game type %q", gameType)
	}

	if games, ok := s.Availability.CachedOpenGames(ctx, date, gameType); ok {
		return games, nil
	}

	all, err := s.Repo.FindArenaGames(ctx, date, gameType)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	games := make([]models.GameBooking, 0, len(all))
	for _, b := range all {
		if b.Slot.Started(now) {
			continue
		}
		games = append(games, b)
	}

	s.Availability.StoreOpenGames(ctx, date, gameType, games)
	return games, nil
}
