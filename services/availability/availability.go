package availability

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	bookingRepo "playarena/database/repository/booking"
	"playarena/models"
	"playarena/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache is the slice of the Redis client the index needs. The generic
// cache client satisfies it; tests substitute a stub.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// DefaultAvailabilityService derives bookable windows from the
// authoritative booking set and caches them with a TTL.
type DefaultAvailabilityService struct {
	Repo      bookingRepo.BookingRepository
	Cache     Cache
	TTL       time.Duration
	OpenHour  int
	CloseHour int
	Logger    *zap.Logger
}

// NewDefaultAvailabilityService constructs the index over the booking
// store and the generic cache.
func NewDefaultAvailabilityService(repo bookingRepo.BookingRepository, cache Cache, ttl time.Duration, openHour, closeHour int, logger *zap.Logger) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Repo:      repo,
		Cache:     cache,
		TTL:       ttl,
		OpenHour:  openHour,
		CloseHour: closeHour,
		Logger:    logger,
	}
}

func slotCacheKey(gameType models.GameType, date string) string {
	return utils.SlotCachePrefix + string(gameType) + ":" + date
}

func openGamesKey(date string, gameType models.GameType) string {
	d, g := date, string(gameType)
	if d == "" {
		d = "all"
	}
	if g == "" {
		g = "all"
	}
	return utils.OpenGamesPrefix + d + ":" + g
}

// GetAvailableSlots serves the availability view for one (gameType, date)
// key, rebuilding from the authoritative store on a cache miss.
func (s *DefaultAvailabilityService) GetAvailableSlots(ctx context.Context, gameType models.GameType, date string) ([]models.Slot, error) {
	key := slotCacheKey(gameType, date)

	raw, err := s.Cache.Get(ctx, key).Result()
	if err == nil {
		var slots []models.Slot
		if jsonErr := json.Unmarshal([]byte(raw), &slots); jsonErr == nil {
			return slots, nil
		}
		s.Logger.Warn("availability: corrupt cache entry, rebuilding", zap.String("key", key))
	} else if !errors.Is(err, redis.Nil) {
		// The cache is a best-effort accelerator; rebuild from the store.
		s.Logger.Warn("availability: cache read failed, rebuilding", zap.String("key", key), zap.Error(err))
	}

	slots, err := s.computeSlots(ctx, gameType, date)
	if err != nil {
		return nil, err
	}

	if data, jsonErr := json.Marshal(slots); jsonErr == nil {
		if setErr := s.Cache.Set(ctx, key, data, s.TTL).Err(); setErr != nil {
			s.Logger.Warn("availability: cache write failed", zap.String("key", key), zap.Error(setErr))
		}
	}
	return slots, nil
}

// computeSlots enumerates the full fixed grid and subtracts windows
// overlapped by live bookings, straight from the authoritative store.
func (s *DefaultAvailabilityService) computeSlots(ctx context.Context, gameType models.GameType, date string) ([]models.Slot, error) {
	bookings, err := s.Repo.FindByTypeAndDate(ctx, gameType, date)
	if err != nil {
		return nil, fmt.Errorf("availability rebuild for %s on %s failed: %w", gameType, date, err)
	}

	grid := BuildDayGrid(date, s.OpenHour, s.CloseHour)
	free := make([]models.Slot, 0, len(grid))
	for _, window := range grid {
		start, _ := models.MinutesOfDay(window.StartTime)
		end, _ := models.MinutesOfDay(window.EndTime)
		taken := false
		for _, b := range bookings {
			if b.Slot.Overlaps(start, end) {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, window)
		}
	}
	return free, nil
}

// Invalidate drops the slot entry for the key plus the four open-game
// listings the key can appear under.
func (s *DefaultAvailabilityService) Invalidate(ctx context.Context, gameType models.GameType, date string) {
	keys := []string{
		slotCacheKey(gameType, date),
		openGamesKey("", ""),
		openGamesKey(date, ""),
		openGamesKey("", gameType),
		openGamesKey(date, gameType),
	}
	if err := s.Cache.Del(ctx, keys...).Err(); err != nil {
		// The TTL corrects any entry we failed to drop.
		s.Logger.Warn("availability: invalidation failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// CachedOpenGames returns a cached open-game listing, ok=false on a miss.
func (s *DefaultAvailabilityService) CachedOpenGames(ctx context.Context, date string, gameType models.GameType) ([]models.GameBooking, bool) {
	raw, err := s.Cache.Get(ctx, openGamesKey(date, gameType)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			s.Logger.Warn("availability: open-games cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var games []models.GameBooking
	if err := json.Unmarshal([]byte(raw), &games); err != nil {
		return nil, false
	}
	return games, true
}

// StoreOpenGames caches an open-game listing with the standard TTL.
func (s *DefaultAvailabilityService) StoreOpenGames(ctx context.Context, date string, gameType models.GameType, games []models.GameBooking) {
	data, err := json.Marshal(games)
	if err != nil {
		return
	}
	if err := s.Cache.Set(ctx, openGamesKey(date, gameType), data, s.TTL).Err(); err != nil {
		s.Logger.Warn("availability: open-games cache write failed", zap.Error(err))
	}
}
