package lock

import (
	"context"
	"fmt"
	"time"

	"playarena/models"
	"playarena/utils"

	"github.com/go-redis/redis/v8"
)

// RedisLeaseManager implements LeaseManager on a dedicated Redis DB.
// SET NX with an expiry gives the required atomic
// "acquire-if-absent with TTL" in a single round trip.
type RedisLeaseManager struct {
	Client     *redis.Client
	SlotTTL    time.Duration
	BookingTTL time.Duration
}

// NewRedisLeaseManager constructs a lease manager over the given client.
func NewRedisLeaseManager(client *redis.Client, slotTTL, bookingTTL time.Duration) *RedisLeaseManager {
	return &RedisLeaseManager{
		Client:     client,
		SlotTTL:    slotTTL,
		BookingTTL: bookingTTL,
	}
}

func slotLeaseKey(gameType models.GameType, date, startTime string) string {
	return utils.SlotLeasePrefix + string(gameType) + ":" + date + ":" + startTime
}

func bookingLeaseKey(bookingID string) string {
	return utils.BookingLeasePrefix + bookingID
}

// AcquireSlotLease attempts a single non-blocking acquisition of the slot key.
func (m *RedisLeaseManager) AcquireSlotLease(ctx context.Context, gameType models.GameType, date, startTime string) (bool, error) {
	ok, err := m.Client.SetNX(ctx, slotLeaseKey(gameType, date, startTime), "1", m.SlotTTL).Result()
	if err != nil {
		return false, fmt.Errorf("slot lease acquisition failed: %w", err)
	}
	return ok, nil
}

// AcquireBookingLease attempts a single non-blocking acquisition of the booking key.
func (m *RedisLeaseManager) AcquireBookingLease(ctx context.Context, bookingID string) (bool, error) {
	ok, err := m.Client.SetNX(ctx, bookingLeaseKey(bookingID), "1", m.BookingTTL).Result()
	if err != nil {
		return false, fmt.Errorf("booking lease acquisition failed: %w", err)
	}
	return ok, nil
}

// ReleaseBookingLease drops the lease early so the key never stays held
// longer than the guarded mutation.
func (m *RedisLeaseManager) ReleaseBookingLease(ctx context.Context, bookingID string) error {
	if err := m.Client.Del(ctx, bookingLeaseKey(bookingID)).Err(); err != nil {
		return fmt.Errorf("booking lease release failed: %w", err)
	}
	return nil
}
