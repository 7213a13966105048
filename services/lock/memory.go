package lock

import (
	"context"
	"sync"
	"time"

	"playarena/models"
)

// MemoryLeaseManager is a single-process LeaseManager for local
// development and tests. It honors the same acquire-if-absent and
// TTL-expiry semantics as the Redis implementation.
type MemoryLeaseManager struct {
	mu         sync.Mutex
	leases     map[string]time.Time
	SlotTTL    time.Duration
	BookingTTL time.Duration
}

// NewMemoryLeaseManager constructs an in-process lease manager.
func NewMemoryLeaseManager(slotTTL, bookingTTL time.Duration) *MemoryLeaseManager {
	return &MemoryLeaseManager{
		leases:     make(map[string]time.Time),
		SlotTTL:    slotTTL,
		BookingTTL: bookingTTL,
	}
}

func (m *MemoryLeaseManager) acquire(key string, ttl time.Duration) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	if expiry, held := m.leases[key]; held && now.Before(expiry) {
		return false
	}
	m.leases[key] = now.Add(ttl)
	return true
}

func (m *MemoryLeaseManager) AcquireSlotLease(_ context.Context, gameType models.GameType, date, startTime string) (bool, error) {
	return m.acquire(slotLeaseKey(gameType, date, startTime), m.SlotTTL), nil
}

func (m *MemoryLeaseManager) AcquireBookingLease(_ context.Context, bookingID string) (bool, error) {
	return m.acquire(bookingLeaseKey(bookingID), m.BookingTTL), nil
}

func (m *MemoryLeaseManager) ReleaseBookingLease(_ context.Context, bookingID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.leases, bookingLeaseKey(bookingID))
	return nil
}
