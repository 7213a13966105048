package lock

import (
	"context"

	"playarena/models"
)

// LeaseManager provides short-lived "acquire-if-absent, auto-expire"
// leases over a cluster-shared keyspace. Acquisition is a single
// non-blocking attempt; a false result means another holder has the key
// and the caller should surface a conflict rather than retry internally.
type LeaseManager interface {
	// AcquireSlotLease guards the critical section between "slot confirmed
	// free" and "booking persisted". It is never released explicitly; the
	// short TTL bounds its lifetime.
	AcquireSlotLease(ctx context.Context, gameType models.GameType, date, startTime string) (bool, error)

	// AcquireBookingLease serializes read-modify-write mutations of one
	// booking. Holders must release via ReleaseBookingLease on every exit
	// path; the TTL is only a crash backstop.
	AcquireBookingLease(ctx context.Context, bookingID string) (bool, error)

	ReleaseBookingLease(ctx context.Context, bookingID string) error
}
