// File: utils/constants.go
package utils

// Redis key prefixes shared across the arena services.
const (
	// RosterKey is the cached authoritative employee list, refreshed by
	// the external directory sync job.
	RosterKey = "all_authusers"
	// RosterUserPrefix prefixes per-employee roster entries.
	RosterUserPrefix = "authuser:"
	// BlacklistPrefix prefixes revoked-token markers.
	BlacklistPrefix = "blacklist:"
	// SlotCachePrefix prefixes per (gameType, date) availability entries.
	SlotCachePrefix = "slots:"
	// OpenGamesPrefix prefixes cached open arena game listings.
	OpenGamesPrefix = "opengames:"
	// SlotLeasePrefix prefixes creation-time slot leases.
	SlotLeasePrefix = "lease:slot:"
	// BookingLeasePrefix prefixes mutation-time booking leases.
	BookingLeasePrefix = "lease:booking:"
)
