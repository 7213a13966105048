package models

import "time"

// GameType is the closed set of bookable games in the arena.
type GameType string

const (
	GameCarrom      GameType = "carrom"
	GameChess       GameType = "chess"
	GameFoosball    GameType = "foosball"
	GameTableTennis GameType = "table_tennis"
)

// GameTypes lists every valid game type, in a stable order.
var GameTypes = []GameType{GameCarrom, GameChess, GameFoosball, GameTableTennis}

// IsValid reports whether g is one of the known game types.
func (g GameType) IsValid() bool {
	switch g {
	case GameCarrom, GameChess, GameFoosball, GameTableTennis:
		return true
	}
	return false
}

// BookingType distinguishes invite-only games from open arena games.
type BookingType string

const (
	BookingPrivate BookingType = "private" // creator fixes the full player list
	BookingArena   BookingType = "arena"   // joinable by anyone until full
)

// Participant caps per booking type.
const (
	MaxPlayers           = 4
	MinPrivatePlayers    = 2 // creator + at least one colleague
	MaxPrivateColleagues = 3
)

// Player is one participant of a game booking. The first player in a
// booking's Players slice is always the creator.
type Player struct {
	ATTUID    string `bson:"attuid" json:"attuid"`
	CheckedIn bool   `bson:"checkinStatus" json:"checkinStatus"`
}

// GameBooking is the authoritative reservation of one game table for one
// time window. There is no stored "completed" state; completion is always
// computed from the slot window versus the current time.
type GameBooking struct {
	ID          string      `bson:"id" json:"id"`
	GameType    GameType    `bson:"gameType" json:"gameType"`
	BookingType BookingType `bson:"bookingType" json:"bookingType"`
	Players     []Player    `bson:"players" json:"players"`
	Slot        Slot        `bson:"slot" json:"slot"`
	Location    string      `bson:"location" json:"location"` // e.g. "Arena 1"
	CreatedAt   time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time   `bson:"updatedAt" json:"updatedAt"`
}

// Creator returns the attuid of the booking owner (first player).
func (b *GameBooking) Creator() string {
	if len(b.Players) == 0 {
		return ""
	}
	return b.Players[0].ATTUID
}

// HasPlayer reports whether attuid is a participant of the booking.
func (b *GameBooking) HasPlayer(attuid string) bool {
	for _, p := range b.Players {
		if p.ATTUID == attuid {
			return true
		}
	}
	return false
}

// IsFull reports whether the booking has reached the participant cap.
func (b *GameBooking) IsFull() bool {
	return len(b.Players) >= MaxPlayers
}
