package models

import "time"

// PlayerScore is one participant's score within a booking's record.
type PlayerScore struct {
	ATTUID string `bson:"attuid" json:"attuid"`
	Score  int    `bson:"score" json:"score"`
}

// ScoreRecord holds all recorded results for one booking. At most one
// record exists per booking; check-ins accumulate provisional +1 entries
// and the creator's final submission is accepted exactly once.
type ScoreRecord struct {
	ID        string        `bson:"id" json:"id"`
	BookingID string        `bson:"bookingId" json:"bookingId"`
	GameType  GameType      `bson:"gameType" json:"gameType"` // denormalized for aggregation
	Scores    []PlayerScore `bson:"scores" json:"scores"`
	Final     bool          `bson:"final" json:"final"` // set once final scores are submitted
	CreatedAt time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// UserScoreTotal is one row of the per-user aggregation: the summed score
// for one attuid within one game type.
type UserScoreTotal struct {
	ATTUID   string   `bson:"attuid" json:"attuid"`
	GameType GameType `bson:"gameType" json:"gameType"`
	Total    int      `bson:"total" json:"total"`
}
