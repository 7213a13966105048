package models

import (
	"fmt"
	"time"
)

// Wire formats for slot fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Slot is a half-hour-granularity time window on a given date.
type Slot struct {
	Date      string `bson:"date" json:"date"`           // "2006-01-02"
	StartTime string `bson:"startTime" json:"startTime"` // "15:04"
	EndTime   string `bson:"endTime" json:"endTime"`     // "15:04"
}

// Key returns the identity of the window within a game type's day,
// used for lease keys and cache keys.
func (s Slot) Key() string {
	return s.Date + ":" + s.StartTime
}

// StartAt returns the absolute start instant of the slot in local time.
func (s Slot) StartAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.StartTime, time.Local)
}

// EndAt returns the absolute end instant of the slot in local time.
func (s Slot) EndAt() (time.Time, error) {
	return time.ParseInLocation(DateLayout+" "+TimeLayout, s.Date+" "+s.EndTime, time.Local)
}

// Started reports whether the slot's window has begun at instant now.
func (s Slot) Started(now time.Time) bool {
	start, err := s.StartAt()
	if err != nil {
		return false
	}
	return !now.Before(start)
}

// Ended reports whether the slot's window has fully elapsed at instant now.
func (s Slot) Ended(now time.Time) bool {
	end, err := s.EndAt()
	if err != nil {
		return false
	}
	return now.After(end)
}

// Overlaps reports whether the slot's window intersects [startMin, endMin),
// both expressed as minutes from midnight on the same date.
func (s Slot) Overlaps(startMin, endMin int) bool {
	a, errA := MinutesOfDay(s.StartTime)
	b, errB := MinutesOfDay(s.EndTime)
	if errA != nil || errB != nil {
		return false
	}
	return a < endMin && b > startMin
}

// MinutesOfDay converts an "HH:MM" string to minutes from midnight.
func MinutesOfDay(hhmm string) (int, error) {
	t, err := time.Parse(TimeLayout, hhmm)
	if err != nil {
		return 0, fmt.Errorf("invalid time %q: %w", hhmm, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// Validate checks that the slot is well-formed: parseable date and times,
// start strictly before end, and both on the half-hour grid.
func (s Slot) Validate() error {
	if _, err := time.Parse(DateLayout, s.Date); err != nil {
		return fmt.Errorf("invalid date %q: %w", s.Date, err)
	}
	start, err := MinutesOfDay(s.StartTime)
	if err != nil {
		return err
	}
	end, err := MinutesOfDay(s.EndTime)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("slot start %s must be before end %s", s.StartTime, s.EndTime)
	}
	if start%30 != 0 || end%30 != 0 {
		return fmt.Errorf("slot times must align to 30-minute boundaries")
	}
	// A booking holds exactly one grid window. Every exclusivity layer
	// (slot lease, live-slot re-check, unique index) keys on the start
	// time, so a wider window would escape them.
	if end-start != 30 {
		return fmt.Errorf("slot must span exactly one 30-minute window")
	}
	return nil
}
