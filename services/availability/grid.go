package availability

import (
	"fmt"

	"playarena/models"
)

// BuildDayGrid enumerates the fixed bookable windows for one date:
// half-hour steps from openHour:00 to closeHour:00.
func BuildDayGrid(date string, openHour, closeHour int) []models.Slot {
	var grid []models.Slot
	for minute := openHour * 60; minute < closeHour*60; minute += 30 {
		grid = append(grid, models.Slot{
			Date:      date,
			StartTime: fmtMinutes(minute),
			EndTime:   fmtMinutes(minute + 30),
		})
	}
	return grid
}

func fmtMinutes(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
