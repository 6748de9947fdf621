package scheduler

import "github.com/noah-isme/uni-timetable-api/internal/models"

var (
	dayNames   = [models.Days]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday"}
	startTimes = [models.SlotsPerDay]string{"09:00", "09:45", "10:45", "11:30", "12:30", "13:15", "14:15", "15:00"}
	endTimes   = [models.SlotsPerDay]string{"09:45", "10:30", "11:30", "12:15", "13:15", "14:00", "15:00", "15:45"}
)

// DayName returns the weekday a slot falls on.
func DayName(slot int) string {
	day := slot / models.SlotsPerDay
	if slot < 0 || day >= len(dayNames) {
		return ""
	}
	return dayNames[day]
}

// Period returns the 1-based period of the slot within its day.
func Period(slot int) int {
	return slot%models.SlotsPerDay + 1
}

// StartTime returns the wall-clock start of the slot.
func StartTime(slot int) string {
	if slot < 0 {
		return ""
	}
	return startTimes[slot%models.SlotsPerDay]
}

// EndTime returns the wall-clock end of a session of the given duration starting at slot.
// Sessions that would run past the last period end with it.
func EndTime(slot, duration int) string {
	if slot < 0 {
		return ""
	}
	if duration < 1 {
		duration = 1
	}
	last := slot%models.SlotsPerDay + duration - 1
	if last >= models.SlotsPerDay {
		last = models.SlotsPerDay - 1
	}
	return endTimes[last]
}
