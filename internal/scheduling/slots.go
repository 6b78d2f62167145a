package scheduling

import (
	"strings"
	"time"

	"healthcare-coordination-server/internal/models"
)

// ConcreteSlot is one bookable instant derived from a weekly recurring slot.
type ConcreteSlot struct {
	Instant    time.Time `json:"instant"`
	Label      string    `json:"displayLabel"`
	WeekOffset int       `json:"weekOffset"`
}

// ExpandWeeklySlots derives the concrete bookable instants falling inside
// [start of now's day, windowDays) from a set of weekly recurring slots.
// Instants not strictly after now are discarded. Output is ordered by day
// offset, and within one day by the insertion order of the slots.
func ExpandWeeklySlots(slots []models.WeeklySlot, now time.Time, windowDays int) []ConcreteSlot {
	windowStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var out []ConcreteSlot
	for offset := 0; offset < windowDays; offset++ {
		day := windowStart.AddDate(0, 0, offset)
		weekday := day.Weekday().String()

		for _, slot := range slots {
			if !strings.EqualFold(slot.Day, weekday) {
				continue
			}
			hour, minute, err := ParseClock(slot.StartTime)
			if err != nil {
				continue // malformed template, nothing bookable from it
			}
			instant := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location())
			if !instant.After(now) {
				continue
			}
			out = append(out, ConcreteSlot{
				Instant:    instant,
				Label:      instant.Format("Monday, Jan 2 at 15:04"),
				WeekOffset: offset / 7,
			})
		}
	}
	return out
}

// CoversInstant reports whether the instant falls inside any of the weekly
// recurring slots: same weekday, and clock time within [startTime, endTime).
func CoversInstant(slots []models.WeeklySlot, instant time.Time) bool {
	weekday := instant.Weekday().String()
	instantMinutes := instant.Hour()*60 + instant.Minute()

	for _, slot := range slots {
		if !strings.EqualFold(slot.Day, weekday) {
			continue
		}
		startHour, startMinute, err := ParseClock(slot.StartTime)
		if err != nil {
			continue
		}
		endHour, endMinute, err := ParseClock(slot.EndTime)
		if err != nil {
			continue
		}
		start := startHour*60 + startMinute
		end := endHour*60 + endMinute
		if instantMinutes >= start && instantMinutes < end {
			return true
		}
	}
	return false
}

// ParseClock parses an "HH:MM" wall-clock string.
func ParseClock(s string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, 0, err
	}
	return t.Hour(), t.Minute(), nil
}

// ValidClock reports whether s is a well-formed "HH:MM" string.
func ValidClock(s string) bool {
	_, _, err := ParseClock(s)
	return err == nil
}

// weekday name check used when adding slots; time.Weekday has no parser.
var weekdayNames = map[string]bool{
	"sunday": true, "monday": true, "tuesday": true, "wednesday": true,
	"thursday": true, "friday": true, "saturday": true,
}

// ValidWeekday reports whether s names a day of the week.
func ValidWeekday(s string) bool {
	return weekdayNames[strings.ToLower(s)]
}
