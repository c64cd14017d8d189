package domain

import (
	"strings"
	"time"

	"github.com/foodiehq/foodie/pkg/idx"
)

// Weekday is the lowercase day name used in schedules and URLs.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// Weekdays lists all days in schedule order.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseWeekday normalizes and validates a day name.
func ParseWeekday(s string) (Weekday, bool) {
	day := Weekday(strings.ToLower(strings.TrimSpace(s)))
	for _, d := range Weekdays {
		if d == day {
			return day, true
		}
	}
	return "", false
}

// Default schedule seeded for new vendors: closed, 09:00-19:00.
const (
	DefaultOpenFrom = "09:00:00"
	DefaultOpenTo   = "19:00:00"
)

// OpenHours is one vendor's schedule entry for a single weekday.
// Times are wall-clock strings in HH:MM:SS form; the fixed width makes
// lexicographic comparison agree with chronological order.
type OpenHours struct {
	ID        idx.ID
	OrgID     idx.ID
	Day       Weekday
	OpenFrom  string
	OpenTo    string
	Closed    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidTimeOfDay reports whether s is a well-formed HH:MM:SS wall-clock time.
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse("15:04:05", s)
	return err == nil
}
