package timeutil

import (
	"fmt"
	"time"
)

var defaultLocation = time.UTC

// ResolveLocation returns the named location with UTC fallback.
func ResolveLocation(timezone string) (*time.Location, bool) {
	if timezone == "" {
		return defaultLocation, true
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return defaultLocation, true
	}
	return loc, false
}

// ClockTime is a time of day without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// AddHours returns the clock time shifted by whole hours, wrapping at midnight.
func (c ClockTime) AddHours(h int) ClockTime {
	hour := (c.Hour + h) % 24
	if hour < 0 {
		hour += 24
	}
	return ClockTime{Hour: hour, Minute: c.Minute}
}

// Before reports whether c reads earlier on the clock than other.
func (c ClockTime) Before(other ClockTime) bool {
	if c.Hour != other.Hour {
		return c.Hour < other.Hour
	}
	return c.Minute < other.Minute
}

// ParseClock parses an "HH:MM" 24-hour string.
func ParseClock(value string) (ClockTime, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return ClockTime{}, fmt.Errorf("unable to parse time of day: %s", value)
	}
	return ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

// ParseDate parses a "YYYY-MM-DD" date in the provided location.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation("2006-01-02", value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("unable to parse date: %s", value)
	}
	return d, nil
}

// At combines a calendar date with a clock time in the date's location.
func At(date time.Time, clock ClockTime) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), clock.Hour, clock.Minute, 0, 0, date.Location())
}
