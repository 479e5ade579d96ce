package utils

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the calendar-date form stored on games and cache keys.
	DateLayout = "2006-01-02"
	// ClockLayout is the 12-hour wall-clock form shown to players.
	ClockLayout = "3:04 PM"
)

// ParseClock parses a wall-clock time in 12-hour form, falling back to
// 24-hour form for clients that send raw <input type="time"> values.
func ParseClock(clock string) (time.Time, error) {
	if t, err := time.Parse(ClockLayout, clock); err == nil {
		return t, nil
	}
	t, err := time.Parse("15:04", clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized time %q", clock)
	}
	return t, nil
}

// NormalizeClock converts an accepted clock string to the stored 12-hour form.
func NormalizeClock(clock string) (string, error) {
	t, err := ParseClock(clock)
	if err != nil {
		return "", err
	}
	return t.Format(ClockLayout), nil
}

// CombineDateTime merges a calendar date and wall-clock time into a single
// instant in the given location.
func CombineDateTime(date, clock string, loc *time.Location) (time.Time, error) {
	norm, err := NormalizeClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+norm, loc)
}

// IsValidGameDate reports whether date falls in [today, today+90] inclusive.
func IsValidGameDate(date string, now time.Time) bool {
	d, err := time.ParseInLocation(DateLayout, date, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	max := today.AddDate(0, 0, 90)
	return !d.Before(today) && !d.After(max)
}

// IsGameInPast reports whether the game's combined date+time is strictly
// before now. Unparseable records are treated as not past so the sweeper
// never deletes something it cannot read.
func IsGameInPast(date, clock string, now time.Time) bool {
	t, err := CombineDateTime(date, clock, now.Location())
	if err != nil {
		return false
	}
	return t.Before(now)
}
