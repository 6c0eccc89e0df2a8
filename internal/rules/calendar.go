package rules

import (
	"fmt"
	"regexp"
	"time"
)

// CooldownDays is the legal wait after a resolved exam attempt before a new
// attempt of the same phase may be scheduled.
const CooldownDays = 15

// DateLayout is the ISO calendar-day format used across the engine.
const DateLayout = "2006-01-02"

var slotTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// DateOnly truncates t to midnight UTC. All cooldown arithmetic works on
// calendar days, never wall-clock instants.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b (negative when b
// precedes a).
func DaysBetween(a, b time.Time) int {
	return int(DateOnly(b).Sub(DateOnly(a)).Hours() / 24)
}

// CooldownEnd returns the first day a new attempt is allowed after an
// attempt resolved on the given day.
func CooldownEnd(resolvedOn time.Time) time.Time {
	return DateOnly(resolvedOn).AddDate(0, 0, CooldownDays)
}

// ParseDate parses an ISO YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("date %q must be YYYY-MM-DD", s)
	}
	return t, nil
}

// ParseSlotTime validates an HH:MM 24-hour slot string and returns it
// unchanged. Slots are compared as exact strings; there is no duration-aware
// overlap detection.
func ParseSlotTime(s string) (string, error) {
	if !slotTimePattern.MatchString(s) {
		return "", fmt.Errorf("time %q must be HH:MM (24-hour)", s)
	}
	return s, nil
}
