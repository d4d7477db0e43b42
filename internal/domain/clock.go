package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClock converts an "HH:MM" string to minute of day.
// Example: "08:00" -> 480. Anything but exactly two digit-only fields is
// rejected, so "08:00:00" and trailing garbage are errors.
func ParseClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("parse clock %q: want HH:MM", s)
	}
	hh, err := parseClockField(parts[0])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	mm, err := parseClockField(parts[1])
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if hh > 23 || mm > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return hh*60 + mm, nil
}

func parseClockField(s string) (int, error) {
	if s == "" {
		return 0, fmt.Errorf("empty field")
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("non-digit field %q", s)
		}
	}
	return strconv.Atoi(s)
}

// FormatClock converts a minute-of-day value to "HH:MM".
func FormatClock(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
