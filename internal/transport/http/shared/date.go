package shared

import (
	"errors"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var errEmptyDate = errors.New("empty date")

// ParseDate accepts YYYY-MM-DD or RFC3339 and returns the calendar day in
// UTC. Time-of-day in RFC3339 input is dropped after converting to the
// caller's stated offset.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, errEmptyDate
	}
	if parsed, err := time.Parse(DateLayout, value); err == nil {
		return parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	y, m, d := parsed.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
}
