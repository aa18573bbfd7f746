package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	apperrors "fleet-scheduler-backend/internal/errors"
)

// DateFormat is the wire format for calendar dates
const DateFormat = "2006-01-02"

// dateOnly truncates a timestamp to its UTC calendar day
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// sameDay reports whether two timestamps fall on the same calendar day
func sameDay(a, b time.Time) bool {
	return dateOnly(a).Equal(dateOnly(b))
}

// parseClock parses an "HH:MM" time of day
func parseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimeOfDay, s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimeOfDay, s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", apperrors.ErrInvalidTimeOfDay, s)
	}
	return hour, minute, nil
}

// atClock places a time of day on the given calendar date
func atClock(date time.Time, hour, minute int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC)
}
