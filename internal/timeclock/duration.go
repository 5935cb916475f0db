// Package timeclock implements the time-accounting rules of the service:
// converting clock-in/clock-out pairs into worked minutes, resolving weekly
// and pay-period boundaries, and aggregating entries by calendar day.
// Everything in this package is a pure function over its inputs.
package timeclock

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	// ErrInvalidTimeFormat is returned when a clock value is not a valid
	// HH:MM time (hours 0-23, minutes 0-59).
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrNonPositiveDuration is returned when start and end resolve to a
	// shift of zero length. A start equal to its end is rejected rather
	// than read as a 24-hour shift.
	ErrNonPositiveDuration = errors.New("non-positive duration")

	// ErrInvalidLunchDuration is returned for a negative lunch deduction.
	ErrInvalidLunchDuration = errors.New("invalid lunch duration")
)

const minutesPerDay = 24 * 60

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)

// ParseClock converts an HH:MM wall-clock value to minutes since midnight.
func ParseClock(value string) (int, error) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
	}
	return hour*60 + minute, nil
}

// ComputeGross derives the gross worked minutes between two clock values.
// An end earlier than the start is treated as crossing midnight once, so
// 22:00-06:00 yields 480 minutes. The returned overnight flag reports that
// wraparound; callers recompute it for display and never persist it.
func ComputeGross(start, end string) (minutes int, overnight bool, err error) {
	s, err := ParseClock(start)
	if err != nil {
		return 0, false, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return 0, false, err
	}
	if e < s {
		e += minutesPerDay
		overnight = true
	}
	if e-s <= 0 {
		return 0, false, fmt.Errorf("%w: %s-%s", ErrNonPositiveDuration, start, end)
	}
	return e - s, overnight, nil
}

// ComputeNet subtracts the lunch deduction from gross minutes. A deduction
// larger than the gross floors the result at zero; a negative deduction is
// an error.
func ComputeNet(gross, lunch int) (int, error) {
	if lunch < 0 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidLunchDuration, lunch)
	}
	net := gross - lunch
	if net < 0 {
		net = 0
	}
	return net, nil
}
