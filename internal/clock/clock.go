// Package clock provides an abstraction for time operations to improve testability.
// Overdue checks ask a Clock for "today" instead of calling time.Now() directly,
// so tests can pin the calendar date.
package clock

import "time"

// Clock is an interface for time operations.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}

// RealClock implements Clock using the actual system time in the local zone.
type RealClock struct{}

// Now returns the current time from the system clock.
func (RealClock) Now() time.Time {
	return time.Now()
}

// Fixed is a Clock that always reports the same instant.
type Fixed struct {
	Time time.Time
}

// Now returns the fixed time.
func (f Fixed) Now() time.Time {
	return f.Time
}

// FixedDate returns a Fixed clock at local midnight of the given calendar day.
func FixedDate(year int, month time.Month, day int) Fixed {
	return Fixed{Time: time.Date(year, month, day, 0, 0, 0, 0, time.Local)}
}

// Ensure implementations satisfy Clock.
var (
	_ Clock = RealClock{}
	_ Clock = Fixed{}
)
