// Package date parses, validates and compares calendar due dates in the
// fixed DD-MM-YYYY form used by task files.
package date

import (
	"fmt"
	"time"

	"github.com/mrz1836/taskbook/internal/clock"
	"github.com/mrz1836/taskbook/internal/constants"
)

// textLen is the length of the canonical DD-MM-YYYY text.
const textLen = 10

// Date is a calendar day with no time-of-day component.
type Date struct {
	Day   int
	Month int
	Year  int
}

// Invalid is the sentinel returned by Parse for any malformed input.
//
//nolint:gochecknoglobals // Sentinel value
var Invalid = Date{}

//nolint:gochecknoglobals // Lookup table
var daysInMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// Parse reads text of exactly the shape DD-MM-YYYY. Any other shape yields
// Invalid; it never returns an error. Parse does not check calendar validity,
// call IsValid for that.
func Parse(text string) Date {
	if len(text) != textLen || text[2] != '-' || text[5] != '-' {
		return Invalid
	}

	day, ok := digits(text[0:2])
	if !ok {
		return Invalid
	}
	month, ok := digits(text[3:5])
	if !ok {
		return Invalid
	}
	year, ok := digits(text[6:10])
	if !ok {
		return Invalid
	}

	return Date{Day: day, Month: month, Year: year}
}

// digits converts an all-ASCII-digit string to an int.
func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// FromTime returns the calendar day of t in t's location.
func FromTime(t time.Time) Date {
	return Date{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}
}

// Today returns the current calendar day according to c.
func Today(c clock.Clock) Date {
	return FromTime(c.Now())
}

// IsLeapYear reports whether year has a 29th of February.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// IsValid reports whether d is a real calendar day within the supported year range.
func (d Date) IsValid() bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	if d.Year < constants.MinYear || d.Year > constants.MaxYear {
		return false
	}

	limit := daysInMonth[d.Month-1]
	if d.Month == 2 && IsLeapYear(d.Year) {
		limit = 29
	}
	return d.Day <= limit
}

// Compare returns -1, 0 or +1 ordering d against other by (year, month, day).
func (d Date) Compare(other Date) int {
	switch {
	case d.Year != other.Year:
		return sign(d.Year - other.Year)
	case d.Month != other.Month:
		return sign(d.Month - other.Month)
	default:
		return sign(d.Day - other.Day)
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

// IsOverdue reports whether d is strictly before today.
// Only meaningful when d.IsValid().
func (d Date) IsOverdue(today Date) bool {
	return d.Compare(today) < 0
}

// String formats d as zero-padded DD-MM-YYYY.
func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.Day, d.Month, d.Year)
}

// Normalize parses text and returns its canonical form, or false when the
// text is not a valid date.
func Normalize(text string) (string, bool) {
	d := Parse(text)
	if !d.IsValid() {
		return "", false
	}
	return d.String(), true
}
