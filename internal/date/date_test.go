package date

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mrz1836/taskbook/internal/clock"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want Date
	}{
		{"canonical", "31-12-2099", Date{Day: 31, Month: 12, Year: 2099}},
		{"leading zeros", "01-02-1970", Date{Day: 1, Month: 2, Year: 1970}},
		{"shape ok but impossible day", "32-01-2024", Date{Day: 32, Month: 1, Year: 2024}},
		{"empty", "", Invalid},
		{"too short", "1-1-2024", Invalid},
		{"too long", "01-01-20245", Invalid},
		{"slash separators", "01/01/2024", Invalid},
		{"iso order", "2024-01-01", Invalid},
		{"letters", "aa-bb-cccc", Invalid},
		{"sign in day", "+1-01-2024", Invalid},
		{"space in year", "01-01-2 24", Invalid},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Parse(tc.in))
		})
	}
}

func TestDate_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"29-02-2024", true},
		{"29-02-2023", false},
		{"29-02-2000", true},
		{"29-02-1900", false},
		{"31-04-2024", false},
		{"30-04-2024", true},
		{"31-12-9999", true},
		{"01-01-1970", true},
		{"31-12-1969", false},
		{"00-01-2024", false},
		{"01-00-2024", false},
		{"01-13-2024", false},
		{"garbage!!!", false},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Parse(tc.in).IsValid())
		})
	}

	assert.False(t, Invalid.IsValid())
}

func TestDate_RoundTrip(t *testing.T) {
	t.Parallel()

	inputs := []string{"01-01-1970", "29-02-2024", "15-06-2030", "31-12-9999", "09-09-2009"}
	for _, in := range inputs {
		d := Parse(in)
		assert.True(t, d.IsValid(), in)
		assert.Equal(t, in, d.String())
		assert.Equal(t, d, Parse(d.String()))
	}
}

func TestDate_IsOverdue(t *testing.T) {
	t.Parallel()

	today := Date{Day: 15, Month: 6, Year: 2024}

	tests := []struct {
		name string
		due  Date
		want bool
	}{
		{"previous year", Date{Day: 31, Month: 12, Year: 2023}, true},
		{"previous month", Date{Day: 30, Month: 5, Year: 2024}, true},
		{"yesterday", Date{Day: 14, Month: 6, Year: 2024}, true},
		{"today is not overdue", today, false},
		{"tomorrow", Date{Day: 16, Month: 6, Year: 2024}, false},
		{"later month earlier day", Date{Day: 1, Month: 7, Year: 2024}, false},
		{"next year", Date{Day: 1, Month: 1, Year: 2025}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.due.IsOverdue(today))
		})
	}
}

func TestToday(t *testing.T) {
	t.Parallel()

	c := clock.Fixed{Time: time.Date(2024, time.March, 5, 23, 59, 0, 0, time.UTC)}
	assert.Equal(t, Date{Day: 5, Month: 3, Year: 2024}, Today(c))
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	got, ok := Normalize("05-03-2024")
	assert.True(t, ok)
	assert.Equal(t, "05-03-2024", got)

	_, ok = Normalize("31-02-2024")
	assert.False(t, ok)
}

func TestIsLeapYear(t *testing.T) {
	t.Parallel()

	assert.True(t, IsLeapYear(2024))
	assert.True(t, IsLeapYear(2000))
	assert.False(t, IsLeapYear(1900))
	assert.False(t, IsLeapYear(2023))
}
