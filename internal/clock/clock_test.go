package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock_Now(t *testing.T) {
	c := RealClock{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	assert.False(t, got.Before(before), "clock.Now() should not return time before actual time.Now()")
	assert.False(t, got.After(after), "clock.Now() should not return time after actual time.Now()")
}

func TestFixed_Now(t *testing.T) {
	fixedTime := time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)
	c := Fixed{Time: fixedTime}

	assert.Equal(t, fixedTime, c.Now())
	assert.Equal(t, fixedTime, c.Now())
}

func TestFixedDate(t *testing.T) {
	c := FixedDate(2024, time.February, 29)
	now := c.Now()

	assert.Equal(t, 2024, now.Year())
	assert.Equal(t, time.February, now.Month())
	assert.Equal(t, 29, now.Day())
	assert.Equal(t, 0, now.Hour())
}
