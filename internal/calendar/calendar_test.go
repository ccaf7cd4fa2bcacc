package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsWorkingDay(t *testing.T) {
	holidays := NewHolidaySet([]time.Time{date(2025, time.August, 15)})

	// 2025-08-15 is a Friday but a listed holiday
	assert.False(t, IsWorkingDay(date(2025, time.August, 15), holidays))
	// Saturday and Sunday
	assert.False(t, IsWorkingDay(date(2025, time.August, 16), holidays))
	assert.False(t, IsWorkingDay(date(2025, time.August, 17), holidays))
	// Plain Monday
	assert.True(t, IsWorkingDay(date(2025, time.August, 18), holidays))
	// Nil set behaves as empty
	assert.True(t, IsWorkingDay(date(2025, time.August, 18), nil))
}

func TestMonthBounds(t *testing.T) {
	monthFirst, prevLast, prevFirst := MonthBounds(date(2025, time.August, 21))
	assert.Equal(t, date(2025, time.August, 1), monthFirst)
	assert.Equal(t, date(2025, time.July, 31), prevLast)
	assert.Equal(t, date(2025, time.July, 1), prevFirst)
}

func TestMonthBounds_YearRollover(t *testing.T) {
	monthFirst, prevLast, prevFirst := MonthBounds(date(2026, time.January, 5))
	assert.Equal(t, date(2026, time.January, 1), monthFirst)
	assert.Equal(t, date(2025, time.December, 31), prevLast)
	assert.Equal(t, date(2025, time.December, 1), prevFirst)
}

func TestDaysIn(t *testing.T) {
	assert.Equal(t, 31, DaysIn(date(2025, time.July, 10)))
	assert.Equal(t, 30, DaysIn(date(2025, time.June, 1)))
	assert.Equal(t, 28, DaysIn(date(2025, time.February, 28)))
	assert.Equal(t, 29, DaysIn(date(2024, time.February, 1)))
}

func TestTruncate(t *testing.T) {
	ts := time.Date(2025, time.August, 21, 17, 45, 9, 120, time.UTC)
	assert.Equal(t, date(2025, time.August, 21), Truncate(ts))
}
