// Package calendar holds the pure date rules shared by attendance, payroll
// and the dashboard: weekend/holiday classification and month-boundary
// arithmetic. No state, no storage.
package calendar

import "time"

const DateLayout = "2006-01-02"

// DateKey normalizes a timestamp to its calendar-date key.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// HolidaySet is a lookup of holiday dates keyed by DateKey.
type HolidaySet map[string]struct{}

func NewHolidaySet(dates []time.Time) HolidaySet {
	set := make(HolidaySet, len(dates))
	for _, d := range dates {
		set[DateKey(d)] = struct{}{}
	}
	return set
}

func (s HolidaySet) Contains(date time.Time) bool {
	_, ok := s[DateKey(date)]
	return ok
}

// IsWeekend reports whether date falls on Saturday or Sunday.
func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// IsWorkingDay reports whether date is neither a weekend day nor a listed
// holiday.
func IsWorkingDay(date time.Time, holidays HolidaySet) bool {
	if IsWeekend(date) {
		return false
	}
	return !holidays.Contains(date)
}

// MonthBounds returns the first day of the reference date's month together
// with the inclusive first and last day of the preceding calendar month.
// A reference in January rolls the previous month into December of the
// prior year.
func MonthBounds(reference time.Time) (monthFirst, prevLast, prevFirst time.Time) {
	monthFirst = time.Date(reference.Year(), reference.Month(), 1, 0, 0, 0, 0, reference.Location())
	prevLast = monthFirst.AddDate(0, 0, -1)
	prevFirst = time.Date(prevLast.Year(), prevLast.Month(), 1, 0, 0, 0, 0, reference.Location())
	return monthFirst, prevLast, prevFirst
}

// DaysIn returns the number of calendar days in the month containing date.
func DaysIn(date time.Time) int {
	first := time.Date(date.Year(), date.Month(), 1, 0, 0, 0, 0, date.Location())
	return first.AddDate(0, 1, -1).Day()
}

// Truncate drops the time-of-day component.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
