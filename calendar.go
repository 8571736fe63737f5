package rrule

import "time"

// Horizon is the absolute latest instant the engine will ever produce
// (spec.md §3, §6): 9999-12-31T23:59:59 UTC.
var Horizon = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

var daysInMonthTable = [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// daysInMonth returns the number of days in the given civil month.
func daysInMonth(year int, month time.Month) int {
	if month == time.February && isLeapYear(year) {
		return 29
	}
	return daysInMonthTable[month-1]
}

func daysInYear(year int) int {
	if isLeapYear(year) {
		return 366
	}
	return 365
}

// weekdayOf returns date's weekday using the Sunday=0 convention
// (spec.md component A), i.e. the same order as time.Weekday.
func weekdayOf(date time.Time) int {
	return int(date.Weekday())
}

// isoWeekdayOf returns date's ISO weekday, Monday=1 .. Sunday=7.
func isoWeekdayOf(date time.Time) int {
	wd := int(date.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// pyWeekday maps a stdlib time.Weekday to the RFC 5545 BYDAY order used by
// Weekday.Day(): Monday=0 .. Sunday=6.
func pyWeekday(wd time.Weekday) int {
	return int((wd + 6) % 7)
}

func pymod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

func divmod(a, b int) (int, int) {
	m := pymod(a, b)
	return (a - m) / b, m
}

// isoWeeksInYear returns the number of ISO-8601 weeks (52 or 53) in year,
// using the standard p(y) = (y + y/4 - y/100 + y/400) mod 7 test: year has
// 53 weeks iff p(y) == 4 or p(y-1) == 3.
func isoWeeksInYear(year int) int {
	p := func(y int) int {
		return pymod(y+y/4-y/100+y/400, 7)
	}
	if p(year) == 4 || p(year-1) == 3 {
		return 53
	}
	return 52
}

// setISOWeek constructs the date for ISO (year, week, weekday), weekday
// being 1..7 (Monday..Sunday), following "the week containing the year's
// first Thursday is week 1" (spec.md component A).
func setISOWeek(year, week, weekday int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	week1Monday := jan4.AddDate(0, 0, -(isoWeekdayOf(jan4) - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7+(weekday-1))
}

// previousWeekdayOnOrBefore returns the closest date with the given weekday
// (Sunday=0 convention) that is <= date.
func previousWeekdayOnOrBefore(date time.Time, weekday int) time.Time {
	diff := pymod(weekdayOf(date)-weekday, 7)
	return date.AddDate(0, 0, -diff)
}

// nextWeekdayOnOrAfter returns the closest date with the given weekday
// (Sunday=0 convention) that is >= date.
func nextWeekdayOnOrAfter(date time.Time, weekday int) time.Time {
	diff := pymod(weekday-weekdayOf(date), 7)
	return date.AddDate(0, 0, diff)
}

type wallUnit int

const (
	unitYears wallUnit = iota
	unitMonths
	unitWeeks
	unitDays
)

// addWall advances dt by n units of the given granularity and re-applies
// anchor's wall-clock time-of-day (spec.md component A). If the resulting
// local time does not exist (a DST spring-forward gap), time.Date's own
// normalization forwards it to the next legal instant; the number of hours
// forwarded is returned so callers can compensate.
func addWall(dt, anchor time.Time, unit wallUnit, n int) (time.Time, int) {
	loc := dt.Location()
	hh, mm, ss := anchor.Hour(), anchor.Minute(), anchor.Second()
	var next time.Time
	switch unit {
	case unitYears:
		next = time.Date(dt.Year()+n, dt.Month(), dt.Day(), hh, mm, ss, 0, loc)
	case unitMonths:
		totalMonths := int(dt.Month()) - 1 + n
		yy, mm2 := divmod(totalMonths, 12)
		next = time.Date(dt.Year()+yy, time.Month(mm2+1), dt.Day(), hh, mm, ss, 0, loc)
	case unitWeeks:
		next = time.Date(dt.Year(), dt.Month(), dt.Day()+7*n, hh, mm, ss, 0, loc)
	case unitDays:
		next = time.Date(dt.Year(), dt.Month(), dt.Day()+n, hh, mm, ss, 0, loc)
	}
	hoursSkipped := 0
	if next.Hour() != hh {
		hoursSkipped = pymod(next.Hour()-hh, 24)
	}
	return next, hoursSkipped
}

// stepHourWall advances t by delta hours using wall-clock field
// reconstruction rather than a real time.Duration add, so that a DST gap
// shows up as a jump in the Hour() field instead of silently vanishing into
// elapsed real time (spec.md §4.E "Hourly", §8 scenario (f)).
func stepHourWall(t time.Time, delta int) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h+delta, mi, s, 0, t.Location())
}

func stepMinuteWall(t time.Time, delta int) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi+delta, s, 0, t.Location())
}

func stepSecondWall(t time.Time, delta int) time.Time {
	y, mo, d := t.Date()
	h, mi, s := t.Clock()
	return time.Date(y, mo, d, h, mi, s+delta, 0, t.Location())
}
