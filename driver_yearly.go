package rrule

import (
	"sort"
	"time"
)

// advanceYearly implements spec.md §4.E "Yearly", dispatching on which
// BY-parts the caller originally supplied (Rule.origHasByWeekNo etc, not the
// post-defaulting fields, since normalization always fills byMonth/
// byMonthDay in for pureCadence rules).
func advanceYearly(rule *Rule, c *cursor, amount int) bool {
	if rule.pureCadence && !rule.origHasByMonth {
		step := rule.interval * amount
		startMonth, startDay := rule.dtstart.Month(), rule.dtstart.Day()
		hh, mm, ss := rule.dtstart.Hour(), rule.dtstart.Minute(), rule.dtstart.Second()
		loc := c.current.Location()

		year := c.current.Year() + step
		if startMonth == time.February && startDay == 29 {
			for !isLeapYear(year) {
				year += rule.interval
				if year > 9999 {
					return false
				}
			}
		}
		next := time.Date(year, startMonth, startDay, hh, mm, ss, 0, loc)
		c.current = next
		return !next.After(Horizon)
	}

	var once func(rule *Rule, c *cursor) bool
	switch {
	case rule.origHasByWeekNo:
		once = advanceYearlyByWeekNoOnce
	case rule.origHasByYearDay:
		once = advanceYearlyByYearDayOnce
	default:
		once = advanceYearlyByMonthOnce
	}

	for i := 0; i < amount; i++ {
		if !once(rule, c) {
			return false
		}
	}
	return true
}

// advanceYearlyByMonthOnce covers both "BYMONTH present" and "BYMONTHDAY/BYDAY
// without BYMONTH": when the caller supplied no BYMONTH, the scan simply
// runs across all twelve months, and monthlyCandidates' own day-set logic
// (component D) produces the right result either way.
func advanceYearlyByMonthOnce(rule *Rule, c *cursor) bool {
	months := rule.byMonth
	if len(months) == 0 {
		months = []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}
	}

	year := c.current.Year()
	curMonth := int(c.current.Month())
	cur := Candidate{c.current.Day(), c.current.Hour(), c.current.Minute(), c.current.Second()}

	for {
		for _, m := range months {
			if m < curMonth {
				continue
			}
			cmp := cur
			if m != curMonth {
				cmp = Candidate{}
			}
			for _, cand := range monthlyCandidates(rule, year, time.Month(m)) {
				if cand.greater(cmp) {
					c.current = time.Date(year, time.Month(m), cand.Day, cand.Hour, cand.Minute, cand.Second, 0, c.current.Location())
					return !c.current.After(Horizon)
				}
			}
		}
		year += rule.interval
		curMonth = 0
		cur = Candidate{}
		if year > 9999 {
			if !rule.yearlySkipUpperLimit {
				c.fault = newError(HorizonExceeded, "yearly scan exceeded the representable horizon")
			}
			return false
		}
	}
}

// advanceYearlyByYearDayOnce expands BYYEARDAY (positive counts from Jan 1,
// negative counts back from Dec 31) against the active timeset, scanning
// year by year (spec.md §4.E "Yearly").
func advanceYearlyByYearDayOnce(rule *Rule, c *cursor) bool {
	year := c.current.Year()
	cur := Candidate{c.current.YearDay(), c.current.Hour(), c.current.Minute(), c.current.Second()}

	for {
		for _, cand := range yearlyYearDayCandidates(rule, year) {
			if cand.greater(cur) {
				d := time.Date(year, time.January, 1, 0, 0, 0, 0, c.current.Location()).AddDate(0, 0, cand.Day-1)
				c.current = time.Date(d.Year(), d.Month(), d.Day(), cand.Hour, cand.Minute, cand.Second, 0, c.current.Location())
				return !c.current.After(Horizon)
			}
		}
		year += rule.interval
		cur = Candidate{}
		if year > 9999 {
			if !rule.yearlySkipUpperLimit {
				c.fault = newError(HorizonExceeded, "yearly scan exceeded the representable horizon")
			}
			return false
		}
	}
}

func yearlyYearDayCandidates(rule *Rule, year int) []Candidate {
	n := daysInYear(year)
	dayset := map[int]bool{}
	for _, d := range rule.byYearDay {
		if d > 0 && d <= n {
			dayset[d] = true
		} else if d < 0 {
			if day := n + 1 + d; day >= 1 {
				dayset[day] = true
			}
		}
	}

	var days []int
	for d := range dayset {
		days = append(days, d)
	}
	sort.Ints(days)

	var out []Candidate
	for _, d := range days {
		for _, tod := range rule.timeset {
			out = append(out, Candidate{d, tod.hour, tod.minute, tod.second})
		}
	}
	return filterBySetPos(rule, out)
}

// advanceYearlyByWeekNoOnce expands BYWEEKNO (ISO-8601 week numbers, possibly
// negative) into candidate weeks, then BYDAY within each week (default
// MO-SU) against the active timeset (spec.md §4.E "Yearly", component A's
// ISO week numbering).
func advanceYearlyByWeekNoOnce(rule *Rule, c *cursor) bool {
	year := isoYearOf(c.current)
	cur := Candidate{calendarDayOffset(c.current, year), c.current.Hour(), c.current.Minute(), c.current.Second()}
	haveCur := true

	for {
		for _, cand := range yearlyWeekNoCandidates(rule, year) {
			if !haveCur || cand.greater(cur) {
				d := time.Date(year, time.January, 1, 0, 0, 0, 0, c.current.Location()).AddDate(0, 0, cand.Day-1)
				c.current = time.Date(d.Year(), d.Month(), d.Day(), cand.Hour, cand.Minute, cand.Second, 0, c.current.Location())
				return !c.current.After(Horizon)
			}
		}
		year += rule.interval
		haveCur = false
		if year > 9999 {
			if !rule.yearlySkipUpperLimit {
				c.fault = newError(HorizonExceeded, "yearly scan exceeded the representable horizon")
			}
			return false
		}
	}
}

// isoYearOf returns the ISO-8601 week-numbering year containing t, which can
// differ from t.Year() near a year boundary (spec.md §8 scenario (e):
// 2018-12-31 belongs to ISO year 2019's week 1).
func isoYearOf(t time.Time) int {
	year, _ := t.ISOWeek()
	return year
}

// calendarDayOffset returns the 1-indexed day-of-year t's calendar date
// would occupy if refYear's January 1 were day 1. The result can be <= 0 for
// dates before refYear's January 1, or greater than refYear's day count for
// dates after its December 31 — both are expected for ISO week 1 Mondays
// that spill across the Gregorian year boundary. Both endpoints are pinned
// to UTC midnight so the offset is exact regardless of t's zone/DST.
func calendarDayOffset(t time.Time, refYear int) int {
	ref := time.Date(refYear, time.January, 1, 0, 0, 0, 0, time.UTC)
	same := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return int(same.Sub(ref).Hours()/24) + 1
}

// yearlyWeekNoCandidates expands BYWEEKNO into day-of-year offsets relative
// to year. ISO week 1 of year+1 frequently starts in December of year (and
// ISO week 1 of year itself can start in December of year-1), so candidates
// are not restricted to year's own Gregorian calendar days — offsets outside
// [1, daysInYear(year)] are kept and resolved relative to year's January 1
// by the caller (spec.md §8 scenario (e)).
func yearlyWeekNoCandidates(rule *Rule, year int) []Candidate {
	weeks := isoWeeksInYear(year)
	weekdays := rule.byWeekday
	if len(weekdays) == 0 && len(rule.byNWeekday) == 0 {
		weekdays = []int{0, 1, 2, 3, 4, 5, 6}
	} else {
		for _, wd := range rule.byNWeekday {
			weekdays = append(weekdays, wd.day)
		}
	}

	seen := map[int]bool{}
	var days []int
	for _, wn := range rule.byWeekNo {
		week := wn
		if week < 0 {
			week = weeks + 1 + week
		}
		if week < 1 || week > weeks {
			continue
		}
		for _, wd := range weekdays {
			date := setISOWeek(year, week, wd+1)
			dayOffset := calendarDayOffset(date, year)
			if !seen[dayOffset] {
				seen[dayOffset] = true
				days = append(days, dayOffset)
			}
		}
	}
	sort.Ints(days)

	var out []Candidate
	for _, d := range days {
		for _, tod := range rule.timeset {
			out = append(out, Candidate{d, tod.hour, tod.minute, tod.second})
		}
	}
	return filterBySetPos(rule, out)
}

func filterBySetPos(rule *Rule, out []Candidate) []Candidate {
	if len(rule.bySetPos) == 0 {
		return out
	}
	n := len(out)
	seenIdx := map[int]bool{}
	var filtered []Candidate
	for _, p := range rule.bySetPos {
		var idx int
		if p > 0 {
			idx = p - 1
		} else {
			idx = n + p
		}
		if idx < 0 || idx >= n || seenIdx[idx] {
			continue
		}
		seenIdx[idx] = true
		filtered = append(filtered, out[idx])
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].less(filtered[j]) })
	return filtered
}
