package rrule

import (
	"sort"
	"time"
)

// Candidate is one (day-of-month, hour, minute, second) tuple produced by
// monthly/yearly BY-part expansion (spec.md component D).
type Candidate struct {
	Day, Hour, Minute, Second int
}

func (c Candidate) less(o Candidate) bool {
	if c.Day != o.Day {
		return c.Day < o.Day
	}
	if c.Hour != o.Hour {
		return c.Hour < o.Hour
	}
	if c.Minute != o.Minute {
		return c.Minute < o.Minute
	}
	return c.Second < o.Second
}

func (c Candidate) greater(o Candidate) bool {
	return o.less(c)
}

// monthlyCandidates implements spec.md component D: the sorted,
// de-duplicated, BYSETPOS-filtered list of candidate tuples for (year,
// month).
//
// When BYDAY carries a numeric offset and BYMONTHDAY is also present, the
// two are intersected *after* the offset has picked out its single date —
// e.g. FREQ=MONTHLY;BYDAY=1FR;BYMONTHDAY=1,2,3,4,5,6,7 only produces the
// first Friday of the month when its day-of-month also falls in 1-7. This
// is the behavior spec.md §9 calls out as a surprising-but-intentional open
// question; spec.md §4.D.3 states the intersection explicitly, so it is
// preserved rather than changed to a union.
func monthlyCandidates(rule *Rule, year int, month time.Month) []Candidate {
	dim := daysInMonth(year, month)

	haveBD := len(rule.byWeekday) > 0 || len(rule.byNWeekday) > 0
	var bdSet map[int]bool
	if haveBD {
		bdSet = map[int]bool{}
		weekdayOfDay := func(day int) int {
			return pyWeekday(time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Weekday())
		}
		for _, wd := range rule.byWeekday {
			for day := 1; day <= dim; day++ {
				if weekdayOfDay(day) == wd {
					bdSet[day] = true
				}
			}
		}
		for _, entry := range rule.byNWeekday {
			var matches []int
			for day := 1; day <= dim; day++ {
				if weekdayOfDay(day) == entry.day {
					matches = append(matches, day)
				}
			}
			var idx int
			if entry.n > 0 {
				idx = entry.n - 1
			} else {
				idx = len(matches) + entry.n
			}
			if idx >= 0 && idx < len(matches) {
				bdSet[matches[idx]] = true
			}
		}
	}

	haveBMD := len(rule.byMonthDay) > 0 || len(rule.byNMonthDay) > 0
	var bmdSet map[int]bool
	if haveBMD {
		bmdSet = map[int]bool{}
		for _, d := range rule.byMonthDay {
			if d <= dim {
				bmdSet[d] = true
			}
		}
		for _, d := range rule.byNMonthDay {
			day := dim + 1 + d
			if day >= 1 {
				bmdSet[day] = true
			}
		}
	}

	var days []int
	switch {
	case haveBD && haveBMD:
		for d := range bdSet {
			if bmdSet[d] {
				days = append(days, d)
			}
		}
	case haveBD:
		for d := range bdSet {
			days = append(days, d)
		}
	case haveBMD:
		for d := range bmdSet {
			days = append(days, d)
		}
	default:
		if d := rule.dtstart.Day(); d <= dim {
			days = []int{d}
		}
	}
	sort.Ints(days)

	var out []Candidate
	seen := map[Candidate]bool{}
	for _, d := range days {
		for _, tod := range rule.timeset {
			c := Candidate{d, tod.hour, tod.minute, tod.second}
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].less(out[j]) })

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
