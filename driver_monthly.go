package rrule

import "time"

// advanceMonthly implements spec.md §4.E "Monthly".
func advanceMonthly(rule *Rule, c *cursor, amount int) bool {
	if rule.pureCadence {
		step := rule.interval * amount
		next, _ := addWall(c.current, rule.dtstart, unitMonths, step)
		startDay := rule.dtstart.Day()
		if startDay >= 29 {
			for daysInMonth(next.Year(), next.Month()) < startDay {
				var ok bool
				next, ok = bumpMonths(next, rule, rule.interval)
				if !ok {
					return false
				}
			}
			next = time.Date(next.Year(), next.Month(), startDay, rule.dtstart.Hour(), rule.dtstart.Minute(), rule.dtstart.Second(), 0, next.Location())
		}
		c.current = next
		return !next.After(Horizon)
	}

	for i := 0; i < amount; i++ {
		if !advanceMonthlyOnce(rule, c) {
			return false
		}
	}
	return true
}

func bumpMonths(t time.Time, rule *Rule, n int) (time.Time, bool) {
	next, _ := addWall(t, rule.dtstart, unitMonths, n)
	if next.Year() > 9999 {
		return next, false
	}
	return next, true
}

// advanceMonthlyOnce repeatedly computes the monthly occurrences (component
// D) for the cursor's current month and returns the first tuple strictly
// greater than the cursor; if none, it jumps the cursor forward by
// `interval` months and retries from the first-of-month comparison (spec.md
// §4.E).
func advanceMonthlyOnce(rule *Rule, c *cursor) bool {
	year, month, _ := c.current.Date()
	cur := Candidate{c.current.Day(), c.current.Hour(), c.current.Minute(), c.current.Second()}
	for {
		for _, cand := range monthlyCandidates(rule, year, month) {
			if cand.greater(cur) {
				c.current = time.Date(year, month, cand.Day, cand.Hour, cand.Minute, cand.Second, 0, c.current.Location())
				return !c.current.After(Horizon)
			}
		}
		month += time.Month(rule.interval)
		for month > 12 {
			month -= 12
			year++
		}
		cur = Candidate{}
		if year > 9999 {
			return false
		}
	}
}
