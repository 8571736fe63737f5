package rrule

import "time"

// advanceWeekly implements spec.md §4.E "Weekly".
func advanceWeekly(rule *Rule, c *cursor, amount int) bool {
	if len(rule.byHour) == 0 && len(rule.byWeekday) == 0 {
		step := rule.interval * amount
		next, _ := addWall(c.current, rule.dtstart, unitWeeks, step)
		c.current = next
		return !next.After(Horizon)
	}
	for i := 0; i < amount; i++ {
		if !advanceWeeklyOnce(rule, c) {
			return false
		}
	}
	return true
}

// advanceWeeklyOnce steps hour-wise (if BYHOUR is active) or day-wise
// otherwise, accepting only cursors whose weekday is in BYDAY and whose
// hour is in BYHOUR. Crossing back to WeekStart (at hour 0, if BYHOUR is
// active) applies the remaining (interval-1) weeks atomically (spec.md
// §4.E).
func advanceWeeklyOnce(rule *Rule, c *cursor) bool {
	for {
		prevWeekday := pyWeekday(c.current.Weekday())
		var next time.Time
		if len(rule.byHour) > 0 {
			next = stepHourWall(c.current, 1)
		} else {
			next, _ = addWall(c.current, rule.dtstart, unitDays, 1)
		}

		nextWeekday := pyWeekday(next.Weekday())
		crossedToWeekStart := nextWeekday == rule.weekStart && prevWeekday != rule.weekStart &&
			(len(rule.byHour) == 0 || next.Hour() == 0)
		if crossedToWeekStart && rule.interval > 1 {
			extra, _ := addWall(next, rule.dtstart, unitWeeks, rule.interval-1)
			next = time.Date(extra.Year(), extra.Month(), extra.Day(), next.Hour(), next.Minute(), next.Second(), 0, next.Location())
		}

		c.current = next
		if next.After(Horizon) {
			return false
		}
		if matchesAny(rule.byWeekday, pyWeekday(next.Weekday())) && matchesAny(rule.byHour, next.Hour()) {
			return true
		}
	}
}
