package rrule

import "time"

// advanceDaily implements spec.md §4.E "Daily".
func advanceDaily(rule *Rule, c *cursor, amount int) bool {
	if len(rule.byHour) == 0 && len(rule.byWeekday) == 0 {
		step := rule.interval * amount
		next, _ := addWall(c.current, rule.dtstart, unitDays, step)
		c.current = next
		return !next.After(Horizon)
	}
	for i := 0; i < amount; i++ {
		if !advanceDailyOnce(rule, c) {
			return false
		}
	}
	return true
}

func dailyMatches(rule *Rule, t time.Time) bool {
	return matchesAny(rule.byMonth, int(t.Month())) &&
		matchesAny(rule.byHour, t.Hour()) &&
		matchesAny(rule.byWeekday, pyWeekday(t.Weekday()))
}

// advanceDailyOnce steps one hour at a time (if BYHOUR is active) or one
// interval-sized block of days at a time (otherwise), until weekday, hour,
// and month all match simultaneously. When BYHOUR is active, crossing into
// a new calendar day applies the remaining (interval-1) days atomically
// before resuming per-hour stepping (spec.md §4.E).
func advanceDailyOnce(rule *Rule, c *cursor) bool {
	if len(rule.byHour) > 0 {
		for {
			prevDay, prevMonth, prevYear := c.current.Day(), c.current.Month(), c.current.Year()
			next := stepHourWall(c.current, 1)
			if next.Day() != prevDay || next.Month() != prevMonth || next.Year() != prevYear {
				if rule.interval > 1 {
					extra, _ := addWall(next, rule.dtstart, unitDays, rule.interval-1)
					next = time.Date(extra.Year(), extra.Month(), extra.Day(), next.Hour(), next.Minute(), next.Second(), 0, next.Location())
				}
			}
			c.current = next
			if next.After(Horizon) {
				return false
			}
			if dailyMatches(rule, next) {
				return true
			}
		}
	}
	for {
		next, _ := addWall(c.current, rule.dtstart, unitDays, rule.interval)
		c.current = next
		if next.After(Horizon) {
			return false
		}
		if dailyMatches(rule, next) {
			return true
		}
	}
}
