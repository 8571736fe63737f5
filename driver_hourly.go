package rrule

import "time"

// advanceHourly implements spec.md §4.E "Hourly". It steps by real elapsed
// time (time.Time.Add), not wall-clock field reconstruction, so a DST
// spring-forward gap is observable: adding hours of real time across the
// gap displaces the wall-clock hour, exactly as §8 scenario (f) requires
// (e.g. 00:30 + 3h real, Europe/Amsterdam 2020-03-29, lands on 04:30, not
// the 03:30 a naive field rebuild would produce).
//
// If the combined step exceeds one hour, the difference between the
// expected hour (previous hour + step, mod 24) and the actual hour after
// the real-time add is stored in the cursor's hourJump and undone (as a
// real-time subtraction) at the start of the following call, keeping the
// hourly cadence aligned to its pre-DST schedule. A single-hour step is
// allowed to drift permanently, the way a real wall clock would.
func advanceHourly(rule *Rule, c *cursor, amount int) bool {
	if c.hourJump != 0 {
		c.current = c.current.Add(-time.Duration(c.hourJump) * time.Hour)
		c.hourJump = 0
	}

	step := rule.interval * amount
	expectedHour := pymod(c.current.Hour()+step, 24)
	next := c.current.Add(time.Duration(step) * time.Hour)
	if diff := pymod(next.Hour()-expectedHour, 24); diff != 0 && step > 1 {
		c.hourJump = diff
	}

	for len(rule.byHour) > 0 && !containsInt(rule.byHour, next.Hour()) {
		next = next.Add(time.Hour)
		c.hourJump = 0
	}

	c.current = next
	return !next.After(Horizon)
}

// advanceMinutely is the simple, non-BY-part-bearing sibling of the hourly
// driver: FREQ=MINUTELY has no monthly-expansion analogue in spec.md
// component D, so it steps the minute field directly, skipping forward
// while the result falls outside BYHOUR/BYMINUTE.
func advanceMinutely(rule *Rule, c *cursor, amount int) bool {
	step := rule.interval * amount
	next := stepMinuteWall(c.current, step)
	for !matchesAny(rule.byHour, next.Hour()) || !matchesAny(rule.byMinute, next.Minute()) {
		next = stepMinuteWall(next, 1)
	}
	c.current = next
	return !next.After(Horizon)
}

// advanceSecondly is advanceMinutely's finer sibling.
func advanceSecondly(rule *Rule, c *cursor, amount int) bool {
	step := rule.interval * amount
	next := stepSecondWall(c.current, step)
	for !matchesAny(rule.byHour, next.Hour()) || !matchesAny(rule.byMinute, next.Minute()) || !matchesAny(rule.bySecond, next.Second()) {
		next = stepSecondWall(next, 1)
	}
	c.current = next
	return !next.After(Horizon)
}
