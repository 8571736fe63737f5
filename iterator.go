package rrule

import "time"

// cursor is the iterator's mutable state (spec.md §3 "Iterator state").
// valid=false models the null-cursor sentinel "beyond the representable
// horizon" or otherwise exhausted.
type cursor struct {
	valid    bool
	current  time.Time
	hourJump int        // spec.md §4.E "Hourly": pending DST compensation
	fault    *RuleError // set by a driver that must raise HorizonExceeded
}

// driverFunc advances c by amount intervals of the driver's frequency,
// honoring rule's BY-parts. It returns false when the rule's representable
// horizon (or, for yearly BYMONTH scans with YearlySkipUpperLimit=false,
// the year 9999) has been crossed.
type driverFunc func(rule *Rule, c *cursor, amount int) bool

func driverFor(freq Frequency) driverFunc {
	switch freq {
	case Yearly:
		return advanceYearly
	case Monthly:
		return advanceMonthly
	case Weekly:
		return advanceWeekly
	case Daily:
		return advanceDaily
	case Hourly:
		return advanceHourly
	case Minutely:
		return advanceMinutely
	case Secondly:
		return advanceSecondly
	default:
		return nil
	}
}

// Iterator drives stepwise, lazy expansion of a Rule (spec.md component F).
// It holds the cursor and ordinal counter; the Rule it reads is immutable
// and may be shared by multiple independent Iterators with no locking
// (spec.md §5).
type Iterator struct {
	rule          *Rule
	cur           cursor
	counter       int
	counterOpaque bool
}

// NewIterator constructs an Iterator positioned at rule's DTStart
// (occurrence 0).
func NewIterator(rule *Rule) *Iterator {
	it := &Iterator{rule: rule}
	it.Reset()
	return it
}

// Current returns a defensive copy of the occurrence the cursor currently
// points to, and false if the cursor is exhausted.
func (it *Iterator) Current() (time.Time, bool) {
	if !it.cur.valid {
		return time.Time{}, false
	}
	return it.cur.current, true
}

// Key returns the cursor's 0-based ordinal, or false if it has become
// opaque after a coarse jump (spec.md §3 "counter").
func (it *Iterator) Key() (int, bool) {
	if it.counterOpaque {
		return 0, false
	}
	return it.counter, true
}

// Reset rewinds the cursor to DTStart, counter to 0, and clears hour_jump.
func (it *Iterator) Reset() {
	it.cur = cursor{valid: true, current: it.rule.dtstart}
	it.counter = 0
	it.counterOpaque = false
	if it.rule.hasUntil && it.cur.current.After(it.rule.until) {
		it.cur.valid = false
	}
}

// IsInfinite reports whether neither COUNT nor UNTIL bounds the rule.
func (it *Iterator) IsInfinite() bool {
	return !it.rule.hasCount && !it.rule.hasUntil
}

// Advance moves the cursor forward. n=1 advances one occurrence and
// increments the ordinal counter by one. n>1 instructs the frequency
// driver to combine n intervals into a single arithmetic step (used by the
// jump accelerator); the counter becomes permanently opaque the first time
// this happens, since it no longer reflects an exact occurrence count.
func (it *Iterator) Advance(n int) error {
	if !it.cur.valid {
		return nil
	}
	if n <= 0 {
		n = 1
	}

	driver := driverFor(it.rule.freq)
	ok := driver(it.rule, &it.cur, n)

	if it.cur.fault != nil {
		err := it.cur.fault
		it.cur.fault = nil
		it.cur.valid = false
		return err
	}
	if !ok {
		it.cur.valid = false
		it.cur.current = time.Time{}
		return nil
	}

	if n == 1 && !it.counterOpaque {
		it.counter++
	} else {
		it.counterOpaque = true
	}

	if it.cur.current.After(Horizon) {
		it.cur.valid = false
		return nil
	}
	if it.rule.hasUntil && it.cur.current.After(it.rule.until) {
		it.cur.valid = false
		return nil
	}
	if it.rule.hasCount && !it.counterOpaque && it.counter >= it.rule.count {
		it.cur.valid = false
	}
	return nil
}

// FastForward advances the cursor until Current() >= t (spec.md §4.F),
// engaging the coarse jump accelerator first when the rule has no COUNT.
func (it *Iterator) FastForward(t time.Time) error {
	if !it.cur.valid || !it.cur.current.Before(t) {
		return nil
	}
	if !it.rule.hasCount {
		if err := it.jumpToward(t); err != nil {
			return err
		}
	}
	for it.cur.valid && it.cur.current.Before(t) {
		if err := it.Advance(1); err != nil {
			return err
		}
	}
	return nil
}

// FastForwardBefore advances until Current() >= t, then backs up one step
// to the last occurrence strictly before t. If the cursor is already at or
// past t it is left where it is; if the sequence ends before reaching t,
// the cursor is left on its final occurrence.
func (it *Iterator) FastForwardBefore(t time.Time) error {
	if !it.cur.valid {
		return nil
	}
	prev := it.cur
	prevCounter, prevOpaque := it.counter, it.counterOpaque

	if it.cur.current.Before(t) && !it.rule.hasCount {
		if err := it.jumpToward(t); err != nil {
			return err
		}
	}
	for it.cur.valid && it.cur.current.Before(t) {
		prev = it.cur
		prevCounter, prevOpaque = it.counter, it.counterOpaque
		if err := it.Advance(1); err != nil {
			return err
		}
	}
	if !it.cur.valid || !it.cur.current.Before(t) {
		it.cur = prev
		it.counter, it.counterOpaque = prevCounter, prevOpaque
	}
	return nil
}

// FastForwardToEnd advances to the rule's final valid occurrence. It fails
// with LogicError on an infinite rule (spec.md §4.F, §7).
func (it *Iterator) FastForwardToEnd() error {
	if it.IsInfinite() {
		return newError(LogicError, "fastForwardToEnd called on an infinite rule")
	}
	if it.rule.hasCount {
		return it.FastForwardBefore(Horizon.Add(time.Second))
	}
	return it.FastForwardBefore(it.rule.until.Add(time.Second))
}
