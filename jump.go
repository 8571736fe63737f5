package rrule

import "time"

// freqCoeffDays estimates days-per-unit for each frequency (spec.md
// component G step 1). The approximations for monthly (30d) and yearly
// (365d) are intentional, per spec.md: this is a coarse heuristic, not an
// exact calendar computation.
var freqCoeffDays = map[Frequency]float64{
	Hourly:  1.0 / 24,
	Daily:   1,
	Weekly:  7,
	Monthly: 30,
	Yearly:  365,
}

// jumpToward implements spec.md component G: a coarse-to-fine seek toward
// target, used only by FastForward/FastForwardBefore when the rule has no
// COUNT (the counter must stay exact when COUNT is in effect, so the
// accelerator never runs in that case). It is purely an optimisation: on
// any overshoot or ambiguity it restores the last known cursor and falls
// back to ordinary fine stepping, so its own trajectory is never part of
// this package's observable contract (spec.md §9).
func (it *Iterator) jumpToward(target time.Time) error {
	coeff, ok := freqCoeffDays[it.rule.freq]
	if !ok || coeff <= 0 {
		return nil
	}

	for it.cur.valid && it.cur.current.Before(target) {
		remainingDays := target.Sub(it.cur.current).Hours() / 24
		remaining := remainingDays / coeff / float64(it.rule.interval)
		s := int(remaining / 4)
		if s < 1 {
			s = 1
		}
		if s <= 4 {
			return nil
		}

		prev := it.cur
		prevCounter, prevOpaque := it.counter, it.counterOpaque
		Logger.Debug().Int("jump", s).Time("target", target).Msg("rrule: coarse jump")

		if err := it.Advance(s); err != nil {
			return err
		}
		if !it.cur.valid {
			it.cur = prev
			it.counter, it.counterOpaque = prevCounter, prevOpaque
			return nil
		}
		if !it.cur.current.Before(target) {
			// Overshot: restore the last cursor strictly before target and
			// take one fine step, per spec.md component G step 4.
			it.cur = prev
			it.counter, it.counterOpaque = prevCounter, prevOpaque
			return it.Advance(1)
		}
		it.counterOpaque = true
	}
	return nil
}
