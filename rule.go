package rrule

import (
	"sort"
	"time"
)

// Frequency is the fundamental cadence of a rule. The constants are ordered
// coarsest-to-finest, matching the teacher's convention, so comparisons like
// "freq < Hourly" read as "coarser than hourly".
type Frequency int

const (
	Yearly Frequency = iota
	Monthly
	Weekly
	Daily
	Hourly
	Minutely
	Secondly
)

func (f Frequency) String() string {
	switch f {
	case Yearly:
		return "YEARLY"
	case Monthly:
		return "MONTHLY"
	case Weekly:
		return "WEEKLY"
	case Daily:
		return "DAILY"
	case Hourly:
		return "HOURLY"
	case Minutely:
		return "MINUTELY"
	case Secondly:
		return "SECONDLY"
	default:
		return "UNKNOWN"
	}
}

func parseFrequency(s string) (Frequency, bool) {
	switch s {
	case "YEARLY":
		return Yearly, true
	case "MONTHLY":
		return Monthly, true
	case "WEEKLY":
		return Weekly, true
	case "DAILY":
		return Daily, true
	case "HOURLY":
		return Hourly, true
	case "MINUTELY":
		return Minutely, true
	case "SECONDLY":
		return Secondly, true
	}
	return 0, false
}

// RuleOptions is the caller-supplied, unnormalized construction input for a
// rule (spec.md §3, §6). It is validated and normalized into a *Rule by
// NewRule.
type RuleOptions struct {
	Freq      Frequency `validate:"gte=0,lte=6"`
	DTStart   time.Time
	Interval  int `validate:"gte=0"`
	WeekStart Weekday
	Count     int `validate:"gte=0"`
	Until     time.Time

	BySecond   []int `validate:"dive,gte=0,lte=60"`
	ByMinute   []int `validate:"dive,gte=0,lte=59"`
	ByHour     []int `validate:"dive,gte=0,lte=23"`
	ByDay      []Weekday
	ByMonthDay []int
	ByYearDay  []int
	ByWeekNo   []int
	ByMonth    []int `validate:"dive,gte=1,lte=12"`
	BySetPos   []int

	// YearlySkipUpperLimit controls whether a yearly BYMONTH scan silently
	// clamps at the horizon (true, the default) or raises HorizonExceeded
	// (false). nil means "use the default".
	YearlySkipUpperLimit *bool
}

type timeOfDay struct {
	hour, minute, second int
}

// Rule is the parsed, validated, normalized representation of a recurrence
// rule (spec.md component B). It is immutable once constructed; an Iterator
// reads it freely but never mutates it.
type Rule struct {
	Options RuleOptions // the original, unnormalized caller input

	freq      Frequency
	dtstart   time.Time
	interval  int
	weekStart int // Monday=0..Sunday=6

	hasCount bool
	count    int
	hasUntil bool
	until    time.Time

	bySetPos    []int
	byMonth     []int
	byMonthDay  []int // positive day-of-month values
	byNMonthDay []int // negative day-of-month values, kept negative
	byYearDay   []int
	byWeekNo    []int
	byWeekday   []int     // plain weekdays (BYDAY entries with no ordinal)
	byNWeekday  []Weekday // BYDAY entries carrying a numeric ordinal
	byHour      []int
	byMinute    []int
	bySecond    []int

	timeset []timeOfDay // sorted (hour,minute,second) cross-product, freq < Hourly only

	yearlySkipUpperLimit bool

	// pureCadence is true when the caller supplied none of
	// BYWEEKNO/BYYEARDAY/BYMONTHDAY/BYDAY, i.e. the monthly and yearly
	// drivers take their simple wall-time-preserving path rather than the
	// BY-part expansion path (spec.md §4.E); the yearly driver does so only
	// when BYMONTH was not supplied either. The weekly driver does not read
	// this flag: for it, normalization defaults BYDAY to DTSTART's weekday.
	pureCadence bool
	// origHasByMonth/origHasByWeekNo/origHasByYearDay record which BY-parts
	// the caller actually supplied (before defaulting), since the yearly
	// driver's case split (spec.md §4.E "Yearly") depends on that, not on
	// the post-defaulting fields.
	origHasByMonth   bool
	origHasByWeekNo  bool
	origHasByYearDay bool
}

func boolPtr(b bool) *bool { return &b }

// NewRule validates opts per spec.md §3's invariants and normalizes it into
// a Rule. Validation is eager and atomic: on error, no partially-built Rule
// is returned.
func NewRule(opts RuleOptions) (*Rule, error) {
	if err := validateRuleOptions(opts); err != nil {
		return nil, err
	}

	r := &Rule{Options: opts}
	r.freq = opts.Freq
	if opts.DTStart.IsZero() {
		r.dtstart = time.Now().UTC().Truncate(time.Second)
	} else {
		r.dtstart = opts.DTStart.Truncate(time.Second)
	}
	r.interval = opts.Interval
	if r.interval == 0 {
		r.interval = 1
	}
	r.weekStart = opts.WeekStart.day

	r.hasCount = opts.Count > 0
	r.count = opts.Count

	until := opts.Until
	if !until.IsZero() {
		if until.Before(r.dtstart) {
			// Repaired per spec.md §7: not an error, models the legacy
			// "treat as single occurrence" leniency.
			Logger.Warn().Time("until", until).Time("dtstart", r.dtstart).
				Msg("rrule: UNTIL before DTSTART, clamping to DTSTART")
			until = r.dtstart
		}
		r.hasUntil = true
		r.until = until
	}

	if opts.YearlySkipUpperLimit == nil {
		r.yearlySkipUpperLimit = true
	} else {
		r.yearlySkipUpperLimit = *opts.YearlySkipUpperLimit
	}

	r.pureCadence = len(opts.ByWeekNo) == 0 && len(opts.ByYearDay) == 0 &&
		len(opts.ByMonthDay) == 0 && len(opts.ByDay) == 0
	r.origHasByMonth = len(opts.ByMonth) > 0
	r.origHasByWeekNo = len(opts.ByWeekNo) > 0
	r.origHasByYearDay = len(opts.ByYearDay) > 0

	byMonth := append([]int(nil), opts.ByMonth...)
	byMonthDayIn := append([]int(nil), opts.ByMonthDay...)
	byDay := append([]Weekday(nil), opts.ByDay...)

	if r.pureCadence {
		switch r.freq {
		case Yearly:
			if len(byMonth) == 0 {
				byMonth = []int{int(r.dtstart.Month())}
			}
			byMonthDayIn = []int{r.dtstart.Day()}
		case Monthly:
			byMonthDayIn = []int{r.dtstart.Day()}
		case Weekly:
			byDay = []Weekday{{day: pyWeekday(r.dtstart.Weekday())}}
		}
	}

	r.byMonth = byMonth
	r.byYearDay = append([]int(nil), opts.ByYearDay...)
	r.byWeekNo = append([]int(nil), opts.ByWeekNo...)
	r.bySetPos = append([]int(nil), opts.BySetPos...)

	for _, d := range byMonthDayIn {
		if d > 0 {
			r.byMonthDay = append(r.byMonthDay, d)
		} else if d < 0 {
			r.byNMonthDay = append(r.byNMonthDay, d)
		}
	}

	for _, wd := range byDay {
		if wd.n == 0 || r.freq > Monthly {
			r.byWeekday = append(r.byWeekday, wd.day)
		} else {
			r.byNWeekday = append(r.byNWeekday, wd)
		}
	}

	if len(opts.ByHour) == 0 {
		if r.freq < Hourly {
			r.byHour = []int{r.dtstart.Hour()}
		}
	} else {
		r.byHour = append([]int(nil), opts.ByHour...)
	}
	if len(opts.ByMinute) == 0 {
		if r.freq < Minutely {
			r.byMinute = []int{r.dtstart.Minute()}
		}
	} else {
		r.byMinute = append([]int(nil), opts.ByMinute...)
	}
	if len(opts.BySecond) == 0 {
		if r.freq < Secondly {
			r.bySecond = []int{r.dtstart.Second()}
		}
	} else {
		r.bySecond = append([]int(nil), opts.BySecond...)
	}

	if r.freq < Hourly {
		for _, h := range r.byHour {
			for _, m := range r.byMinute {
				for _, s := range r.bySecond {
					r.timeset = append(r.timeset, timeOfDay{h, m, s})
				}
			}
		}
		sort.Slice(r.timeset, func(i, j int) bool {
			a, b := r.timeset[i], r.timeset[j]
			if a.hour != b.hour {
				return a.hour < b.hour
			}
			if a.minute != b.minute {
				return a.minute < b.minute
			}
			return a.second < b.second
		})
	}

	return r, nil
}

func containsInt(set []int, v int) bool {
	for _, x := range set {
		if x == v {
			return true
		}
	}
	return false
}

// matchesAny reports whether set is empty (no restriction) or v is in set.
func matchesAny(set []int, v int) bool {
	return len(set) == 0 || containsInt(set, v)
}
