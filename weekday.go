package rrule

// Weekday names a day of the week together with an optional signed ordinal
// (e.g. the 2nd Monday of the month, or the last Friday), matching the
// BYDAY rule-part model of spec.md §3. Day() uses RFC 5545's BYDAY order,
// Monday=0 .. Sunday=6, not Go's native Sunday=0 time.Weekday order.
type Weekday struct {
	day int
	n   int
}

// Nth returns a copy of wd carrying the ordinal n (e.g. MO.Nth(2) is "the
// second Monday"). n is only meaningful for monthly/yearly expansion;
// weekly expansion ignores it.
func (wd Weekday) Nth(n int) Weekday {
	return Weekday{day: wd.day, n: n}
}

// N returns the ordinal carried by wd, or 0 if none was set.
func (wd Weekday) N() int {
	return wd.n
}

// Day returns wd's weekday index, Monday=0 .. Sunday=6.
func (wd Weekday) Day() int {
	return wd.day
}

// Weekday constants in BYDAY order.
var (
	MO = Weekday{day: 0}
	TU = Weekday{day: 1}
	WE = Weekday{day: 2}
	TH = Weekday{day: 3}
	FR = Weekday{day: 4}
	SA = Weekday{day: 5}
	SU = Weekday{day: 6}
)

var weekdayNames = [7]string{"MO", "TU", "WE", "TH", "FR", "SA", "SU"}

func weekdayName(day int) string {
	return weekdayNames[pymod(day, 7)]
}

func parseWeekdayName(s string) (int, bool) {
	for i, name := range weekdayNames {
		if name == s {
			return i, true
		}
	}
	return 0, false
}
