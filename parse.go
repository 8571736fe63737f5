package rrule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// structValidator enforces RuleOptions' struct-tag bounds (spec.md §3's
// simple per-field ranges); the cross-field invariants below it cannot
// express as tags.
var structValidator = validator.New()

// byDayPattern matches one BYDAY token: an optional sign, an optional
// 1-5 ordinal, and a weekday abbreviation (spec.md §4.B/C).
var byDayPattern = regexp.MustCompile(`^([+-]?)([1-5])?(SU|MO|TU|WE|TH|FR|SA)$`)

// recognisedKeys is the full set of rule-part keys spec.md §6 recognises.
var recognisedKeys = map[string]bool{
	"FREQ": true, "INTERVAL": true, "COUNT": true, "UNTIL": true,
	"BYSECOND": true, "BYMINUTE": true, "BYHOUR": true, "BYDAY": true,
	"BYMONTHDAY": true, "BYYEARDAY": true, "BYWEEKNO": true, "BYMONTH": true,
	"BYSETPOS": true, "WKST": true,
}

// ParseRuleString tokenises a "KEY=VAL;KEY=VAL" rule string (values may be
// comma-separated lists) into RuleOptions (spec.md §4.B/C, §6). DTSTART is
// not part of the rule string; set RuleOptions.DTStart separately.
func ParseRuleString(s string) (RuleOptions, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return RuleOptions{}, newError(InvalidRule, "empty rule string")
	}
	m := map[string][]string{}
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 || kv[1] == "" {
			return RuleOptions{}, newError(InvalidRule, "malformed rule part %q", part)
		}
		key := strings.ToUpper(strings.TrimSpace(kv[0]))
		vals := strings.Split(kv[1], ",")
		m[key] = vals
	}
	return ParseRuleMap(m)
}

// ParseRuleMap builds RuleOptions from an already-tokenised mapping of
// rule-part name to its value(s) (spec.md §4.B/C). Keys are case-folded to
// upper case by the caller or here; any key outside spec.md §6's recognised
// set fails with UnknownPart.
func ParseRuleMap(m map[string][]string) (RuleOptions, error) {
	var opts RuleOptions
	seenFreq := false

	for rawKey, vals := range m {
		key := strings.ToUpper(strings.TrimSpace(rawKey))
		if !recognisedKeys[key] {
			return RuleOptions{}, newError(UnknownPart, "unrecognised rule part %q", rawKey)
		}

		flat := flattenValues(vals)
		if len(flat) == 0 {
			return RuleOptions{}, newError(InvalidRule, "%s has no value", key)
		}

		var err error
		switch key {
		case "FREQ":
			if len(flat) != 1 {
				return RuleOptions{}, newError(InvalidRule, "FREQ takes a single value")
			}
			freq, ok := parseFrequency(strings.ToUpper(flat[0]))
			if !ok {
				return RuleOptions{}, newError(InvalidRule, "unknown FREQ %q", flat[0])
			}
			opts.Freq = freq
			seenFreq = true
		case "INTERVAL":
			opts.Interval, err = parseStrictPositiveInt(flat, "INTERVAL")
		case "COUNT":
			opts.Count, err = parseStrictPositiveInt(flat, "COUNT")
		case "UNTIL":
			if len(flat) != 1 {
				err = newError(InvalidRule, "UNTIL takes a single value")
				break
			}
			opts.Until, err = parseUntil(flat[0])
		case "BYSECOND":
			opts.BySecond, err = parseIntList(flat, "BYSECOND", 0, 60, false)
		case "BYMINUTE":
			opts.ByMinute, err = parseIntList(flat, "BYMINUTE", 0, 59, false)
		case "BYHOUR":
			opts.ByHour, err = parseIntList(flat, "BYHOUR", 0, 23, false)
		case "BYDAY":
			opts.ByDay, err = parseByDayList(flat)
		case "BYMONTHDAY":
			opts.ByMonthDay, err = parseIntList(flat, "BYMONTHDAY", 1, 31, true)
		case "BYYEARDAY":
			opts.ByYearDay, err = parseIntList(flat, "BYYEARDAY", 1, 366, true)
		case "BYWEEKNO":
			opts.ByWeekNo, err = parseIntList(flat, "BYWEEKNO", 1, 53, true)
		case "BYMONTH":
			opts.ByMonth, err = parseIntList(flat, "BYMONTH", 1, 12, false)
		case "BYSETPOS":
			opts.BySetPos, err = parseIntList(flat, "BYSETPOS", 1, 366, true)
		case "WKST":
			if len(flat) != 1 {
				err = newError(InvalidRule, "WKST takes a single value")
				break
			}
			day, ok := parseWeekdayName(strings.ToUpper(flat[0]))
			if !ok {
				err = newError(InvalidRule, "invalid WKST %q", flat[0])
				break
			}
			opts.WeekStart = Weekday{day: day}
		}
		if err != nil {
			return RuleOptions{}, err
		}
	}

	if !seenFreq {
		return RuleOptions{}, newError(InvalidRule, "FREQ is required")
	}
	return opts, nil
}

func flattenValues(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func parseStrictPositiveInt(flat []string, name string) (int, error) {
	if len(flat) != 1 {
		return 0, newError(InvalidRule, "%s takes a single value", name)
	}
	n, err := strconv.Atoi(flat[0])
	if err != nil {
		return 0, newError(InvalidRule, "%s must be an integer, got %q", name, flat[0])
	}
	if n <= 0 {
		return 0, newError(InvalidRule, "%s must be greater than 0", name)
	}
	return n, nil
}

func parseIntList(flat []string, name string, lo, hi int, allowNegative bool) ([]int, error) {
	out := make([]int, 0, len(flat))
	for _, tok := range flat {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, newError(InvalidRule, "%s element %q is not an integer", name, tok)
		}
		if n == 0 && allowNegative {
			return nil, newError(InvalidRule, "%s element must not be 0", name)
		}
		inPositiveRange := n >= lo && n <= hi
		inNegativeRange := allowNegative && n <= -lo && n >= -hi
		if !inPositiveRange && !inNegativeRange {
			if allowNegative {
				return nil, newError(InvalidRule, "%s element %d must be between %d and %d or %d and %d", name, n, lo, hi, -lo, -hi)
			}
			return nil, newError(InvalidRule, "%s element %d must be between %d and %d", name, n, lo, hi)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseByDayList(flat []string) ([]Weekday, error) {
	out := make([]Weekday, 0, len(flat))
	for _, tok := range flat {
		upper := strings.ToUpper(tok)
		m := byDayPattern.FindStringSubmatch(upper)
		if m == nil {
			return nil, newError(InvalidRule, "invalid BYDAY element %q", tok)
		}
		sign, numStr, wdName := m[1], m[2], m[3]
		day, _ := parseWeekdayName(wdName)
		n := 0
		if numStr != "" {
			v, _ := strconv.Atoi(numStr)
			if sign == "-" {
				v = -v
			}
			n = v
		}
		out = append(out, Weekday{day: day, n: n})
	}
	return out, nil
}

// untilLayouts mirrors the DATE and DATE-TIME forms RFC 5545 allows for
// UNTIL; the core always treats UNTIL as UTC per spec.md §3.
var untilLayouts = []string{"20060102T150405Z", "20060102T150405", "20060102"}

func parseUntil(s string) (time.Time, error) {
	for _, layout := range untilLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, newError(InvalidRule, "invalid UNTIL value %q", s)
}

// validateRuleOptions enforces spec.md §3's invariants 1-6 plus the range
// checks folded into parseIntList when the rule arrived as a string/map, and
// additionally when a caller builds RuleOptions directly as a struct
// literal (skipping ParseRuleString/ParseRuleMap).
func validateRuleOptions(opts RuleOptions) error {
	if err := structValidator.Struct(opts); err != nil {
		return newError(InvalidRule, "%s", err.Error())
	}

	if opts.Count > 0 && !opts.Until.IsZero() {
		return newError(InvalidRule, "COUNT and UNTIL are mutually exclusive")
	}
	if opts.Interval < 0 {
		return newError(InvalidRule, "INTERVAL must be greater than 0")
	}
	if opts.Count < 0 {
		return newError(InvalidRule, "COUNT must be greater than 0")
	}

	bounds := []struct {
		name          string
		values        []int
		lo, hi        int
		allowNegative bool
	}{
		{"BYSECOND", opts.BySecond, 0, 60, false},
		{"BYMINUTE", opts.ByMinute, 0, 59, false},
		{"BYHOUR", opts.ByHour, 0, 23, false},
		{"BYMONTHDAY", opts.ByMonthDay, 1, 31, true},
		{"BYYEARDAY", opts.ByYearDay, 1, 366, true},
		{"BYWEEKNO", opts.ByWeekNo, 1, 53, true},
		{"BYMONTH", opts.ByMonth, 1, 12, false},
		{"BYSETPOS", opts.BySetPos, 1, 366, true},
	}
	for _, b := range bounds {
		if _, err := parseIntList(intsToStrings(b.values), b.name, b.lo, b.hi, b.allowNegative); err != nil {
			return err
		}
	}

	for _, wd := range opts.ByDay {
		if wd.n != 0 && (wd.n < -5 || wd.n > 5) {
			return newError(InvalidRule, "BYDAY offset must be between 1 and 5 or -1 and -5")
		}
	}

	if len(opts.ByWeekNo) > 0 && opts.Freq != Yearly {
		return newError(InvalidRule, "BYWEEKNO requires FREQ=YEARLY")
	}
	if len(opts.ByYearDay) > 0 && (opts.Freq == Daily || opts.Freq == Weekly || opts.Freq == Monthly) {
		return newError(InvalidRule, "BYYEARDAY is not allowed with FREQ=%s", opts.Freq)
	}
	if len(opts.ByMonthDay) > 0 && opts.Freq == Weekly {
		return newError(InvalidRule, "BYMONTHDAY is not allowed with FREQ=WEEKLY")
	}
	for _, wd := range opts.ByDay {
		if wd.n != 0 && opts.Freq != Monthly && opts.Freq != Yearly && opts.Freq != Weekly {
			return newError(InvalidRule, "BYDAY offsets are only meaningful for FREQ=MONTHLY or FREQ=YEARLY")
		}
	}

	if len(opts.BySetPos) > 0 {
		if opts.Freq != Monthly && opts.Freq != Yearly {
			return newError(InvalidRule, "BYSETPOS requires FREQ=MONTHLY or FREQ=YEARLY")
		}
		hasCandidateSource := len(opts.ByDay) > 0 || len(opts.ByMonthDay) > 0 ||
			len(opts.ByYearDay) > 0 || len(opts.ByWeekNo) > 0 ||
			(opts.Freq == Yearly && len(opts.ByMonth) > 0)
		if !hasCandidateSource {
			return newError(InvalidRule, "BYSETPOS requires another BY-part to generate candidates")
		}
	}

	return nil
}

func intsToStrings(ints []int) []string {
	out := make([]string, len(ints))
	for i, n := range ints {
		out[i] = strconv.Itoa(n)
	}
	return out
}

// NewRuleFromString is the convenience constructor matching spec.md §6's
// construction inputs: a rule string, a DTSTART with timezone, and the
// yearly_skip_upper_limit flag. The flag is always taken from the argument;
// true gives the same behavior as NewRule's default.
func NewRuleFromString(rule string, start time.Time, yearlySkipUpperLimit bool) (*Rule, error) {
	opts, err := ParseRuleString(rule)
	if err != nil {
		return nil, err
	}
	opts.DTStart = start
	opts.YearlySkipUpperLimit = boolPtr(yearlySkipUpperLimit)
	return NewRule(opts)
}
