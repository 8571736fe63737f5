package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleStringBasic(t *testing.T) {
	opts, err := ParseRuleString("FREQ=WEEKLY;INTERVAL=2;BYDAY=MO,TU;COUNT=5")
	require.NoError(t, err)
	assert.Equal(t, Weekly, opts.Freq)
	assert.Equal(t, 2, opts.Interval)
	assert.Equal(t, 5, opts.Count)
	require.Len(t, opts.ByDay, 2)
	assert.Equal(t, MO.Day(), opts.ByDay[0].Day())
}

func TestParseRuleStringByDayWithOffset(t *testing.T) {
	opts, err := ParseRuleString("FREQ=MONTHLY;BYDAY=-1FR,2MO")
	require.NoError(t, err)
	require.Len(t, opts.ByDay, 2)
	assert.Equal(t, -1, opts.ByDay[0].N())
	assert.Equal(t, FR.Day(), opts.ByDay[0].Day())
	assert.Equal(t, 2, opts.ByDay[1].N())
}

func TestParseRuleStringUntil(t *testing.T) {
	opts, err := ParseRuleString("FREQ=DAILY;UNTIL=20240517T235959Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 17, 23, 59, 59, 0, time.UTC), opts.Until)
}

func TestParseRuleStringWKST(t *testing.T) {
	opts, err := ParseRuleString("FREQ=WEEKLY;WKST=SU")
	require.NoError(t, err)
	assert.Equal(t, SU.Day(), opts.WeekStart.Day())
}

func TestParseRuleStringInvalidCases(t *testing.T) {
	cases := []string{
		"",
		"    ",
		"FREQ",
		"FREQ=NEVER",
		"BYMONTH=",
		"FREQ=WEEKLY;HELLO=WORLD",
		"FREQ=WEEKLY;BYMONTHDAY=X",
		"FREQ=WEEKLY;BYDAY=X",
		"FREQ=WEEKLY;BYDAY=8MO",
		"BYDAY=MO",
	}
	for _, s := range cases {
		_, err := ParseRuleString(s)
		assert.Errorf(t, err, "expected error for %q", s)
	}
}

func TestNewRuleFromString(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	r, err := NewRuleFromString("FREQ=MONTHLY;BYMONTHDAY=1,15", start, true)
	require.NoError(t, err)
	assert.Equal(t, Monthly, r.freq)
	assert.Equal(t, []int{1, 15}, r.byMonthDay)
}

func TestValidateRuleOptionsBySetPosRequiresSource(t *testing.T) {
	_, err := NewRule(RuleOptions{
		Freq:     Monthly,
		DTStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		BySetPos: []int{1},
	})
	require.Error(t, err)
}

func TestValidateRuleOptionsByWeekNoRequiresYearly(t *testing.T) {
	_, err := NewRule(RuleOptions{
		Freq:     Monthly,
		DTStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ByWeekNo: []int{1},
	})
	require.Error(t, err)
}
