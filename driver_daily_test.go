package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyDriverPlainInterval(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:     Daily,
		DTStart:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Interval: 2,
	})
	require.NoError(t, err)
	got := collect(t, r, 3)
	want := []int{1, 3, 5}
	for i, d := range want {
		assert.Equal(t, d, got[i].Day())
	}
}

func TestDailyDriverByDayFilter(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC), // Monday
		ByDay:   []Weekday{MO, WE, FR},
	})
	require.NoError(t, err)
	got := collect(t, r, 3)
	assert.Equal(t, 1, got[0].Day())
	assert.Equal(t, 3, got[1].Day())
	assert.Equal(t, 5, got[2].Day())
}

func TestDailyDriverByHourSteps(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC),
		ByHour:  []int{8, 20},
	})
	require.NoError(t, err)
	got := collect(t, r, 3)
	assert.Equal(t, 8, got[0].Hour())
	assert.Equal(t, 20, got[1].Hour())
	assert.Equal(t, 1, got[1].Day())
	assert.Equal(t, 8, got[2].Hour())
	assert.Equal(t, 2, got[2].Day())
}

func TestDailyDriverByMonthFilter(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
		ByMonth: []int{2},
	})
	require.NoError(t, err)
	// got[0] is DTSTART itself; the first BYMONTH-filtered step is got[1].
	got := collect(t, r, 2)
	require.Len(t, got, 2)
	assert.Equal(t, time.February, got[1].Month())
	assert.Equal(t, 1, got[1].Day())
}
