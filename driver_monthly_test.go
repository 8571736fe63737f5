package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyDriverPureCadence(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Monthly,
		DTStart: time.Date(2024, 1, 31, 9, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	got := collect(t, r, 4)
	// February and April have no 31st; the pure-cadence path skips them,
	// matching python-dateutil's "preserve day-of-month" behavior.
	assert.Equal(t, time.January, got[0].Month())
	assert.Equal(t, time.March, got[1].Month())
	assert.Equal(t, time.May, got[2].Month())
	assert.Equal(t, time.July, got[3].Month())
	for _, g := range got {
		assert.Equal(t, 31, g.Day())
	}
}

func TestMonthlyDriverByDayOrdinal(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Monthly,
		DTStart: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		ByDay:   []Weekday{FR.Nth(-1)},
	})
	require.NoError(t, err)
	// got[0] is DTSTART itself (Monday 2024-01-01).
	got := collect(t, r, 4)
	assert.Equal(t, 26, got[1].Day()) // last Friday of Jan 2024
	assert.Equal(t, time.February, got[2].Month())
	assert.Equal(t, 23, got[2].Day()) // last Friday of Feb 2024
	assert.Equal(t, time.March, got[3].Month())
	assert.Equal(t, 29, got[3].Day()) // last Friday of March 2024
}

func TestMonthlyDriverBySetPosLastWeekday(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:     Monthly,
		DTStart:  time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		ByDay:    []Weekday{MO, TU, WE, TH, FR},
		BySetPos: []int{-1},
	})
	require.NoError(t, err)
	// got[0] is DTSTART itself (2024-01-01).
	got := collect(t, r, 2)
	require.Len(t, got, 2)
	assert.Equal(t, 31, got[1].Day()) // last weekday of Jan 2024
}
