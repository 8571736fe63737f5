package rrule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, r *Rule, n int) []time.Time {
	t.Helper()
	it := NewIterator(r)
	var out []time.Time
	for i := 0; i < n; i++ {
		cur, ok := it.Current()
		if !ok {
			break
		}
		out = append(out, cur)
		require.NoError(t, it.Advance(1))
	}
	return out
}

func TestIteratorDailyCount(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		Count:   3,
	})
	require.NoError(t, err)

	got := collect(t, r, 10)
	want := []time.Time{
		time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC),
		time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC),
	}
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].Equal(got[i]), "occurrence %d: got %v want %v", i, got[i], want[i])
	}
}

func TestIteratorKeyOpaqueAfterJump(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	it := NewIterator(r)
	k, ok := it.Key()
	assert.True(t, ok)
	assert.Equal(t, 0, k)

	require.NoError(t, it.Advance(5))
	_, ok = it.Key()
	assert.False(t, ok)
}

func TestIteratorResetRewinds(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	it := NewIterator(r)
	require.NoError(t, it.Advance(1))
	require.NoError(t, it.Advance(1))
	it.Reset()
	cur, ok := it.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(r.dtstart))
	k, _ := it.Key()
	assert.Equal(t, 0, k)
}

func TestIteratorIsInfinite(t *testing.T) {
	r, err := NewRule(RuleOptions{Freq: Daily, DTStart: time.Now().UTC()})
	require.NoError(t, err)
	it := NewIterator(r)
	assert.True(t, it.IsInfinite())

	r2, err := NewRule(RuleOptions{Freq: Daily, DTStart: time.Now().UTC(), Count: 1})
	require.NoError(t, err)
	assert.False(t, NewIterator(r2).IsInfinite())
}

func TestIteratorFastForward(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	it := NewIterator(r)
	target := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, it.FastForward(target))
	cur, ok := it.Current()
	require.True(t, ok)
	assert.False(t, cur.Before(target))
}

func TestIteratorFastForwardBefore(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	it := NewIterator(r)
	target := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, it.FastForwardBefore(target))
	cur, ok := it.Current()
	require.True(t, ok)
	assert.True(t, cur.Before(target))
	next := cur.AddDate(0, 0, 1)
	assert.False(t, next.Before(target))
}

func TestIteratorFastForwardBeforePastCountEnd(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:   5,
	})
	require.NoError(t, err)
	it := NewIterator(r)
	target := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) // well past the 5th occurrence
	require.NoError(t, it.FastForwardBefore(target))
	cur, ok := it.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
	k, exact := it.Key()
	assert.True(t, exact)
	assert.Equal(t, 4, k)
}

func TestIteratorFastForwardToEndWithCount(t *testing.T) {
	r, err := NewRule(RuleOptions{
		Freq:    Daily,
		DTStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Count:   5,
	})
	require.NoError(t, err)
	it := NewIterator(r)
	require.NoError(t, it.FastForwardToEnd())
	cur, ok := it.Current()
	require.True(t, ok)
	assert.True(t, cur.Equal(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)))
}

func TestIteratorFastForwardToEndInfiniteErrors(t *testing.T) {
	r, err := NewRule(RuleOptions{Freq: Daily, DTStart: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)})
	require.NoError(t, err)
	it := NewIterator(r)
	err = it.FastForwardToEnd()
	require.Error(t, err)
	assert.True(t, errorIsKind(err, LogicError))
}
