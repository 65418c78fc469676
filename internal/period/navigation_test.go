package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func canStep(t *testing.T, mode Mode, anchor string, available []string) (bool, bool) {
	t.Helper()
	prev, err := CanStepPrev(mode, anchor, available)
	require.NoError(t, err)
	next, err := CanStepNext(mode, anchor, available)
	require.NoError(t, err)
	return prev, next
}

func TestDayBounds(t *testing.T) {
	prev, next := canStep(t, Day, "2024-01-05", janDates)
	assert.True(t, prev)
	assert.False(t, next)

	prev, next = canStep(t, Day, "2024-01-01", janDates)
	assert.False(t, prev)
	assert.True(t, next)

	prev, next = canStep(t, Day, "2024-01-03", janDates)
	assert.True(t, prev)
	assert.True(t, next)
}

func TestWeekBoundsUseOverlap(t *testing.T) {
	// data Wed 2024-01-03 .. Tue 2024-01-16
	available := []string{"2024-01-03", "2024-01-10", "2024-01-16"}

	// week of Jan 8: previous week (Jan 1-7) partially overlaps, next week (Jan 15-21) too
	prev, next := canStep(t, Week, "2024-01-10", available)
	assert.True(t, prev)
	assert.True(t, next)

	// week of Jan 1: previous week ends Dec 31, entirely before data
	prev, _ = canStep(t, Week, "2024-01-03", available)
	assert.False(t, prev)

	// week of Jan 15: next week starts Jan 22, entirely after data
	_, next = canStep(t, Week, "2024-01-16", available)
	assert.False(t, next)
}

func TestMonthBoundsUseOverlap(t *testing.T) {
	available := []string{"2024-01-31", "2024-02-10", "2024-03-01"}

	prev, next := canStep(t, Month, "2024-02-20", available)
	assert.True(t, prev)
	assert.True(t, next)

	prev, _ = canStep(t, Month, "2024-01-31", available)
	assert.False(t, prev)

	_, next = canStep(t, Month, "2024-03-01", available)
	assert.False(t, next)

	// March 31 must not overflow when looking at February
	prev, _ = canStep(t, Month, "2024-03-31", []string{"2024-02-29"})
	assert.True(t, prev)
}

func TestNoAvailableDatesDisablesEverything(t *testing.T) {
	for _, m := range []Mode{Day, Week, Month} {
		prev, next := canStep(t, m, "2024-01-01", nil)
		assert.False(t, prev)
		assert.False(t, next)
	}
}

func TestStep(t *testing.T) {
	sparse := []string{"2024-01-01", "2024-01-04", "2024-01-09"}

	tests := []struct {
		name   string
		mode   Mode
		anchor string
		dir    int
		want   string
	}{
		{"day next skips gaps", Day, "2024-01-01", 1, "2024-01-04"},
		{"day prev", Day, "2024-01-09", -1, "2024-01-04"},
		{"day stays at end", Day, "2024-01-09", 1, "2024-01-09"},
		{"day stays at start", Day, "2024-01-01", -1, "2024-01-01"},
		{"day from missing anchor forward", Day, "2024-01-05", 1, "2024-01-09"},
		{"day from missing anchor back", Day, "2024-01-05", -1, "2024-01-04"},
		{"week forward lands on monday", Week, "2024-01-03", 1, "2024-01-08"},
		{"week back", Week, "2024-01-07", -1, "2023-12-25"},
		{"month forward from 31st", Month, "2024-01-31", 1, "2024-02-01"},
		{"month back across year", Month, "2024-01-15", -1, "2023-12-01"},
		{"zero direction", Week, "2024-01-03", 0, "2024-01-03"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Step(tt.mode, tt.anchor, tt.dir, sparse)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNearest(t *testing.T) {
	sparse := []string{"2024-01-01", "2024-01-05", "2024-01-09"}

	got, err := Nearest("2024-01-04", sparse)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", got)

	// equidistant: earlier date wins
	got, err = Nearest("2024-01-07", sparse)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", got)

	got, err = Nearest("2024-01-05", sparse)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", got)

	got, err = Nearest("2024-03-01", nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", got)
}
