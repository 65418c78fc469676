package datemath

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustKey(t *testing.T, f func(string) (string, error), in string) string {
	t.Helper()
	out, err := f(in)
	require.NoError(t, err)
	return out
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"monday is its own week start", "2024-01-01", "2024-01-01"},
		{"wednesday", "2024-01-03", "2024-01-01"},
		{"saturday", "2024-01-06", "2024-01-01"},
		{"sunday maps to previous monday", "2024-01-07", "2024-01-01"},
		{"crosses year boundary", "2023-01-01", "2022-12-26"},
		{"crosses month boundary", "2024-03-02", "2024-02-26"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustKey(t, WeekStartKey, tt.in))
		})
	}
}

func TestMonthBounds(t *testing.T) {
	assert.Equal(t, "2024-02-01", mustKey(t, MonthStartKey, "2024-02-15"))
	assert.Equal(t, "2024-02-29", mustKey(t, MonthEndKey, "2024-02-15"))
	assert.Equal(t, "2023-02-28", mustKey(t, MonthEndKey, "2023-02-15"))
	assert.Equal(t, "2024-12-31", mustKey(t, MonthEndKey, "2024-12-01"))
	assert.Equal(t, "2024-04-30", mustKey(t, MonthEndKey, "2024-04-30"))
}

func TestShiftDays(t *testing.T) {
	out, err := ShiftDaysKey("2024-12-30", 3)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", out)

	out, err = ShiftDaysKey("2024-03-01", -1)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", out)
}

func TestShiftMonths(t *testing.T) {
	d, err := Parse("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", Format(ShiftMonths(d, 1)))
	assert.Equal(t, "2023-12-01", Format(ShiftMonths(d, -1)))
	assert.Equal(t, "2025-01-01", Format(ShiftMonths(d, 12)))
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{"", "2024-1-01", "2024-02-30", "01.02.2024", "2024-01-01T00:00:00Z"} {
		_, err := Parse(in)
		assert.True(t, errors.Is(err, ErrInvalidDate), "input %q", in)
		assert.False(t, Valid(in))
	}
	_, err := WeekStartKey("nope")
	assert.ErrorIs(t, err, ErrInvalidDate)
}
