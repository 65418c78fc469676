package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/sdr-funnel/internal/datemath"
)

var janDates = []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05"}

func TestResolve(t *testing.T) {
	available := []string{"2023-12-31", "2024-01-02", "2024-01-07", "2024-01-08", "2024-01-31", "2024-02-01"}

	tests := []struct {
		name      string
		mode      Mode
		anchor    string
		wantStart string
		wantEnd   string
		wantDates []string
	}{
		{"day with data", Day, "2024-01-02", "2024-01-02", "2024-01-02", []string{"2024-01-02"}},
		{"day without data", Day, "2024-01-03", "2024-01-03", "2024-01-03", []string{}},
		{"week includes sunday", Week, "2024-01-03", "2024-01-01", "2024-01-07", []string{"2024-01-02", "2024-01-07"}},
		{"week anchored on sunday", Week, "2024-01-07", "2024-01-01", "2024-01-07", []string{"2024-01-02", "2024-01-07"}},
		{"month", Month, "2024-01-15", "2024-01-01", "2024-01-31", []string{"2024-01-02", "2024-01-07", "2024-01-08", "2024-01-31"}},
		{"empty month", Month, "2024-03-10", "2024-03-01", "2024-03-31", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := Resolve(tt.mode, tt.anchor, available)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, r.Start)
			assert.Equal(t, tt.wantEnd, r.End)
			assert.Equal(t, tt.wantDates, r.DatesInRange)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	_, err := Resolve(Week, "2024/01/01", janDates)
	assert.ErrorIs(t, err, datemath.ErrInvalidDate)

	_, err = Resolve(Mode("year"), "2024-01-01", janDates)
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, Day, m)

	m, err = ParseMode(" Week ")
	require.NoError(t, err)
	assert.Equal(t, Week, m)

	_, err = ParseMode("quarter")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestLabel(t *testing.T) {
	l, err := Label(Day, "2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, "05.01.2024", l)

	l, err = Label(Week, "2024-01-03")
	require.NoError(t, err)
	assert.Equal(t, "01.01.2024 - 07.01.2024", l)

	l, err = Label(Month, "2024-02-10")
	require.NoError(t, err)
	assert.Equal(t, "Luty 2024", l)
}
