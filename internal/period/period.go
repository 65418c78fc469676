// Package period resolves day/week/month views against the sparse set of
// dates that have snapshots, and decides where navigation may go next.
//
// The available-dates slices passed in are expected sorted ascending; keys
// are YYYY-MM-DD so string order is calendar order.
package period

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/AngelCh415/sdr-funnel/internal/datemath"
)

type Mode string

const (
	Day   Mode = "day"
	Week  Mode = "week"
	Month Mode = "month"
)

var ErrUnknownMode = errors.New("unknown view mode")

// ParseMode accepts day, week or month (case-insensitive). Empty means day.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", Day:
		return Day, nil
	case Week:
		return Week, nil
	case Month:
		return Month, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Range is an inclusive span of days plus the available dates inside it.
type Range struct {
	Start        string   `json:"start"`
	End          string   `json:"end"`
	DatesInRange []string `json:"dates_in_range"`
}

// Bounds returns the inclusive calendar span of the view containing anchor.
func Bounds(mode Mode, anchor time.Time) (time.Time, time.Time, error) {
	switch mode {
	case Day:
		d := datemath.Day(anchor)
		return d, d, nil
	case Week:
		return datemath.WeekStart(anchor), datemath.WeekEnd(anchor), nil
	case Month:
		return datemath.MonthStart(anchor), datemath.MonthEnd(anchor), nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
}

// Resolve computes the span for mode around anchor and picks the available
// dates that fall inside it. An empty DatesInRange is a valid result.
func Resolve(mode Mode, anchor string, available []string) (Range, error) {
	t, err := datemath.Parse(anchor)
	if err != nil {
		return Range{}, err
	}
	start, end, err := Bounds(mode, t)
	if err != nil {
		return Range{}, err
	}
	r := Range{Start: datemath.Format(start), End: datemath.Format(end)}
	r.DatesInRange = Within(available, r.Start, r.End)
	return r, nil
}

// Within returns the keys of sorted that lie in [start, end].
func Within(sorted []string, start, end string) []string {
	lo := sort.SearchStrings(sorted, start)
	hi := sort.Search(len(sorted), func(i int) bool { return sorted[i] > end })
	out := make([]string, 0, max(hi-lo, 0))
	if lo < hi {
		out = append(out, sorted[lo:hi]...)
	}
	return out
}
