// Package datemath is calendar arithmetic over YYYY-MM-DD day keys. All
// values are UTC midnights; weeks start on Monday.
package datemath

import (
	"errors"
	"fmt"
	"time"
)

const Layout = "2006-01-02"

var ErrInvalidDate = errors.New("invalid date")

// Parse reads a YYYY-MM-DD key. Anything else fails with ErrInvalidDate.
func Parse(s string) (time.Time, error) {
	if len(s) != len(Layout) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Valid reports whether s is a well-formed day key.
func Valid(s string) bool {
	_, err := Parse(s)
	return err == nil
}

func Format(t time.Time) string { return t.Format(Layout) }

// Day truncates t to its UTC calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Monday of t's ISO week. Sunday belongs to the week
// that started six days earlier.
func WeekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return ShiftDays(Day(t), 1-wd)
}

func WeekEnd(t time.Time) time.Time { return ShiftDays(WeekStart(t), 6) }

func MonthStart(t time.Time) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func MonthEnd(t time.Time) time.Time {
	// day 0 of the next month normalizes to the last day of this one
	y, m, _ := t.UTC().Date()
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

func ShiftDays(t time.Time, n int) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d+n, 0, 0, 0, 0, time.UTC)
}

// ShiftMonths moves to the first day of the month n months away.
func ShiftMonths(t time.Time, n int) time.Time {
	y, m, _ := t.UTC().Date()
	return time.Date(y, m+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// Key helpers for callers that work on string keys end to end.

func WeekStartKey(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(WeekStart(t)), nil
}

func MonthStartKey(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(MonthStart(t)), nil
}

func MonthEndKey(s string) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(MonthEnd(t)), nil
}

func ShiftDaysKey(s string, n int) (string, error) {
	t, err := Parse(s)
	if err != nil {
		return "", err
	}
	return Format(ShiftDays(t, n)), nil
}
