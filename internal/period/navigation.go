package period

import (
	"sort"

	"github.com/AngelCh415/sdr-funnel/internal/datemath"
)

// CanStepPrev reports whether stepping back from anchor can reach data. Day
// views stop at the first available date; week and month views stay enabled
// while any part of the previous range overlaps the available span.
func CanStepPrev(mode Mode, anchor string, available []string) (bool, error) {
	t, err := datemath.Parse(anchor)
	if err != nil {
		return false, err
	}
	if len(available) == 0 {
		return false, nil
	}
	first := available[0]
	switch mode {
	case Day:
		return anchor > first, nil
	case Week:
		prevEnd := datemath.ShiftDays(datemath.WeekStart(t), -1)
		return datemath.Format(prevEnd) >= first, nil
	case Month:
		prevEnd := datemath.MonthEnd(datemath.ShiftMonths(t, -1))
		return datemath.Format(prevEnd) >= first, nil
	}
	return false, ErrUnknownMode
}

// CanStepNext is the forward counterpart of CanStepPrev.
func CanStepNext(mode Mode, anchor string, available []string) (bool, error) {
	t, err := datemath.Parse(anchor)
	if err != nil {
		return false, err
	}
	if len(available) == 0 {
		return false, nil
	}
	last := available[len(available)-1]
	switch mode {
	case Day:
		return anchor < last, nil
	case Week:
		nextStart := datemath.ShiftDays(datemath.WeekStart(t), 7)
		return datemath.Format(nextStart) <= last, nil
	case Month:
		nextStart := datemath.ShiftMonths(t, 1)
		return datemath.Format(nextStart) <= last, nil
	}
	return false, ErrUnknownMode
}

// Step moves the anchor one range in dir (-1 or +1). Day views hop to the
// neighbouring available date and stay put at either end; week views land on
// a Monday and month views on the first of the month.
func Step(mode Mode, anchor string, dir int, available []string) (string, error) {
	t, err := datemath.Parse(anchor)
	if err != nil {
		return "", err
	}
	switch {
	case dir > 0:
		dir = 1
	case dir < 0:
		dir = -1
	default:
		return anchor, nil
	}
	switch mode {
	case Day:
		return stepDay(anchor, dir, available), nil
	case Week:
		return datemath.Format(datemath.ShiftDays(datemath.WeekStart(t), 7*dir)), nil
	case Month:
		return datemath.Format(datemath.ShiftMonths(t, dir)), nil
	}
	return "", ErrUnknownMode
}

func stepDay(anchor string, dir int, available []string) string {
	i := sort.SearchStrings(available, anchor)
	if dir > 0 {
		if i < len(available) && available[i] == anchor {
			i++
		}
		if i < len(available) {
			return available[i]
		}
		return anchor
	}
	if i > 0 {
		return available[i-1]
	}
	return anchor
}

// Nearest returns the available date closest to date. Ties go to the earlier
// date. With no available dates it returns date unchanged.
func Nearest(date string, available []string) (string, error) {
	t, err := datemath.Parse(date)
	if err != nil {
		return "", err
	}
	best, bestDist := date, int64(-1)
	for _, d := range available {
		at, err := datemath.Parse(d)
		if err != nil {
			continue
		}
		dist := int64(at.Sub(t))
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = d, dist
		}
	}
	return best, nil
}
