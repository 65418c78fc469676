package period

import (
	"fmt"
	"time"

	"github.com/AngelCh415/sdr-funnel/internal/datemath"
)

var monthNames = [...]string{
	"Styczeń", "Luty", "Marzec", "Kwiecień", "Maj", "Czerwiec",
	"Lipiec", "Sierpień", "Wrzesień", "Październik", "Listopad", "Grudzień",
}

// Label renders the dashboard heading for a view: 05.01.2024,
// 01.01.2024 - 07.01.2024 or Styczeń 2024.
func Label(mode Mode, anchor string) (string, error) {
	t, err := datemath.Parse(anchor)
	if err != nil {
		return "", err
	}
	switch mode {
	case Day:
		return dotted(t), nil
	case Week:
		return dotted(datemath.WeekStart(t)) + " - " + dotted(datemath.WeekEnd(t)), nil
	case Month:
		return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year()), nil
	}
	return "", ErrUnknownMode
}

func dotted(t time.Time) string { return t.Format("02.01.2006") }
