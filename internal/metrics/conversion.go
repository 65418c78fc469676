package metrics

import (
	"strconv"

	"github.com/AngelCh415/sdr-funnel/internal/models"
)

// Conversion formats num/den as "num/den (pct%)" with pct rounded half up, or
// "-" when the denominator is zero.
func Conversion(num, den int) string {
	if den == 0 {
		return "-"
	}
	return strconv.Itoa(num) + "/" + strconv.Itoa(den) + " (" + strconv.Itoa(percent(num, den)) + "%)"
}

// percent is round(num/den*100) computed exactly: floor((200*num + den) / (2*den)).
func percent(num, den int) int {
	a, b := 200*num+den, 2*den
	if b < 0 {
		a, b = -a, -b
	}
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// Conversions derives the three funnel display strings from m.
func Conversions(m models.Metrics) models.Conversions {
	return models.Conversions{
		LeadToMQL: Conversion(m.LeadToMQLCount, m.NewLead),
		MQLToSQL:  Conversion(m.MQLToSQLCount, m.MQL),
		LeadToSQL: Conversion(m.LeadToSQLCount, m.NewLead),
	}
}
