package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AngelCh415/sdr-funnel/internal/models"
)

func TestDrillDownLostTotal(t *testing.T) {
	got := DrillDown([]models.DailyRecord{dayOne(), dayTwo()}, "lost_total", "")

	assert.Equal(t, []string{"Initech", "Hooli", "Tyrell", "Cyberdyne"}, refNames(got))
	assert.Equal(t, []string{"Anna", "Bartek", "Bartek", "Celina"}, refSdrs(got))
	assert.NotContains(t, refNames(got), "Globex")
}

func TestDrillDownRestrictsToSdr(t *testing.T) {
	got := DrillDown([]models.DailyRecord{dayOne(), dayTwo()}, "new_lead", "Anna")
	assert.Equal(t, []string{"Acme", "Globex", "Initech"}, refNames(got))
	for _, d := range got {
		assert.Equal(t, "Anna", d.SdrName)
	}

	got = DrillDown([]models.DailyRecord{dayOne(), dayTwo()}, "mql", "Bartek")
	assert.Equal(t, []string{"Wayne"}, refNames(got))
}

func TestDrillDownMatchesWholeStageNames(t *testing.T) {
	rec := models.DailyRecord{SdrRecords: []models.SdrRecord{{
		Name: "Anna",
		Deals: []models.Deal{
			deal("prefix", "x", "MQL follow-up"),
			deal("exact", "x", "MQL"),
			deal("none", "x"),
		},
	}}}
	got := DrillDown([]models.DailyRecord{rec}, "mql", "")
	require.Len(t, got, 1)
	assert.Equal(t, "exact", got[0].Name)
}

func TestDrillDownUnknownMetric(t *testing.T) {
	got := DrillDown([]models.DailyRecord{dayOne()}, "revenue", "")
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Nil(t, Stages("revenue"))
}

func TestDrillDownDoesNotShareStageSlices(t *testing.T) {
	rec := dayOne()
	got := DrillDown([]models.DailyRecord{rec}, "sql", "")
	require.Len(t, got, 1)
	got[0].StageChanges[0] = "changed"
	assert.Equal(t, "New Lead", rec.SdrRecords[0].Deals[0].StageChanges[0])
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Lost Total", Title("lost_total", ""))
	assert.Equal(t, "Nowe Leady - Anna", Title("new_lead", "Anna"))
	assert.Equal(t, "custom", Title("custom", ""))
}

func refNames(refs []models.DealRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.Name)
	}
	return out
}

func refSdrs(refs []models.DealRef) []string {
	out := make([]string, 0, len(refs))
	for _, r := range refs {
		out = append(out, r.SdrName)
	}
	return out
}
