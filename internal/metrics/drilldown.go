package metrics

import (
	"slices"

	"github.com/AngelCh415/sdr-funnel/internal/models"
)

// Stage labels as written by the pipeline into Deal.StageChanges.
const (
	StageNewLead       = "New Lead"
	StageMQL           = "MQL"
	StageSQL           = "Kwalka (SQL)"
	StageWon           = "Sales Won"
	StageLostBeforeMQL = "Lost Before MQL"
	StageSalesLost     = "Sales Lost"
)

var metricStages = map[string][]string{
	"new_lead":        {StageNewLead},
	"mql":             {StageMQL},
	"sql":             {StageSQL},
	"won":             {StageWon},
	"lost_before_mql": {StageLostBeforeMQL},
	"sales_lost":      {StageSalesLost},
	"lost_total":      {StageLostBeforeMQL, StageSalesLost},
}

var metricLabels = map[string]string{
	"new_lead":        "Nowe Leady",
	"mql":             "MQL",
	"sql":             "SQL (Kwalka)",
	"won":             "Sales Won",
	"lost_before_mql": "Lost Before MQL",
	"sales_lost":      "Sales Lost",
	"lost_total":      "Lost Total",
}

// Stages returns the stage labels a metric key counts, or nil for unknown keys.
func Stages(metric string) []string {
	return slices.Clone(metricStages[metric])
}

// Title is the drill-down heading: the metric's label, suffixed with the SDR
// name when the drill-down is restricted to one SDR.
func Title(metric, sdr string) string {
	label, ok := metricLabels[metric]
	if !ok {
		label = metric
	}
	if sdr != "" {
		return label + " - " + sdr
	}
	return label
}

// DrillDown lists the deals behind a metric. Records are walked in order,
// then SDRs, then deals; a deal matches when any of its stage changes is one
// of the metric's stages. An empty sdr matches every SDR.
func DrillDown(records []models.DailyRecord, metric, sdr string) []models.DealRef {
	stages := metricStages[metric]
	out := []models.DealRef{}
	if len(stages) == 0 {
		return out
	}
	for _, rec := range records {
		for _, s := range rec.SdrRecords {
			if sdr != "" && s.Name != sdr {
				continue
			}
			for _, d := range s.Deals {
				if visitedAny(d.StageChanges, stages) {
					d.StageChanges = slices.Clone(d.StageChanges)
					out = append(out, models.DealRef{Deal: d, SdrName: s.Name})
				}
			}
		}
	}
	return out
}

func visitedAny(changes, stages []string) bool {
	for _, st := range stages {
		if slices.Contains(changes, st) {
			return true
		}
	}
	return false
}
