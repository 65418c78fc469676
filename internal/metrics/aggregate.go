package metrics

import (
	"slices"
	"sort"

	"github.com/AngelCh415/sdr-funnel/internal/models"
)

type sdrAcc struct {
	name      string
	stats     models.Metrics
	deals     []models.Deal
	lostDeals []models.LostDeal
}

// Aggregate merges daily records, given in chronological order, into one
// view. It returns nil for an empty input. Inputs are never mutated.
func Aggregate(records []models.DailyRecord) *models.AggregatedView {
	if len(records) == 0 {
		return nil
	}

	var summary models.Metrics
	sdrs := newOrderedMap[string, sdrAcc]()
	reasons := newOrderedMap[string, int]()

	for _, rec := range records {
		summary.Add(rec.Summary.Metrics)

		for _, sdr := range rec.SdrRecords {
			acc := sdrs.upsert(sdr.Name, func() sdrAcc { return sdrAcc{name: sdr.Name} })
			acc.stats.Add(sdr.Stats.Metrics)
			for _, d := range sdr.Deals {
				d.StageChanges = slices.Clone(d.StageChanges)
				acc.deals = append(acc.deals, d)
			}
			acc.lostDeals = append(acc.lostDeals, sdr.LostDeals...)
		}

		for _, lr := range rec.LostReasons {
			*reasons.upsert(lr.Reason, func() int { return 0 }) += lr.Count
		}
	}

	out := &models.AggregatedView{
		GeneratedAt: records[len(records)-1].GeneratedAt,
		Summary:     models.Stats{Metrics: summary, Conversions: Conversions(summary)},
		ActiveSdrs:  sdrs.len(),
		SdrRecords:  make([]models.SdrRecord, 0, sdrs.len()),
		LostReasons: make([]models.ReasonCount, 0, reasons.len()),
	}
	if len(records) == 1 {
		out.Date = records[0].Date
	}

	for _, acc := range sdrs.values() {
		out.SdrRecords = append(out.SdrRecords, models.SdrRecord{
			Name:      acc.name,
			Stats:     models.Stats{Metrics: acc.stats, Conversions: Conversions(acc.stats)},
			Deals:     nonNil(acc.deals),
			LostDeals: nonNil(acc.lostDeals),
		})
	}
	sort.SliceStable(out.SdrRecords, func(i, j int) bool {
		return out.SdrRecords[i].Stats.Total > out.SdrRecords[j].Stats.Total
	})

	reasons.each(func(reason string, count int) {
		out.LostReasons = append(out.LostReasons, models.ReasonCount{Reason: reason, Count: count})
	})
	sort.SliceStable(out.LostReasons, func(i, j int) bool {
		return out.LostReasons[i].Count > out.LostReasons[j].Count
	})

	return out
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
