// Package dashboard answers range queries: resolve the dates of a view, load
// their snapshots, merge them, and recover the deals behind a metric.
package dashboard

import (
	"context"
	"time"

	"github.com/AngelCh415/sdr-funnel/internal/datemath"
	"github.com/AngelCh415/sdr-funnel/internal/metrics"
	"github.com/AngelCh415/sdr-funnel/internal/models"
	"github.com/AngelCh415/sdr-funnel/internal/period"
	"github.com/AngelCh415/sdr-funnel/internal/telemetry"
)

// Snapshots loads present snapshots for dates, in the order given.
type Snapshots interface {
	GetMany(ctx context.Context, dates []string) []models.DailyRecord
}

// DateIndex is the sorted list of dates that have snapshots.
type DateIndex interface {
	Dates() []string
	Latest() (string, bool)
}

// Screen is everything a front-end needs to draw one view. View is nil when
// the range has no data, which is different from a view full of zeros.
type Screen struct {
	Mode    period.Mode `json:"mode"`
	Anchor  string      `json:"date"`
	Label   string      `json:"label"`
	CanPrev bool        `json:"can_prev"`
	CanNext bool        `json:"can_next"`
	period.Range
	View *models.AggregatedView `json:"view"`
}

type DrillDown struct {
	Metric string           `json:"metric"`
	Sdr    string           `json:"sdr,omitempty"`
	Title  string           `json:"title"`
	Count  int              `json:"count"`
	Deals  []models.DealRef `json:"deals"`
}

type Service struct {
	snaps   Snapshots
	index   DateIndex
	metrics *telemetry.Metrics
	now     func() time.Time
}

func NewService(snaps Snapshots, index DateIndex, m *telemetry.Metrics) *Service {
	return &Service{snaps: snaps, index: index, metrics: m, now: time.Now}
}

// DefaultAnchor is the newest available date, or today when there is none.
func (s *Service) DefaultAnchor() string {
	if d, ok := s.index.Latest(); ok {
		return d
	}
	return datemath.Format(datemath.Day(s.now()))
}

func (s *Service) Dates() []string { return s.index.Dates() }

// View resolves, loads and aggregates the view of mode around anchor.
func (s *Service) View(ctx context.Context, mode period.Mode, anchor string) (*Screen, error) {
	sc, _, err := s.load(ctx, mode, anchor)
	return sc, err
}

// DrillDown lists the deals behind metric within the view of mode around
// anchor, optionally for one SDR only.
func (s *Service) DrillDown(ctx context.Context, mode period.Mode, anchor, metric, sdr string) (*DrillDown, error) {
	r, err := period.Resolve(mode, anchor, s.index.Dates())
	if err != nil {
		return nil, err
	}
	return drillDown(s.snaps.GetMany(ctx, r.DatesInRange), metric, sdr), nil
}

func drillDown(records []models.DailyRecord, metric, sdr string) *DrillDown {
	deals := metrics.DrillDown(records, metric, sdr)
	return &DrillDown{
		Metric: metric,
		Sdr:    sdr,
		Title:  metrics.Title(metric, sdr),
		Count:  len(deals),
		Deals:  deals,
	}
}

// load returns the screen together with the raw records it was built from.
func (s *Service) load(ctx context.Context, mode period.Mode, anchor string) (*Screen, []models.DailyRecord, error) {
	dates := s.index.Dates()
	r, err := period.Resolve(mode, anchor, dates)
	if err != nil {
		return nil, nil, err
	}
	sc := &Screen{Mode: mode, Anchor: anchor, Range: r}
	if sc.Label, err = period.Label(mode, anchor); err != nil {
		return nil, nil, err
	}
	if sc.CanPrev, err = period.CanStepPrev(mode, anchor, dates); err != nil {
		return nil, nil, err
	}
	if sc.CanNext, err = period.CanStepNext(mode, anchor, dates); err != nil {
		return nil, nil, err
	}

	records := s.snaps.GetMany(ctx, r.DatesInRange)
	start := time.Now()
	sc.View = metrics.Aggregate(records)
	s.metrics.Aggregation.Observe(time.Since(start).Seconds())
	return sc, records, nil
}
