package store

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/AngelCh415/sdr-funnel/internal/ingest"
	"github.com/AngelCh415/sdr-funnel/internal/telemetry"
)

type DateLister interface {
	Dates(ctx context.Context) ([]string, error)
}

// Index is the sorted set of dates that have snapshots.
type Index struct {
	src     DateLister
	log     *slog.Logger
	metrics *telemetry.Metrics

	mu      sync.RWMutex
	dates   []string
	loaded  bool
	onAdded []func(date string)
}

func NewIndex(src DateLister, log *slog.Logger, m *telemetry.Metrics) *Index {
	return &Index{src: src, log: log, metrics: m}
}

// OnAdded registers fn to run for every date a refresh adds to the index.
func (i *Index) OnAdded(fn func(date string)) {
	i.mu.Lock()
	i.onAdded = append(i.onAdded, fn)
	i.mu.Unlock()
}

// Refresh re-reads the index from the source. On error the previous dates
// are kept.
func (i *Index) Refresh(ctx context.Context) error {
	raw, err := i.src.Dates(ctx)
	if err != nil {
		return fmt.Errorf("refresh index: %w", err)
	}
	dates := ingest.NormalizeDates(raw, i.log)

	i.mu.Lock()
	var added []string
	if i.loaded {
		for _, d := range dates {
			if _, found := slices.BinarySearch(i.dates, d); !found {
				added = append(added, d)
			}
		}
	}
	i.dates = dates
	i.loaded = true
	hooks := slices.Clone(i.onAdded)
	i.mu.Unlock()

	for _, d := range added {
		for _, fn := range hooks {
			fn(d)
		}
	}
	i.metrics.IndexDates.Set(float64(len(dates)))
	i.log.Info("index refreshed", slog.Int("dates", len(dates)), slog.Int("added", len(added)))
	return nil
}

// Dates returns a copy of the sorted available dates.
func (i *Index) Dates() []string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return slices.Clone(i.dates)
}

func (i *Index) Loaded() bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.loaded
}

// Latest returns the newest available date.
func (i *Index) Latest() (string, bool) {
	i.mu.RLock()
	defer i.mu.RUnlock()
	if len(i.dates) == 0 {
		return "", false
	}
	return i.dates[len(i.dates)-1], true
}

// Schedule refreshes the index every interval until the returned stop func
// is called.
func (i *Index) Schedule(every time.Duration) (func(), error) {
	s := gocron.NewScheduler(time.UTC)
	_, err := s.Every(every).WaitForSchedule().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), every)
		defer cancel()
		if err := i.Refresh(ctx); err != nil {
			i.log.Warn("scheduled index refresh failed", slog.String("err", err.Error()))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("schedule index refresh: %w", err)
	}
	s.StartAsync()
	return s.Stop, nil
}
