// Package store keeps daily snapshots and the available-dates index in
// memory in front of an ingest.Source.
package store

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/AngelCh415/sdr-funnel/internal/datemath"
	"github.com/AngelCh415/sdr-funnel/internal/ingest"
	"github.com/AngelCh415/sdr-funnel/internal/models"
	"github.com/AngelCh415/sdr-funnel/internal/telemetry"
)

// Fetcher loads one day's snapshot from outside the process.
type Fetcher interface {
	FetchDay(ctx context.Context, date string) (*models.DailyRecord, error)
}

// MemoryStore memoizes one fetch result per date, absence included, for the
// life of the process. Concurrent first requests for a date share one fetch.
type MemoryStore struct {
	src     Fetcher
	log     *slog.Logger
	metrics *telemetry.Metrics
	workers int

	mu    sync.RWMutex
	cache map[string]*models.DailyRecord // nil value: known absent
	gens  map[string]uint64              // bumped by Forget
	group singleflight.Group

	onMiss func(date string) // called before a caller joins or starts a fetch
}

func NewMemoryStore(src Fetcher, log *slog.Logger, m *telemetry.Metrics, workers int) *MemoryStore {
	if workers <= 0 {
		workers = 4
	}
	return &MemoryStore{
		src:     src,
		log:     log,
		metrics: m,
		workers: workers,
		cache:   make(map[string]*models.DailyRecord),
		gens:    make(map[string]uint64),
	}
}

func (s *MemoryStore) lookup(date string) (*models.DailyRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.cache[date]
	return rec, ok
}

// Get returns the snapshot for date, or false when there is none. Source
// failures are logged and reported as absence.
func (s *MemoryStore) Get(ctx context.Context, date string) (*models.DailyRecord, bool) {
	if !datemath.Valid(date) {
		s.log.Warn("snapshot lookup with malformed date", slog.String("date", date))
		return nil, false
	}
	if rec, ok := s.lookup(date); ok {
		s.metrics.CacheHits.Inc()
		return rec, rec != nil
	}

	if s.onMiss != nil {
		s.onMiss(date)
	}

	v, _, _ := s.group.Do(date, func() (any, error) {
		// a caller that lost the race to a finished flight reads the memo
		s.mu.RLock()
		rec, ok := s.cache[date]
		gen := s.gens[date]
		s.mu.RUnlock()
		if ok {
			return rec, nil
		}

		rec = s.fetch(context.WithoutCancel(ctx), date)

		// a Forget during the fetch means the result may be stale; hand it
		// to the callers already waiting but do not memoize it
		s.mu.Lock()
		if s.gens[date] == gen {
			s.cache[date] = rec
		}
		s.mu.Unlock()
		return rec, nil
	})
	rec := v.(*models.DailyRecord)
	return rec, rec != nil
}

func (s *MemoryStore) fetch(ctx context.Context, date string) *models.DailyRecord {
	rec, err := s.src.FetchDay(ctx, date)
	switch {
	case errors.Is(err, ingest.ErrNotFound):
		s.metrics.SnapshotFetches.WithLabelValues("absent").Inc()
		s.log.Debug("snapshot absent", slog.String("date", date))
		return nil
	case err != nil:
		s.metrics.SnapshotFetches.WithLabelValues("error").Inc()
		s.log.Warn("snapshot fetch failed", slog.String("date", date), slog.String("err", err.Error()))
		return nil
	case rec == nil:
		s.metrics.SnapshotFetches.WithLabelValues("absent").Inc()
		return nil
	}
	s.metrics.SnapshotFetches.WithLabelValues("ok").Inc()
	return rec
}

// GetMany fetches dates concurrently and returns the present snapshots in
// the order the dates were given. It returns only after every fetch settled.
func (s *MemoryStore) GetMany(ctx context.Context, dates []string) []models.DailyRecord {
	slots := make([]*models.DailyRecord, len(dates))
	var g errgroup.Group
	g.SetLimit(s.workers)
	for i, d := range dates {
		i, d := i, d
		g.Go(func() error {
			if rec, ok := s.Get(ctx, d); ok {
				slots[i] = rec
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]models.DailyRecord, 0, len(dates))
	for _, rec := range slots {
		if rec != nil {
			out = append(out, *rec)
		}
	}
	return out
}

// Forget drops the memoized result for date so the next Get fetches again.
// A fetch for date still in flight is detached and its result not kept.
func (s *MemoryStore) Forget(date string) {
	s.mu.Lock()
	delete(s.cache, date)
	s.gens[date]++
	s.mu.Unlock()
	s.group.Forget(date)
}
