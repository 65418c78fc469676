package store

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/AngelCh415/sdr-funnel/internal/ingest"
	"github.com/AngelCh415/sdr-funnel/internal/models"
)

type fakeSource struct {
	mu       sync.Mutex
	records  map[string]*models.DailyRecord
	errs     map[string]error
	dates    []string
	datesErr error
	calls    map[string]int

	started chan string   // receives the date when a fetch begins, if set
	release chan struct{} // fetches block until closed, if set
}

func newFakeSource(recs ...models.DailyRecord) *fakeSource {
	f := &fakeSource{
		records: make(map[string]*models.DailyRecord),
		errs:    make(map[string]error),
		calls:   make(map[string]int),
	}
	for _, r := range recs {
		r := r
		f.records[r.Date] = &r
		f.dates = append(f.dates, r.Date)
	}
	return f
}

func (f *fakeSource) Dates(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.datesErr != nil {
		return nil, f.datesErr
	}
	return append([]string(nil), f.dates...), nil
}

func (f *fakeSource) FetchDay(ctx context.Context, date string) (*models.DailyRecord, error) {
	f.mu.Lock()
	f.calls[date]++
	started, release := f.started, f.release
	f.mu.Unlock()

	if started != nil {
		started <- date
	}
	if release != nil {
		<-release
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.errs[date]; err != nil {
		return nil, err
	}
	rec, ok := f.records[date]
	if !ok {
		return nil, ingest.ErrNotFound
	}
	return rec, nil
}

func (f *fakeSource) callCount(date string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[date]
}

func (f *fakeSource) put(rec models.DailyRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[rec.Date] = &rec
	f.dates = append(f.dates, rec.Date)
}

func record(date string, total int) models.DailyRecord {
	return models.DailyRecord{
		Date:        date,
		GeneratedAt: date + " 06:00",
		Summary:     models.Stats{Metrics: models.Metrics{Total: total}},
	}
}

func discardLogger() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }
