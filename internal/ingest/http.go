package ingest

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/AngelCh415/sdr-funnel/internal/models"
	"github.com/AngelCh415/sdr-funnel/internal/utils"
)

// HTTPSource reads <base>/index.json and <base>/<date>.json, the layout the
// pipeline publishes next to the static dashboard.
type HTTPSource struct {
	c       HTTPClient
	base    string
	backoff utils.Backoff
	log     *slog.Logger
}

func NewHTTPSource(c HTTPClient, baseURL string, b utils.Backoff, log *slog.Logger) *HTTPSource {
	return &HTTPSource{c: c, base: strings.TrimRight(baseURL, "/"), backoff: b, log: log}
}

func (s *HTTPSource) url(name string) string { return s.base + "/" + name }

func (s *HTTPSource) Dates(ctx context.Context) ([]string, error) {
	var dates []string
	err := GetWithRetry(ctx, s.c, s.backoff, s.url(indexFile), func(r io.Reader) error {
		var err error
		dates, err = decodeIndex(r)
		return err
	})
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return dates, nil
}

func (s *HTTPSource) FetchDay(ctx context.Context, date string) (*models.DailyRecord, error) {
	var rec *models.DailyRecord
	err := GetWithRetry(ctx, s.c, s.backoff, s.url(dayFile(date)), func(r io.Reader) error {
		var err error
		rec, err = decodeRecord(r, date)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("snapshot fetched", slog.String("date", date), slog.String("source", "http"))
	return rec, nil
}
