// Package ingest reads the snapshots written by the upstream funnel pipeline:
// an index of available dates plus one JSON document per day.
package ingest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/AngelCh415/sdr-funnel/internal/datemath"
	"github.com/AngelCh415/sdr-funnel/internal/models"
)

// ErrNotFound means the source has no snapshot for the requested date.
var ErrNotFound = errors.New("snapshot not found")

// Source is where daily snapshots live.
type Source interface {
	Dates(ctx context.Context) ([]string, error)
	FetchDay(ctx context.Context, date string) (*models.DailyRecord, error)
}

const indexFile = "index.json"

func dayFile(date string) string { return date + ".json" }

func decodeIndex(r io.Reader) ([]string, error) {
	var idx models.DateIndex
	if err := json.NewDecoder(r).Decode(&idx); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return idx.Dates, nil
}

// decodeRecord reads one day's snapshot. A JSON null body is no snapshot,
// not an empty one.
func decodeRecord(r io.Reader, date string) (*models.DailyRecord, error) {
	var rec *models.DailyRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", date, err)
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.Date == "" {
		rec.Date = date
	}
	return rec, nil
}

// NormalizeDates trims, validates, de-duplicates and sorts index entries.
// Malformed entries are dropped and logged.
func NormalizeDates(raw []string, log *slog.Logger) []string {
	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, d := range raw {
		d = strings.TrimSpace(d)
		if !datemath.Valid(d) {
			if log != nil {
				log.Warn("dropping malformed index date", slog.String("date", d))
			}
			continue
		}
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
