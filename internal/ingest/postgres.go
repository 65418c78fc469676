package ingest

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/AngelCh415/sdr-funnel/internal/datemath"
	"github.com/AngelCh415/sdr-funnel/internal/models"
)

// PostgresSource reads snapshots from funnel_snapshots(snapshot_date, payload).
type PostgresSource struct{ db *sql.DB }

func NewPostgresSource(db *sql.DB) *PostgresSource { return &PostgresSource{db: db} }

// OpenPostgres opens and pings a lib/pq connection.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

const (
	qDates    = `SELECT snapshot_date FROM funnel_snapshots ORDER BY snapshot_date`
	qSnapshot = `SELECT payload FROM funnel_snapshots WHERE snapshot_date = $1`
)

func (s *PostgresSource) Dates(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, qDates)
	if err != nil {
		return nil, fmt.Errorf("query snapshot dates: %w", err)
	}
	defer rows.Close()
	out := []string{}
	for rows.Next() {
		var d time.Time
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan snapshot date: %w", err)
		}
		out = append(out, datemath.Format(d))
	}
	return out, rows.Err()
}

func (s *PostgresSource) FetchDay(ctx context.Context, date string) (*models.DailyRecord, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, qSnapshot, date).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query snapshot %s: %w", date, err)
	}
	return decodeRecord(bytes.NewReader(payload), date)
}
