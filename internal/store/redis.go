package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang/snappy"
	"github.com/redis/go-redis/v9"

	"github.com/AngelCh415/sdr-funnel/internal/ingest"
	"github.com/AngelCh415/sdr-funnel/internal/models"
)

const snapshotKeyPrefix = "funnel:snapshot:"

// RedisCache is a read-through cache in front of a Source, shared between
// server instances. Payloads are snappy-compressed JSON. Only present
// snapshots are cached.
type RedisCache struct {
	inner ingest.Source
	rdb   *redis.Client
	ttl   time.Duration
	log   *slog.Logger
}

func NewRedisCache(inner ingest.Source, rdb *redis.Client, ttl time.Duration, log *slog.Logger) *RedisCache {
	return &RedisCache{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func snapshotKey(date string) string { return snapshotKeyPrefix + date }

func (c *RedisCache) Dates(ctx context.Context) ([]string, error) {
	return c.inner.Dates(ctx)
}

func (c *RedisCache) FetchDay(ctx context.Context, date string) (*models.DailyRecord, error) {
	rec, err := c.load(ctx, date)
	switch {
	case err == nil:
		return rec, nil
	case !errors.Is(err, redis.Nil):
		c.log.Warn("snapshot cache read failed", slog.String("date", date), slog.String("err", err.Error()))
	}

	rec, err = c.inner.FetchDay(ctx, date)
	if err != nil {
		return nil, err
	}
	if err := c.save(ctx, date, rec); err != nil {
		c.log.Warn("snapshot cache write failed", slog.String("date", date), slog.String("err", err.Error()))
	}
	return rec, nil
}

func (c *RedisCache) load(ctx context.Context, date string) (*models.DailyRecord, error) {
	b, err := c.rdb.Get(ctx, snapshotKey(date)).Bytes()
	if err != nil {
		return nil, err
	}
	raw, err := snappy.Decode(nil, b)
	if err != nil {
		return nil, fmt.Errorf("decompress cached snapshot: %w", err)
	}
	var rec models.DailyRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return &rec, nil
}

func (c *RedisCache) save(ctx context.Context, date string, rec *models.DailyRecord) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, snapshotKey(date), snappy.Encode(nil, raw), c.ttl).Err()
}
