package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"

	"github.com/AngelCh415/sdr-funnel/internal/config"
	"github.com/AngelCh415/sdr-funnel/internal/dashboard"
	"github.com/AngelCh415/sdr-funnel/internal/httpx"
	"github.com/AngelCh415/sdr-funnel/internal/ingest"
	"github.com/AngelCh415/sdr-funnel/internal/store"
	"github.com/AngelCh415/sdr-funnel/internal/telemetry"
	"github.com/AngelCh415/sdr-funnel/internal/utils"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		slog.Error("config", slog.String("err", err.Error()))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	src, closeSrc, err := newSource(ctx, cfg, logger)
	if err != nil {
		logger.Error("snapshot source", slog.String("type", cfg.Source.Type), slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer closeSrc()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := telemetry.New(reg)

	st := store.NewMemoryStore(src, logger, m, cfg.FetchConcurrency)
	idx := store.NewIndex(src, logger, m)
	idx.OnAdded(st.Forget)
	if err := idx.Refresh(ctx); err != nil {
		// readyz stays red until a scheduled refresh succeeds
		logger.Warn("initial index load failed", slog.String("err", err.Error()))
	}
	stopRefresh, err := idx.Schedule(cfg.IndexRefresh)
	if err != nil {
		logger.Error("index refresh", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer stopRefresh()

	svc := dashboard.NewService(st, idx, m)
	r := httpx.NewRouter(logger, httpx.Deps{
		Service:        svc,
		Sessions:       dashboard.NewSessions(svc),
		Index:          idx,
		Metrics:        m,
		Gatherer:       reg,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("starting server", slog.String("port", cfg.Port), slog.String("source", cfg.Source.Type))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", slog.String("err", err.Error()))
		os.Exit(1)
	}
}

// newSource builds the configured snapshot source, wrapped in the Redis
// cache when an address is set.
func newSource(ctx context.Context, cfg config.Config, log *slog.Logger) (ingest.Source, func(), error) {
	var (
		src     ingest.Source
		closers []func()
	)
	switch cfg.Source.Type {
	case "file":
		src = ingest.NewFileSource(cfg.Source.Dir)
	case "http":
		if cfg.Source.BaseURL == "" {
			return nil, nil, errors.New("source.base_url is required")
		}
		cl := ingest.NewHTTPClient(cfg.HTTPTimeout)
		src = ingest.NewHTTPSource(cl, cfg.Source.BaseURL, utils.NewBackoff(200*time.Millisecond, 3), log)
	case "s3":
		if cfg.Source.S3Bucket == "" {
			return nil, nil, errors.New("source.s3_bucket is required")
		}
		s3src, err := ingest.NewS3SourceFromConfig(ctx, cfg.Source.S3Bucket, cfg.Source.S3Region, cfg.Source.S3Prefix)
		if err != nil {
			return nil, nil, err
		}
		src = s3src
	case "postgres":
		db, err := ingest.OpenPostgres(ctx, cfg.Source.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, func() { db.Close() })
		src = ingest.NewPostgresSource(db)
	default:
		return nil, nil, fmt.Errorf("unknown source type %q", cfg.Source.Type)
	}

	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Warn("redis unavailable, serving without shared cache", slog.String("err", err.Error()))
			rdb.Close()
		} else {
			closers = append(closers, func() { rdb.Close() })
			src = store.NewRedisCache(src, rdb, cfg.RedisTTL, log)
		}
	}

	return src, func() {
		for _, c := range closers {
			c()
		}
	}, nil
}
