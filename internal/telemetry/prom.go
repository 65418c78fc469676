// Package telemetry holds the Prometheus collectors shared by the store,
// the dashboard service and the HTTP layer.
package telemetry

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "funnel"

type Metrics struct {
	SnapshotFetches *prometheus.CounterVec
	CacheHits       prometheus.Counter
	IndexDates      prometheus.Gauge
	Aggregation     prometheus.Histogram
	HTTPRequests    *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which is what most tests want.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SnapshotFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_fetch_total",
			Help:      "Daily snapshot fetches against the source, by result.",
		}, []string{"result"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_cache_hits_total",
			Help:      "Snapshot lookups served from the in-process memo.",
		}),
		IndexDates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "index_dates",
			Help:      "Number of dates in the available-dates index.",
		}),
		Aggregation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "aggregation_seconds",
			Help:      "Time spent merging daily snapshots into one view.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method and status code.",
		}, []string{"method", "code"}),
	}
	if reg != nil {
		reg.MustRegister(m.SnapshotFetches, m.CacheHits, m.IndexDates, m.Aggregation, m.HTTPRequests)
	}
	return m
}

// Handler exposes a registry in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// InstrumentHandler counts requests served by next.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.HTTPRequests, next)
}
