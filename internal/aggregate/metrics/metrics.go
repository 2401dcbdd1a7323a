package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the aggregation engine. Tracks fan-out
// behavior per resource kind and the end-to-end overview path.
type Metrics struct {
	PartitionFetchDuration *prometheus.HistogramVec
	PartitionFailures      *prometheus.CounterVec
	DuplicatesDropped      *prometheus.CounterVec
	OverviewDuration       prometheus.Histogram
	StatsCacheHits         prometheus.Counter
	StatsCacheMisses       prometheus.Counter
}

// New creates a Metrics instance with all engine metrics registered.
func New() *Metrics {
	return &Metrics{
		PartitionFetchDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "workscope_partition_fetch_duration_seconds",
			Help:    "Duration of one per-workspace fetch, labeled by resource kind",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"resource"}),
		PartitionFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "workscope_partition_failures_total",
			Help: "Per-workspace fetches that failed and were isolated",
		}, []string{"resource"}),
		DuplicatesDropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "workscope_duplicates_dropped_total",
			Help: "Items dropped by first-seen-wins merging",
		}, []string{"resource"}),
		OverviewDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "workscope_overview_duration_seconds",
			Help:    "Duration of a full cross-workspace overview query",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StatsCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "workscope_stats_cache_hits_total",
			Help: "Per-workspace stats served from cache",
		}),
		StatsCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "workscope_stats_cache_misses_total",
			Help: "Per-workspace stats fetched from the store",
		}),
	}
}

// ObservePartitionFetch records the duration of one per-workspace fetch.
func (m *Metrics) ObservePartitionFetch(resource string, d time.Duration) {
	m.PartitionFetchDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// IncrementPartitionFailure records one isolated partition failure.
func (m *Metrics) IncrementPartitionFailure(resource string) {
	m.PartitionFailures.WithLabelValues(resource).Inc()
}

// AddDuplicatesDropped records items discarded during merging.
func (m *Metrics) AddDuplicatesDropped(resource string, n int) {
	if n > 0 {
		m.DuplicatesDropped.WithLabelValues(resource).Add(float64(n))
	}
}

// StatsCacheHit records one per-workspace rollup served from cache.
func (m *Metrics) StatsCacheHit() { m.StatsCacheHits.Inc() }

// StatsCacheMiss records one per-workspace rollup fetched from the store.
func (m *Metrics) StatsCacheMiss() { m.StatsCacheMisses.Inc() }

// ObserveOverview records the duration of a full overview query.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveOverview(start time.Time) {
	m.OverviewDuration.Observe(time.Since(start).Seconds())
}
