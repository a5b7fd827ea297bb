// Package metrics provides Prometheus metrics for the skillrank rating engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the rating engine.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Run lifecycle metrics
	runsStarted   *prometheus.CounterVec
	runsCompleted *prometheus.CounterVec
	runsFailed    *prometheus.CounterVec
	runDuration   prometheus.Histogram

	// Processing metrics
	roundsProcessed prometheus.Counter
	gamesRated      prometheus.Counter
	gamesSkipped    *prometheus.CounterVec
	roundLatency    prometheus.Histogram
	progressPercent prometheus.Gauge
	ledgerSize      prometheus.Gauge

	// Checkpoint metrics
	checkpointWrites   prometheus.Counter
	checkpointFailures prometheus.Counter
	journalDepth       prometheus.Gauge
	journalDropped     prometheus.Counter

	// Export metrics
	rankingsExported prometheus.Gauge

	// System performance metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "skillrank",
		subsystem:        "engine",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	// Apply all options
	for _, opt := range opts {
		opt(m)
	}

	// Initialize metrics
	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	// Run lifecycle
	m.runsStarted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "runs_started_total",
			Help:      "Total number of calculation runs started",
		},
		[]string{"run_type"},
	)

	m.runsCompleted = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "runs_completed_total",
			Help:      "Total number of calculation runs completed successfully",
		},
		[]string{"run_type"},
	)

	m.runsFailed = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "runs_failed_total",
			Help:      "Total number of calculation runs that ended in failure",
		},
		[]string{"run_type"},
	)

	m.runDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "run_duration_seconds",
		Help:      "Histogram of total calculation run duration in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 5, 15, 30, 60, 120, 300, 600},
	})

	// Processing
	m.roundsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rounds_processed_total",
		Help:      "Total number of rounds processed across all runs",
	})

	m.gamesRated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "games_rated_total",
		Help:      "Total number of games applied to the rating ledger",
	})

	m.gamesSkipped = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "games_skipped_total",
			Help:      "Total number of games skipped during processing",
		},
		[]string{"reason"},
	)

	m.roundLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "round_latency_milliseconds",
		Help:      "Histogram of per-round processing latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.progressPercent = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "progress_percent",
		Help:      "Percent complete of the currently running calculation",
	})

	m.ledgerSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ledger_size",
		Help:      "Number of players tracked in the current run's ledger",
	})

	// Checkpointing
	m.checkpointWrites = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "checkpoint_writes_total",
		Help:      "Total number of progress checkpoints persisted",
	})

	m.checkpointFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "checkpoint_failures_total",
		Help:      "Total number of progress checkpoint writes that failed (non-fatal)",
	})

	m.journalDepth = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_depth",
		Help:      "Number of progress records queued in the checkpoint journal",
	})

	m.journalDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "journal_dropped_total",
		Help:      "Total number of progress records dropped due to journal backpressure",
	})

	// Export
	m.rankingsExported = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rankings_exported",
		Help:      "Number of player rankings exported by the most recent completed run",
	})

	// System performance
	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_usage_bytes",
		Help:      "System memory usage in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutine_count",
		Help:      "Number of goroutines",
	})
}

// RecordRunStarted increments the started-runs counter for a run type.
func RecordRunStarted(runType string) {
	globalManager.runsStarted.WithLabelValues(runType).Inc()
}

// RecordRunCompleted increments the completed-runs counter for a run type.
func RecordRunCompleted(runType string) {
	globalManager.runsCompleted.WithLabelValues(runType).Inc()
}

// RecordRunFailed increments the failed-runs counter for a run type.
func RecordRunFailed(runType string) {
	globalManager.runsFailed.WithLabelValues(runType).Inc()
}

// RecordRunDuration records the total duration of a run in seconds.
func RecordRunDuration(seconds float64) {
	globalManager.runDuration.Observe(seconds)
}

// RecordRoundProcessed increments the processed-rounds counter.
func RecordRoundProcessed() {
	globalManager.roundsProcessed.Inc()
}

// RecordGameRated increments the rated-games counter.
func RecordGameRated() {
	globalManager.gamesRated.Inc()
}

// RecordGameSkipped increments the skipped-games counter for a reason.
func RecordGameSkipped(reason string) {
	globalManager.gamesSkipped.WithLabelValues(reason).Inc()
}

// RecordRoundLatency records per-round processing latency in milliseconds.
func RecordRoundLatency(latencyMs float64) {
	globalManager.roundLatency.Observe(latencyMs)
}

// UpdateProgressPercent sets the current run progress percentage.
func UpdateProgressPercent(percent float64) {
	globalManager.progressPercent.Set(percent)
}

// UpdateLedgerSize sets the current ledger size.
func UpdateLedgerSize(size int) {
	globalManager.ledgerSize.Set(float64(size))
}

// RecordCheckpointWrite increments the checkpoint writes counter.
func RecordCheckpointWrite() {
	globalManager.checkpointWrites.Inc()
}

// RecordCheckpointFailure increments the checkpoint failures counter.
func RecordCheckpointFailure() {
	globalManager.checkpointFailures.Inc()
}

// UpdateJournalDepth sets the current checkpoint journal depth.
func UpdateJournalDepth(depth int) {
	globalManager.journalDepth.Set(float64(depth))
}

// RecordJournalDropped increments the dropped journal records counter.
func RecordJournalDropped() {
	globalManager.journalDropped.Inc()
}

// UpdateRankingsExported sets the size of the most recently exported ranking list.
func UpdateRankingsExported(count int) {
	globalManager.rankingsExported.Set(float64(count))
}

// UpdateSystemMemoryUsage sets the current memory usage.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the current goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
