package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Label values.
const (
	StatusOK    = "ok"
	StatusError = "error"

	LabelUnknown = "unknown"
)

var (
	// DatasetLoads counts dataset load attempts by status.
	DatasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_dataset_loads_total",
		Help: "Total number of dataset load attempts",
	}, []string{"status"})

	// ChartFailures counts charts that could not be drawn.
	ChartFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_chart_failures_total",
		Help: "Total number of charts left empty because their spec could not be drawn",
	}, []string{"chart"})

	// Events counts dispatched interface events.
	Events = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_events_total",
		Help: "Total number of dispatched dashboard events",
	}, []string{"target", "event", "status"})

	// ActiveSessions is the number of live interactive sessions.
	ActiveSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_active_sessions",
		Help: "Number of interactive dashboard sessions held in memory",
	})

	// PageRenderSeconds measures page serialization latency.
	PageRenderSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_page_render_seconds",
		Help:    "Latency of dashboard page rendering",
		Buckets: prometheus.DefBuckets,
	})
)
