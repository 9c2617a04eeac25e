package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsEnqueued = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wirelab_events_enqueued_total",
		Help: "Total number of board events placed on a shard queue.",
	})

	EventsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wirelab_events_processed_total",
		Help: "Total number of board events applied, labelled by event type and status.",
	}, []string{"event_type", "status"})

	EventsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wirelab_events_dropped_total",
		Help: "Total number of events rejected due to a full shard queue.",
	})

	Evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wirelab_evaluations_total",
		Help: "Circuit evaluations, labelled by resulting severity.",
	}, []string{"severity"})

	ShortCircuits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wirelab_short_circuits_total",
		Help: "Evaluations that detected a hot-to-neutral short, labelled by level.",
	}, []string{"level_id"})

	LevelsCompleted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wirelab_levels_lit_total",
		Help: "Times a bulb went from unlit to lit, labelled by level.",
	}, []string{"level_id"})

	EventProcessingDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wirelab_event_processing_duration_us",
		Help:    "Time to apply an event and re-evaluate the board, in microseconds.",
		Buckets: []float64{5, 10, 25, 50, 100, 250, 500, 1000, 5000},
	})

	SessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wirelab_sessions_active",
		Help: "Number of open board sessions.",
	})

	SessionsExpired = promauto.NewCounter(prometheus.CounterOpts{
		Name: "wirelab_sessions_expired_total",
		Help: "Sessions closed by the idle sweeper.",
	})

	QueueUtilization = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "wirelab_queue_utilization_ratio",
		Help: "Current shard queue utilization (0–1).",
	})

	CatalogReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wirelab_catalog_reloads_total",
		Help: "Level catalog reload attempts, labelled by result.",
	}, []string{"result"})
)
