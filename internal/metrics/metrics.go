package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Initialization Metrics
var (
	// InitializationsTotal tracks product initializations by trigger and outcome
	InitializationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "product_initializations_total",
			Help: "Product cache initializations by trigger (lazy/bulk) and outcome (success/failure)",
		},
		[]string{"trigger", "outcome"},
	)

	// InitializationDuration tracks the full score/aggregate/forecast pipeline latency
	InitializationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "product_initialization_duration_seconds",
			Help:    "Duration of the per-product initialization pipeline in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"trigger"},
	)

	// CachedProducts tracks the number of Ready products in the cache
	CachedProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cached_products",
			Help: "Number of products with a Ready cache entry",
		},
	)
)

// Pipeline Metrics
var (
	// ForecastEmptyTotal tracks forecasts degraded to an empty series by reason
	ForecastEmptyTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "forecast_empty_total",
			Help: "Forecasts that produced an empty series, by reason (short_history/fit_failed/timeout)",
		},
		[]string{"reason"},
	)

	// ScorerDegradationsTotal tracks reviews scored with a neutral fallback
	ScorerDegradationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "scorer_degradations_total",
			Help: "Reviews where a scoring method failed and a neutral zero score was substituted",
		},
	)

	// ReviewsScoredTotal tracks total reviews pushed through the scorer
	ReviewsScoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reviews_scored_total",
			Help: "Total reviews scored",
		},
	)
)

// Dataset Metrics
var (
	// DatasetLoadDuration tracks dataset read+parse latency
	DatasetLoadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dataset_load_duration_seconds",
			Help:    "Duration of dataset load and parse in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	// DatasetLoadFailures tracks dataset read failures
	DatasetLoadFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dataset_load_failures_total",
			Help: "Total dataset load failures",
		},
	)

	// DatasetRowsDropped tracks rows dropped during parsing by reason
	DatasetRowsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dataset_rows_dropped_total",
			Help: "Dataset rows dropped during parsing by reason (bad_timestamp/bad_rating/short_row)",
		},
		[]string{"reason"},
	)
)
