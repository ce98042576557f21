package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recomputeTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aqdash_recompute_total",
		Help: "Total number of filter/aggregate recomputations",
	})
	recomputeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aqdash_recompute_duration_seconds",
		Help:    "Time spent filtering and aggregating one request",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
	filteredRows = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "aqdash_filtered_rows",
		Help:    "Number of rows surviving the filters",
		Buckets: prometheus.ExponentialBuckets(1, 4, 10),
	})
	emptyResults = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aqdash_empty_results_total",
		Help: "Recomputations whose filtered view was empty",
	})
	datasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "aqdash_dataset_records",
		Help: "Records in the currently loaded dataset",
	})
	datasetLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aqdash_dataset_loads_total",
		Help: "Dataset load attempts by outcome",
	}, []string{"outcome"})
	exportsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "aqdash_exports_total",
		Help: "Filtered CSV exports served",
	})
)

// ObserveRecompute records one pipeline run.
func ObserveRecompute(started time.Time, rows int) {
	recomputeTotal.Inc()
	recomputeDuration.Observe(time.Since(started).Seconds())
	filteredRows.Observe(float64(rows))
	if rows == 0 {
		emptyResults.Inc()
	}
}

// ObserveLoad records a dataset load attempt and, on success, its size.
func ObserveLoad(records int, err error) {
	if err != nil {
		datasetLoads.WithLabelValues("error").Inc()
		return
	}
	datasetLoads.WithLabelValues("ok").Inc()
	datasetRecords.Set(float64(records))
}

// ObserveExport counts a served export
func ObserveExport() {
	exportsTotal.Inc()
}
