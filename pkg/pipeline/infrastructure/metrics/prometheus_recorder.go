package metrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	metrics "github.com/blank-1/datacollector/pkg/pipeline/core/metrics"
	logger "github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
)

// PrometheusRecorder is a Prometheus implementation of the metrics.MetricRecorder interface.
type PrometheusRecorder struct {
	registry *prometheus.Registry

	// Batch Metrics
	batchCounter         *prometheus.CounterVec
	batchSizeHistogram   *prometheus.HistogramVec
	batchDurationSeconds *prometheus.HistogramVec

	// Document Metrics
	documentCounter *prometheus.CounterVec

	// Error / Transaction Metrics
	errorRecordCounter *prometheus.CounterVec
	commitCounter      *prometheus.CounterVec
	rollbackCounter    *prometheus.CounterVec
}

// NewPrometheusRecorder creates a new instance of PrometheusRecorder.
func NewPrometheusRecorder() metrics.MetricRecorder {
	registry := prometheus.NewRegistry()

	// Register Go standard metrics and process/OS metrics.
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &PrometheusRecorder{
		registry: registry,
		batchCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_stage_batch_total",
			Help: "Total number of batches written by stage.",
		}, []string{"stage_name"}),
		batchSizeHistogram: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipeline_stage_batch_size",
			Help:    "Record count per batch by stage.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}, []string{"stage_name"}),
		batchDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "pipeline_stage_duration_seconds",
			Help:    "Duration of named stage operations.",
			Buckets: prometheus.DefBuckets,
		}, []string{"name"}),
		documentCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_stage_document_total",
			Help: "Total documents submitted to the index by stage.",
		}, []string{"stage_name"}),
		errorRecordCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_stage_error_record_total",
			Help: "Total records dispatched under the error policy by stage and action.",
		}, []string{"stage_name", "action"}),
		commitCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_stage_commit_total",
			Help: "Total index commits by stage.",
		}, []string{"stage_name"}),
		rollbackCounter: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "pipeline_stage_rollback_total",
			Help: "Total index rollback attempts by stage and outcome.",
		}, []string{"stage_name", "outcome"}),
	}

	// Register all metrics with the registry.
	registry.MustRegister(r.batchCounter)
	registry.MustRegister(r.batchSizeHistogram)
	registry.MustRegister(r.batchDurationSeconds)
	registry.MustRegister(r.documentCounter)
	registry.MustRegister(r.errorRecordCounter)
	registry.MustRegister(r.commitCounter)
	registry.MustRegister(r.rollbackCounter)

	return r
}

// GetRegistry returns the Prometheus registry.
func (r *PrometheusRecorder) GetRegistry() *prometheus.Registry {
	return r.registry
}

// RecordBatchStart records the start of a batch write.
func (r *PrometheusRecorder) RecordBatchStart(ctx context.Context, stageName string, size int) {
	r.batchCounter.WithLabelValues(stageName).Inc()
	r.batchSizeHistogram.WithLabelValues(stageName).Observe(float64(size))
	logger.Debugf("Metrics: Stage '%s' received batch of %d records.", stageName, size)
}

// RecordDocumentIndexed records documents submitted to the index.
func (r *PrometheusRecorder) RecordDocumentIndexed(ctx context.Context, stageName string, count int) {
	r.documentCounter.WithLabelValues(stageName).Add(float64(count))
}

// RecordErrorRecord records a record dispatched under the error policy.
func (r *PrometheusRecorder) RecordErrorRecord(ctx context.Context, stageName string, action string) {
	r.errorRecordCounter.WithLabelValues(stageName, action).Inc()
}

// RecordCommit records a successful index commit.
func (r *PrometheusRecorder) RecordCommit(ctx context.Context, stageName string, count int) {
	r.commitCounter.WithLabelValues(stageName).Inc()
}

// RecordRollback records an index rollback attempt.
func (r *PrometheusRecorder) RecordRollback(ctx context.Context, stageName string, success bool) {
	outcome := "success"
	if !success {
		outcome = "failure"
	}
	r.rollbackCounter.WithLabelValues(stageName, outcome).Inc()
}

// RecordDuration records the execution time of a specific operation.
func (r *PrometheusRecorder) RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
	r.batchDurationSeconds.WithLabelValues(name).Observe(duration.Seconds())
}

var _ metrics.MetricRecorder = (*PrometheusRecorder)(nil)
