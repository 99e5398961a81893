package metrics

import (
	"context"
	"time"
)

// NoOpMetricRecorder is an implementation of MetricRecorder that does nothing.
// It is used when metrics are disabled or during testing.
type NoOpMetricRecorder struct{}

// NewNoOpMetricRecorder creates a new instance of NoOpMetricRecorder.
func NewNoOpMetricRecorder() MetricRecorder {
	return &NoOpMetricRecorder{}
}

// RecordBatchStart does nothing.
func (r *NoOpMetricRecorder) RecordBatchStart(ctx context.Context, stageName string, size int) {}

// RecordDocumentIndexed does nothing.
func (r *NoOpMetricRecorder) RecordDocumentIndexed(ctx context.Context, stageName string, count int) {
}

// RecordErrorRecord does nothing.
func (r *NoOpMetricRecorder) RecordErrorRecord(ctx context.Context, stageName string, action string) {
}

// RecordCommit does nothing.
func (r *NoOpMetricRecorder) RecordCommit(ctx context.Context, stageName string, count int) {}

// RecordRollback does nothing.
func (r *NoOpMetricRecorder) RecordRollback(ctx context.Context, stageName string, success bool) {}

// RecordDuration does nothing.
func (r *NoOpMetricRecorder) RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
}

var _ MetricRecorder = (*NoOpMetricRecorder)(nil)

// --- NoOpTracer ---

// NoOpTracer is an implementation of Tracer that does nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a new instance of NoOpTracer.
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

// StartBatchSpan returns the context unchanged and a no-op end function.
func (t *NoOpTracer) StartBatchSpan(ctx context.Context, stageName string, size int) (context.Context, func()) {
	return ctx, func() {}
}

// RecordError does nothing.
func (t *NoOpTracer) RecordError(ctx context.Context, module string, err error) {}

// RecordEvent does nothing.
func (t *NoOpTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
}

var _ Tracer = (*NoOpTracer)(nil)
