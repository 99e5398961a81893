package metrics

import (
	"context"
	"time"
)

// MetricRecorder is an abstract interface for recording metrics related to
// destination stage execution.
//
// This interface provides a standardized way to record batch, document and
// error-level events, which facilitates integration with different metrics
// backends (e.g., Prometheus, OpenTelemetry Metrics).
type MetricRecorder interface {
	// RecordBatchStart records the start of a batch write.
	//
	// ctx: The context for the operation.
	// stageName: The name of the stage writing the batch.
	// size: The number of records in the batch.
	RecordBatchStart(ctx context.Context, stageName string, size int)

	// RecordDocumentIndexed records documents successfully handed to the index.
	//
	// ctx: The context for the operation.
	// stageName: The name of the stage.
	// count: The number of documents submitted.
	RecordDocumentIndexed(ctx context.Context, stageName string, count int)

	// RecordErrorRecord records a record dispatched under the error policy.
	//
	// ctx: The context for the operation.
	// stageName: The name of the stage.
	// action: The policy action taken (e.g. "DISCARD", "TO_ERROR").
	RecordErrorRecord(ctx context.Context, stageName string, action string)

	// RecordCommit records a successful index commit.
	//
	// ctx: The context for the operation.
	// stageName: The name of the stage.
	// count: The number of documents covered by the commit.
	RecordCommit(ctx context.Context, stageName string, count int)

	// RecordRollback records an index rollback attempt.
	//
	// ctx: The context for the operation.
	// stageName: The name of the stage.
	// success: Whether the rollback itself succeeded.
	RecordRollback(ctx context.Context, stageName string, success bool)

	// RecordDuration records the execution time of a specific operation.
	//
	// ctx: The context for the operation.
	// name: The name of the duration to record (e.g., "batch_write_duration").
	// duration: The length of the duration to record.
	// tags: A map of additional tags to associate with the duration.
	RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string)
}
