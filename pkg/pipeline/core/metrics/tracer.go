package metrics

import (
	"context"
)

// Tracer is an abstract interface for distributed tracing of stage execution.
// It decouples the pipeline core from a concrete tracing backend.
type Tracer interface {
	// StartBatchSpan starts a span covering one batch write. The returned
	// function ends the span and must be called when the write finishes.
	//
	// ctx: The context for the operation.
	// stageName: The name of the stage writing the batch.
	// size: The number of records in the batch.
	StartBatchSpan(ctx context.Context, stageName string, size int) (context.Context, func())

	// RecordError records an error in the current span.
	//
	// ctx: The context carrying the span.
	// module: The module where the error occurred.
	// err: The error to record.
	RecordError(ctx context.Context, module string, err error)

	// RecordEvent records an event in the current span.
	//
	// ctx: The context carrying the span.
	// name: The event name.
	// attributes: Additional attributes for the event.
	RecordEvent(ctx context.Context, name string, attributes map[string]interface{})
}
