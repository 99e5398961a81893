// Package collector defines the error record sink. Stages hand failed
// records here when their error policy routes records onward instead of
// aborting; the collector is fire-and-forget from the stage's point of view.
package collector

import (
	"context"

	"github.com/blank-1/datacollector/pkg/pipeline/core/record"
	"github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
)

// ErrorCollector receives records a stage could not process, together with
// the cause of the failure. Implementations must not fail the calling stage:
// delivery problems are handled (logged, buffered, dropped) internally.
type ErrorCollector interface {
	// Report hands off one failed record and its cause.
	Report(ctx context.Context, r *record.Record, cause error)
}

// LoggingCollector writes failed records to the application log. It is the
// default collector when no external sink is configured.
type LoggingCollector struct{}

// NewLoggingCollector creates a LoggingCollector.
func NewLoggingCollector() *LoggingCollector {
	return &LoggingCollector{}
}

// Report logs the record's source ID and the failure cause.
func (c *LoggingCollector) Report(_ context.Context, r *record.Record, cause error) {
	logger.Warnf("error record: source_id=%s cause=%v", r.Header().SourceID, cause)
}
