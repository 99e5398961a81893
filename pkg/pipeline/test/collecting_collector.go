package test

import (
	"context"

	collector "github.com/blank-1/datacollector/pkg/pipeline/core/collector"
	record "github.com/blank-1/datacollector/pkg/pipeline/core/record"
)

// Reported is one record handed to the CollectingErrorCollector.
type Reported struct {
	Record *record.Record
	Cause  error
}

// CollectingErrorCollector is an in-memory collector.ErrorCollector used by
// tests to assert which records were routed to the error sink and why.
type CollectingErrorCollector struct {
	Reports []Reported
}

// NewCollectingErrorCollector creates an empty CollectingErrorCollector.
func NewCollectingErrorCollector() *CollectingErrorCollector {
	return &CollectingErrorCollector{}
}

// Report records the failed record and its cause.
func (c *CollectingErrorCollector) Report(_ context.Context, r *record.Record, cause error) {
	c.Reports = append(c.Reports, Reported{Record: r, Cause: cause})
}

// SourceIDs returns the source IDs of all reported records, in order.
func (c *CollectingErrorCollector) SourceIDs() []string {
	ids := make([]string, 0, len(c.Reports))
	for _, rep := range c.Reports {
		ids = append(ids, rep.Record.Header().SourceID)
	}
	return ids
}

// Ensure that CollectingErrorCollector implements collector.ErrorCollector.
var _ collector.ErrorCollector = (*CollectingErrorCollector)(nil)
