package searchindex

import (
	"github.com/blank-1/datacollector/pkg/pipeline/support/util/exception"
)

// moduleName identifies this stage in errors, logs and metrics.
const moduleName = "searchindex"

// Error codes raised by the search index destination.
const (
	// ErrURIRequired: single node instance configured without a URI.
	ErrURIRequired exception.ErrorCode = "INDEX_00"
	// ErrNodeListRequired: cluster instance configured without node URIs.
	ErrNodeListRequired exception.ErrorCode = "INDEX_01"
	// ErrMappingRequired: the field mapping table is empty or invalid.
	ErrMappingRequired exception.ErrorCode = "INDEX_02"
	// ErrIndexUnreachable: the index did not answer the startup probe.
	ErrIndexUnreachable exception.ErrorCode = "INDEX_03"
	// ErrRecordFailed: a single record could not be indexed.
	ErrRecordFailed exception.ErrorCode = "INDEX_04"
	// ErrBatchFailed: a batch could not be written to the index.
	ErrBatchFailed exception.ErrorCode = "INDEX_05"
)
