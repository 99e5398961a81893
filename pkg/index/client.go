// Package index defines the client contract a destination stage uses to talk
// to a searchable document index, independent of the concrete backend.
package index

import (
	"context"
	"fmt"
)

// Document is one flat unit of indexable data: field name to value.
type Document map[string]interface{}

// Client is the transactional surface of a document index. Submitted
// documents stay invisible to searches until Commit; Rollback withdraws
// everything submitted since the last commit.
type Client interface {
	// SubmitOne stages a single document.
	SubmitOne(ctx context.Context, doc Document) error

	// SubmitMany stages a set of documents in one call.
	SubmitMany(ctx context.Context, docs []Document) error

	// Commit makes all submitted documents durable and searchable.
	Commit(ctx context.Context) error

	// Rollback withdraws documents submitted since the last commit.
	Rollback(ctx context.Context) error

	// Ping probes the index for reachability.
	Ping(ctx context.Context) error

	// Close releases client resources.
	Close() error
}

// SubmissionError reports a failed SubmitOne or SubmitMany call.
type SubmissionError struct {
	Count int // number of documents in the failed submission
	Cause error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to submit %d document(s): %v", e.Count, e.Cause)
}

func (e *SubmissionError) Unwrap() error { return e.Cause }

// CommitError reports a failed Commit call.
type CommitError struct {
	Cause error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("failed to commit index batch: %v", e.Cause)
}

func (e *CommitError) Unwrap() error { return e.Cause }

// RollbackError reports a failed Rollback call.
type RollbackError struct {
	Cause error
}

func (e *RollbackError) Error() string {
	return fmt.Sprintf("failed to roll back index batch: %v", e.Cause)
}

func (e *RollbackError) Unwrap() error { return e.Cause }
