// Package searchindex implements the search index destination stage: it maps
// pipeline records onto index documents and writes them batch by batch with
// transactional commit and rollback against the index.
package searchindex

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	index "github.com/blank-1/datacollector/pkg/index"
	collector "github.com/blank-1/datacollector/pkg/pipeline/core/collector"
	metrics "github.com/blank-1/datacollector/pkg/pipeline/core/metrics"
	policy "github.com/blank-1/datacollector/pkg/pipeline/core/policy"
	record "github.com/blank-1/datacollector/pkg/pipeline/core/record"
	exception "github.com/blank-1/datacollector/pkg/pipeline/support/util/exception"
	logger "github.com/blank-1/datacollector/pkg/pipeline/support/util/logger"
)

// pingAttempts bounds the startup reachability probe.
const pingAttempts = 3

// Target is the search index destination stage. A Target handles one batch
// at a time; Write is not safe for concurrent use.
type Target struct {
	cfg       Config
	client    index.Client
	mapper    *DocumentMapper
	collector collector.ErrorCollector
	recorder  metrics.MetricRecorder
	tracer    metrics.Tracer
}

// NewTarget assembles the stage from its collaborators. The configuration
// must already be validated; Init performs validation for callers that have
// not done so.
func NewTarget(
	cfg Config,
	client index.Client,
	errCollector collector.ErrorCollector,
	recorder metrics.MetricRecorder,
	tracer metrics.Tracer,
) *Target {
	cfg.ApplyDefaults()
	return &Target{
		cfg:       cfg,
		client:    client,
		mapper:    NewDocumentMapper(cfg.FieldMappings),
		collector: errCollector,
		recorder:  recorder,
		tracer:    tracer,
	}
}

// Init validates the configuration and probes the index for reachability.
// It must be called once before the first Write.
func (t *Target) Init(ctx context.Context) error {
	if err := t.cfg.Validate(); err != nil {
		return err
	}

	probe := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), pingAttempts-1), ctx)
	if err := backoff.Retry(func() error { return t.client.Ping(ctx) }, probe); err != nil {
		return exception.NewStageErrorf(moduleName, ErrIndexUnreachable, err,
			"index did not answer the startup probe")
	}

	logger.Infof("Stage '%s' initialized (%s, mode=%s, policy=%s).",
		t.cfg.Name, t.cfg.InstanceType, t.cfg.IndexingMode, t.cfg.OnRecordError)
	return nil
}

// Write indexes one batch. Records are mapped in order; records that fail
// individually are handled by the configured error policy. When at least one
// record was scanned, the accumulated documents are submitted (BATCH mode)
// and the index is committed. A failed submit or commit rolls the index back
// and dispatches the whole batch to the error policy.
//
// A non-nil return is a fatal stage error: the pipeline must stop.
func (t *Target) Write(ctx context.Context, batch *record.Batch) error {
	records := batch.Records()
	t.recorder.RecordBatchStart(ctx, t.cfg.Name, len(records))
	ctx, endSpan := t.tracer.StartBatchSpan(ctx, t.cfg.Name, len(records))
	defer endSpan()

	start := time.Now()
	defer func() {
		t.recorder.RecordDuration(ctx, "batch_write_duration", time.Since(start),
			map[string]string{"stage_name": t.cfg.Name})
	}()

	atLeastOne := false
	var queued []index.Document

	for _, r := range records {
		atLeastOne = true

		doc, err := t.mapper.MapRecord(r)
		if err == nil && t.cfg.IndexingMode == PerRecord {
			if err = t.client.SubmitOne(ctx, doc); err == nil {
				t.recorder.RecordDocumentIndexed(ctx, t.cfg.Name, 1)
			}
		}
		if err != nil {
			if fatal := t.dispatchRecordError(ctx, r, err); fatal != nil {
				return fatal
			}
			continue
		}
		if t.cfg.IndexingMode == Batch {
			queued = append(queued, doc)
		}
	}

	if !atLeastOne {
		return nil
	}

	err := t.flush(ctx, queued)
	if err == nil {
		return nil
	}
	t.tracer.RecordError(ctx, moduleName, err)

	cause := err
	if rbErr := t.client.Rollback(ctx); rbErr != nil {
		t.recorder.RecordRollback(ctx, t.cfg.Name, false)
		logger.Warnf("Rollback failed after batch error: %v (write failure was: %v)", rbErr, err)
		cause = rbErr
	} else {
		t.recorder.RecordRollback(ctx, t.cfg.Name, true)
	}

	return t.dispatchBatchError(ctx, records, cause)
}

// Destroy releases the index client. The Target must not be used afterwards.
func (t *Target) Destroy() error {
	if err := t.client.Close(); err != nil {
		logger.Errorf("Stage '%s' failed to close index client: %v", t.cfg.Name, err)
		return err
	}
	return nil
}

// flush submits accumulated documents and commits the index. In BATCH mode
// with nothing accumulated the submit is elided but the commit still runs,
// so previously staged work is finalized.
func (t *Target) flush(ctx context.Context, queued []index.Document) error {
	if t.cfg.IndexingMode == Batch && len(queued) > 0 {
		if err := t.client.SubmitMany(ctx, queued); err != nil {
			return err
		}
		t.recorder.RecordDocumentIndexed(ctx, t.cfg.Name, len(queued))
	}
	if err := t.client.Commit(ctx); err != nil {
		return err
	}
	t.recorder.RecordCommit(ctx, t.cfg.Name, len(queued))
	return nil
}

// dispatchRecordError applies the error policy to a single failed record.
// The returned error is non-nil only for the STOP_PIPELINE policy.
func (t *Target) dispatchRecordError(ctx context.Context, r *record.Record, cause error) error {
	sourceID := r.Header().SourceID
	t.recorder.RecordErrorRecord(ctx, t.cfg.Name, string(t.cfg.OnRecordError))

	switch t.cfg.OnRecordError {
	case policy.Discard:
		logger.Debugf("Discarding record %s: %v", sourceID, cause)
		return nil
	case policy.ToError:
		t.collector.Report(ctx, r, exception.NewStageErrorf(
			moduleName, ErrRecordFailed, cause,
			"could not index record '%s': %s", sourceID, exception.ExtractErrorMessage(cause),
		).WithSourceID(sourceID))
		return nil
	case policy.StopPipeline:
		return exception.NewStageErrorf(moduleName, ErrRecordFailed, cause,
			"could not index record '%s': %s", sourceID, exception.ExtractErrorMessage(cause),
		).WithSourceID(sourceID)
	default:
		return exception.NewStageErrorf(moduleName, ErrRecordFailed, cause,
			"unknown error policy '%s'", t.cfg.OnRecordError)
	}
}

// dispatchBatchError applies the error policy to a whole failed batch after
// rollback. Under TO_ERROR every record of the batch is reported with the
// same cause, including records that were already handled individually.
func (t *Target) dispatchBatchError(ctx context.Context, records []*record.Record, cause error) error {
	switch t.cfg.OnRecordError {
	case policy.Discard:
		logger.Debugf("Discarding batch of %d records: %v", len(records), cause)
		return nil
	case policy.ToError:
		for _, r := range records {
			t.recorder.RecordErrorRecord(ctx, t.cfg.Name, string(policy.ToError))
			t.collector.Report(ctx, r, cause)
		}
		return nil
	case policy.StopPipeline:
		return exception.NewStageErrorf(moduleName, ErrBatchFailed, cause,
			"could not write batch to index: %s", exception.ExtractErrorMessage(cause))
	default:
		return exception.NewStageErrorf(moduleName, ErrBatchFailed, cause,
			"unknown error policy '%s'", t.cfg.OnRecordError)
	}
}
