package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	metrics "github.com/blank-1/datacollector/pkg/pipeline/core/metrics"
)

const tracerName = "github.com/blank-1/datacollector/pipeline"

// OpenTelemetryTracer is an OpenTelemetry implementation of the
// metrics.Tracer interface. It uses the globally registered tracer provider,
// so span export follows whatever the application configured at startup.
type OpenTelemetryTracer struct {
	tracer trace.Tracer
}

// NewOpenTelemetryTracer creates a new instance of OpenTelemetryTracer.
func NewOpenTelemetryTracer() metrics.Tracer {
	return &OpenTelemetryTracer{
		tracer: otel.Tracer(tracerName),
	}
}

// StartBatchSpan starts a span covering one batch write.
func (t *OpenTelemetryTracer) StartBatchSpan(ctx context.Context, stageName string, size int) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "stage.write_batch",
		trace.WithAttributes(
			attribute.String("stage.name", stageName),
			attribute.Int("batch.size", size),
		),
	)
	return ctx, func() { span.End() }
}

// RecordError records an error in the current span.
func (t *OpenTelemetryTracer) RecordError(ctx context.Context, module string, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.RecordError(err, trace.WithAttributes(attribute.String("module", module)))
}

// RecordEvent records an event in the current span.
func (t *OpenTelemetryTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		switch tv := v.(type) {
		case string:
			attrs = append(attrs, attribute.String(k, tv))
		case int:
			attrs = append(attrs, attribute.Int(k, tv))
		case int64:
			attrs = append(attrs, attribute.Int64(k, tv))
		case float64:
			attrs = append(attrs, attribute.Float64(k, tv))
		case bool:
			attrs = append(attrs, attribute.Bool(k, tv))
		default:
			attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", tv)))
		}
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

var _ metrics.Tracer = (*OpenTelemetryTracer)(nil)
