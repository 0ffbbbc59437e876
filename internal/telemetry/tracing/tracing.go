package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var GlobalTracer trace.Tracer = otel.Tracer("blueprint-backend")

// EndSpanWithErrCheck marks the span as failed when err is set, then ends it.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		span.RecordError(err)
	}
	span.End()
}

// PhaseAttributes describe an execution step on a span.
func PhaseAttributes(scheme string, phase, totalPhases int, completed bool) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("execution.scheme", scheme),
		attribute.Int("execution.phase", phase),
		attribute.Int("execution.total_phases", totalPhases),
		attribute.Bool("execution.completed", completed),
	}
}
