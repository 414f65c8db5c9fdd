package operations

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"saleseda/internal/infrastructure"
)

// traceRun creates a span for the entire run
func (m *Manager) traceRun(ctx context.Context, state *OperationState) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "eda.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", state.ID),
			attribute.Int("operation.steps", len(m.steps)),
		),
	)
}

// traceStep creates a span for one step
func (m *Manager) traceStep(ctx context.Context, state *OperationState, step Step) (context.Context, trace.Span) {
	return m.tracer.Start(ctx, "eda.step."+step.ID(),
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("operation.id", state.ID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
}

// recordStepCompletion closes out a step span and records its metrics
func (m *Manager) recordStepCompletion(ctx context.Context, span trace.Span, step Step, duration time.Duration, err error) {
	span.SetAttributes(attribute.Float64("step.duration_seconds", duration.Seconds()))
	infrastructure.RecordStepMetrics(ctx, m.metrics, step.ID(), duration, err)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "step completed")
}

// recordRunCompletion closes out the run span and records its metrics
func (m *Manager) recordRunCompletion(ctx context.Context, span trace.Span, state *OperationState, err error) {
	duration := state.Duration()
	span.SetAttributes(
		attribute.String("operation.status", string(state.Status)),
		attribute.Float64("operation.duration_seconds", duration.Seconds()),
	)
	infrastructure.RecordRunMetrics(ctx, m.metrics, duration, err == nil)

	if err != nil {
		infrastructure.RecordError(ctx, err)
		return
	}
	span.SetStatus(codes.Ok, "run completed")
}
