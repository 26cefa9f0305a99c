package orchestrator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// tracer wraps the otel tracer used to emit one span per generation. When
// no SDK TracerProvider has been configured, otel.Tracer falls back to a
// no-op implementation, so instrumentation is always safe to call.
type tracer struct {
	t trace.Tracer
}

func newTracer() tracer {
	return tracer{t: otel.Tracer("github.com/jpjj/cvrp-hgs/pkg/orchestrator")}
}

func (tr tracer) startGeneration(ctx context.Context, generation int) (context.Context, trace.Span) {
	return tr.t.Start(ctx, "hgs.generation", trace.WithAttributes(
		attribute.Int("hgs.generation", generation),
	))
}
