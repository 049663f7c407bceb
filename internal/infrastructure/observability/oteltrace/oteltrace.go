package oteltrace

import (
	"context"

	"github.com/AshwiniC929/OrderService/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracer struct{ t trace.Tracer }

// New wraps the globally registered tracer provider. Exporter setup (OTLP,
// sampling) is the deployment's concern; without it spans are no-ops.
func New(name string) observability.Tracer {
	if name == "" {
		name = "orderservice"
	}
	return &tracer{t: otel.Tracer(name)}
}

func (t *tracer) Start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return t.t.Start(ctx, name, trace.WithAttributes(attrs...))
}
