package telemetry

import (
	"github.com/AshwiniC929/OrderService/internal/observability"
)

type provider struct {
	tracer  observability.Tracer
	logger  observability.Logger
	metrics observability.Metrics
}

// New assembles an Observability provider from the supplied tracer, logger,
// and metrics. Nil ports fall back to no-ops.
func New(
	tracer observability.Tracer,
	logger observability.Logger,
	metrics observability.Metrics,
) observability.Observability {
	if tracer == nil {
		tracer = observability.NopTracer()
	}
	if logger == nil {
		logger = observability.NopLogger()
	}
	if metrics == nil {
		metrics = observability.NopMetrics()
	}
	return &provider{tracer: tracer, logger: logger, metrics: metrics}
}

func (p *provider) Tracer() observability.Tracer   { return p.tracer }
func (p *provider) Logger() observability.Logger   { return p.logger }
func (p *provider) Metrics() observability.Metrics { return p.metrics }
