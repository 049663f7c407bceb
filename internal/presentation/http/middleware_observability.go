package httppresentation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/AshwiniC929/OrderService/internal/observability"
	"github.com/AshwiniC929/OrderService/internal/observability/logctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// ObservabilityMiddleware combines:
// - W3C trace context extraction
// - request-scoped logger injection (dynamic fields only)
// - X-Request-ID generation + echo
// - HTTP metrics (counter + histogram) with low-cardinality labels
func ObservabilityMiddleware(base observability.Logger, tel observability.Observability) func(http.Handler) http.Handler {
	if base == nil {
		base = tel.Logger()
	}
	prop := otel.GetTextMapPropagator() // W3C by default

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			sc := trace.SpanContextFromContext(ctx)

			rid := r.Header.Get(headerRequestID)
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set(headerRequestID, rid)

			fields := []observability.Field{observability.F("request_id", rid)}
			if sc.IsValid() {
				fields = append(fields,
					observability.F("trace_id", sc.TraceID().String()),
					observability.F("span_id", sc.SpanID().String()),
				)
			}
			ctx = logctx.With(ctx, base.With(fields...))

			start := time.Now()
			lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(lrw, r.WithContext(ctx))

			route := routeFromContext(ctx)
			statusLabel := strconv.Itoa(lrw.status)
			metrics := tel.Metrics()
			metrics.Counter(observability.MHTTPRequests).Add(1,
				observability.L("method", r.Method),
				observability.L("route", route),
				observability.L("status", statusLabel),
			)
			metrics.Histogram(observability.MHTTPRequestDuration).Observe(time.Since(start).Seconds(),
				observability.L("method", r.Method),
				observability.L("route", route),
				observability.L("status", statusLabel),
			)
		})
	}
}
