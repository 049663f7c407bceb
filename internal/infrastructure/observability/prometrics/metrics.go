package prometrics

import (
	"github.com/AshwiniC929/OrderService/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
)

// Registry registers the service's instruments once at construction and
// serves them by metric key, implementing observability.Metrics.
type Registry struct {
	namespace  string
	counters   map[observability.MetricKey]observability.Counter
	histograms map[observability.MetricKey]observability.Histogram
}

func New(namespace string) *Registry {
	r := &Registry{
		namespace:  namespace,
		counters:   make(map[observability.MetricKey]observability.Counter),
		histograms: make(map[observability.MetricKey]observability.Histogram),
	}

	r.counter(observability.MUsecaseRequests, "Total number of use case invocations.", "use_case", "outcome")
	r.histogram(observability.MUsecaseDuration, "Duration of use case execution in seconds.", prometheus.DefBuckets, "use_case")
	r.counter(observability.MExternalRequests, "Total number of collaborator calls.", "peer", "endpoint", "outcome")
	r.histogram(observability.MExternalRequestDuration, "Duration of collaborator calls in seconds.", prometheus.DefBuckets, "peer", "endpoint")
	r.counter(observability.MHTTPRequests, "Total number of HTTP requests served.", "method", "route", "status")
	r.histogram(observability.MHTTPRequestDuration, "Duration of HTTP requests in seconds.", prometheus.DefBuckets, "method", "route", "status")
	r.counter(observability.MEventPublishFailures, "Count of order event publish failures.", "event")
	r.counter(observability.MOrderOutcomes, "Count of terminal order outcomes.", "status")

	return r
}

func (r *Registry) Counter(name observability.MetricKey) observability.Counter {
	if c, ok := r.counters[name]; ok {
		return c
	}
	return observability.NopMetrics().Counter(name)
}

func (r *Registry) Histogram(name observability.MetricKey) observability.Histogram {
	if h, ok := r.histograms[name]; ok {
		return h
	}
	return observability.NopMetrics().Histogram(name)
}

type counter struct{ v *prometheus.CounterVec }

func (c *counter) Add(d float64, labels ...observability.Label) {
	c.v.With(labelMap(labels)).Add(d)
}

type histogram struct{ v *prometheus.HistogramVec }

func (h *histogram) Observe(v float64, labels ...observability.Label) {
	h.v.With(labelMap(labels)).Observe(v)
}

func (r *Registry) counter(name observability.MetricKey, help string, labelKeys ...string) {
	cv := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: r.namespace, Name: string(name), Help: help,
	}, labelKeys)
	prometheus.MustRegister(cv)
	r.counters[name] = &counter{v: cv}
}

func (r *Registry) histogram(name observability.MetricKey, help string, buckets []float64, labelKeys ...string) {
	hv := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: r.namespace, Name: string(name), Help: help, Buckets: buckets,
	}, labelKeys)
	prometheus.MustRegister(hv)
	r.histograms[name] = &histogram{v: hv}
}

func labelMap(ls []observability.Label) prometheus.Labels {
	m := make(prometheus.Labels, len(ls))
	for _, l := range ls {
		m[l.Key] = l.Value
	}
	return m
}
