package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns an isolated Prometheus registry, the document operation
// metrics and the HTTP server exposing them.
type Metrics struct {
	// Server serves the registry on /metrics.
	Server *http.Server

	// Registry holds every collector of this process.
	Registry *prometheus.Registry

	namespace  string
	registerer prometheus.Registerer

	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
	resultSize        *prometheus.HistogramVec
}

// NewMetrics creates the registry, wraps it with the service label,
// registers the document metrics and builds the /metrics server.
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}

	registry := prometheus.NewRegistry()
	wrapped := prometheus.WrapRegistererWith(prometheus.Labels{"service": cfg.ServiceName}, registry)

	m := &Metrics{
		Registry:   registry,
		namespace:  cfg.Namespace,
		registerer: wrapped,
	}

	m.operationsTotal = createCounterVec(cfg.Namespace, "document_operations_total",
		"Document provider operations by backend, operation and outcome",
		[]string{"backend", "operation", "status"})
	m.operationDuration = createHistogramVec(cfg.Namespace, "document_operation_duration_seconds",
		"Latency of document provider operations",
		[]string{"backend", "operation"}, prometheus.DefBuckets)
	m.resultSize = createHistogramVec(cfg.Namespace, "document_result_items",
		"Number of documents returned by list and filter operations",
		[]string{"backend", "operation"}, prometheus.ExponentialBuckets(1, 4, 8))

	wrapped.MustRegister(m.operationsTotal, m.operationDuration, m.resultSize)

	if cfg.EnableDefaultCollectors {
		wrapped.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: mux,
	}
	return m
}
