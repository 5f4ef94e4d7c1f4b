package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Aleph-Alpha/docstore/v1/observability"
)

// MetricsCollector is implemented by *Metrics. Besides the document
// operation metrics it lets callers register their own collectors on the
// same registry.
type MetricsCollector interface {
	observability.Observer

	// RecordDocumentOperation counts one provider operation and records its
	// latency.
	RecordDocumentOperation(backend, operation string, duration time.Duration, err error)

	CreateCounter(name, help string, labels []string) *prometheus.CounterVec
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}
