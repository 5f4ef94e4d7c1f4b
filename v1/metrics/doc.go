// Package metrics exposes Prometheus metrics for docstore processes.
//
// NewMetrics builds an isolated registry with a constant service label and
// three document metrics:
//
//	document_operations_total{backend,operation,status}
//	document_operation_duration_seconds{backend,operation}
//	document_result_items{backend,operation}
//
// status is one of success, not_found, invalid, configuration or error.
//
// *Metrics implements observability.Observer, so attaching it to a provider
// with WithObserver is all that is needed to populate these series. Custom
// collectors can be added with CreateCounter, CreateHistogram and
// CreateGauge.
//
// FXModule runs the /metrics server during the application lifetime:
//
//	app := fx.New(
//		logger.FXModule,
//		metrics.FXModule,
//		fx.Supply(metrics.Config{Address: ":9090", ServiceName: "sodactl"}),
//	)
//
// Environment variables:
//
//	METRICS_ADDRESS=:9090
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true
//	METRICS_NAMESPACE=docstore
//	METRICS_SERVICE_NAME=sodactl
package metrics
