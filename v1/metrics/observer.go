package metrics

import "github.com/Aleph-Alpha/docstore/v1/observability"

// ObserveOperation records an operation reported by a provider. List and
// filter operations also record the number of returned documents.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	m.RecordDocumentOperation(ctx.Component, ctx.Operation, ctx.Duration, ctx.Error)
	if ctx.Error == nil && (ctx.Operation == "list" || ctx.Operation == "filter") {
		m.resultSize.WithLabelValues(ctx.Component, ctx.Operation).Observe(float64(ctx.Size))
	}
}
