package sodaqbe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/docstore/v1/observability"
)

func (p *Provider) begin(ctx context.Context, operation, collection string) (context.Context, func(err error, size int64)) {
	start := time.Now()
	ctx, span := p.tracer.Start(ctx, componentName+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "oracle"),
			attribute.String("docstore.collection", collection),
		))

	return ctx, func(err error, size int64) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		if p.observer != nil {
			p.observer.ObserveOperation(observability.OperationContext{
				Component: componentName,
				Operation: operation,
				Resource:  collection,
				Duration:  time.Since(start),
				Error:     err,
				Size:      size,
			})
		}
	}
}
