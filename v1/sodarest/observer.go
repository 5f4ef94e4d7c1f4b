package sodarest

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/docstore/v1/observability"
)

// observeOperation notifies the observer, if any.
//
// Notes:
//   - resource: collection
//   - subResource: document key
func (c *Client) observeOperation(operation, resource, subResource string, duration time.Duration, err error, size int64) {
	if c == nil || c.observer == nil {
		return
	}
	c.observer.ObserveOperation(observability.OperationContext{
		Component:   componentName,
		Operation:   operation,
		Resource:    resource,
		SubResource: subResource,
		Duration:    duration,
		Error:       err,
		Size:        size,
	})
}

// begin starts the span of an operation. The returned func ends it and
// reports the outcome to the observer.
func (c *Client) begin(ctx context.Context, operation, collection, id string) (context.Context, func(err error, size int64)) {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, componentName+"."+operation,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("docstore.collection", collection),
			attribute.String("docstore.key", id),
		))

	return ctx, func(err error, size int64) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		c.observeOperation(operation, collection, id, time.Since(start), err, size)
	}
}
