// Package observability defines the hook through which clients report the
// operations they perform. Metrics, tracing or audit sinks implement Observer
// and are attached to a client with WithObserver.
package observability

import "time"

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component identifies the client, e.g. "sodarest" or "sodasql".
	Component string

	// Operation is the logical operation name, e.g. "create" or "filter".
	Operation string

	// Resource is the primary target, a collection for document stores.
	Resource string

	// SubResource is the secondary target, a document key when there is one.
	SubResource string

	Duration time.Duration

	// Error is nil on success.
	Error error

	// Size is the payload size in bytes, or the number of returned items for
	// list operations.
	Size int64

	Metadata map[string]interface{}
}

// Observer receives an OperationContext per operation. Implementations must
// be safe for concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(ctx OperationContext)

// ObserveOperation calls f(ctx).
func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}
