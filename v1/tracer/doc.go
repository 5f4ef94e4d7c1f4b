// Package tracer configures OpenTelemetry tracing for docstore processes.
//
// NewClient installs a global tracer provider, so the spans the document
// providers start through otel.Tracer end up in the same pipeline as the
// spans started here:
//
//	t := tracer.NewClient(tracer.Config{ServiceName: "sodactl", EnableExport: true}, log)
//	ctx, span := t.StartSpan(ctx, "sodactl.filter")
//	defer span.End()
package tracer
