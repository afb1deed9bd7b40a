// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through the global tracer provider. Without an installed
// provider they are no-ops, so tracing costs nothing until an exporter is wired.
//
// Example usage:
//
//	ctx, span := tracing.StartSpan(ctx, "summarize.chunk",
//	    attribute.Int("chunk.index", 1))
//	defer span.End()
package tracing
