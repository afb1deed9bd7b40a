// Package observability groups the logging, metrics and tracing infrastructure.
//
// Subpackages:
//   - logging: Structured logging utilities with slog
//   - metrics: Prometheus business metrics (runs, chunks, webhook events)
//   - tracing: OpenTelemetry spans for HTTP requests and completion calls
//
// Example usage:
//
//	import (
//	    "scholarscope/internal/observability/logging"
//	    "scholarscope/internal/observability/metrics"
//	)
//
//	func main() {
//	    logger := logging.NewLogger()
//	    logger.Info("application started")
//
//	    metrics.RecordSummaryRun(metrics.OutcomeCompleted)
//	}
package observability
