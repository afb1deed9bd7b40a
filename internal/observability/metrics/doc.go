// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes the business metrics of the application:
//   - Summarization runs by outcome
//   - Per-chunk completion calls (count and latency)
//   - Words processed per run
//   - Document extraction results
//   - Webhook notifications
//
// HTTP request metrics live with the HTTP middleware in internal/handler/http.
// All metrics are registered with the Prometheus default registry and exposed
// via the /metrics endpoint.
//
// Example usage:
//
//	import "scholarscope/internal/observability/metrics"
//
//	start := time.Now()
//	summary, err := completer.Complete(ctx, req)
//	metrics.RecordChunkSummarized(err == nil, time.Since(start))
package metrics
