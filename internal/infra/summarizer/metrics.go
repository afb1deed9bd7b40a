package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CompletionMetricsRecorder records provider-level completion metrics.
type CompletionMetricsRecorder interface {
	// RecordLength records the length of a completion in runes.
	RecordLength(provider string, length int)

	// RecordDuration records the latency of a successful completion call.
	RecordDuration(provider string, duration time.Duration)

	// RecordFailure counts a failed completion call by reason.
	RecordFailure(provider, reason string)
}

// PrometheusCompletionMetrics implements CompletionMetricsRecorder with Prometheus.
type PrometheusCompletionMetrics struct {
	lengthHistogram   *prometheus.HistogramVec
	durationHistogram *prometheus.HistogramVec
	failureCounter    *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusCompletionMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogramVec registers a histogram vector or returns the one
// already registered under the same name.
func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		panic(err)
	}
	return h
}

// getOrCreateCounterVec registers a counter vector or returns the one
// already registered under the same name.
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		panic(err)
	}
	return c
}

// NewPrometheusCompletionMetrics returns the process-wide recorder, registering
// its collectors on first use.
func NewPrometheusCompletionMetrics() *PrometheusCompletionMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusCompletionMetrics{
			lengthHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "completion_output_length_characters",
				Help:    "Distribution of completion lengths in characters (Unicode runes)",
				Buckets: []float64{100, 300, 500, 1000, 1500, 2000, 3000, 4000},
			}, []string{"provider"}),
			durationHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "completion_request_duration_seconds",
				Help:    "Latency of successful completion API calls",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
			}, []string{"provider"}),
			failureCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "completion_failures_total",
				Help: "Total failed completion API calls by reason",
			}, []string{"provider", "reason"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements CompletionMetricsRecorder.
func (p *PrometheusCompletionMetrics) RecordLength(provider string, length int) {
	p.lengthHistogram.WithLabelValues(provider).Observe(float64(length))
}

// RecordDuration implements CompletionMetricsRecorder.
func (p *PrometheusCompletionMetrics) RecordDuration(provider string, duration time.Duration) {
	p.durationHistogram.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordFailure implements CompletionMetricsRecorder.
func (p *PrometheusCompletionMetrics) RecordFailure(provider, reason string) {
	p.failureCounter.WithLabelValues(provider, reason).Inc()
}
