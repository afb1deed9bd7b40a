package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track summarization runs and webhook logging
var (
	// SummaryRunsTotal counts pipeline runs by outcome
	// (completed, partial, too_many_files, extraction_failed, rejected)
	SummaryRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "summary_runs_total",
			Help: "Total number of summarization runs by outcome",
		},
		[]string{"outcome"},
	)

	// ChunksSummarizedTotal counts chunk completion calls by status
	ChunksSummarizedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chunks_summarized_total",
			Help: "Total number of chunk summarization calls",
		},
		[]string{"status"},
	)

	// ChunkSummarizationDuration measures one chunk's completion call
	ChunkSummarizationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "chunk_summarization_duration_seconds",
			Help:    "Time taken to summarize a single chunk",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)

	// WordsProcessed measures the post-truncation word count of each run
	WordsProcessed = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "summary_words_processed",
			Help:    "Words submitted for summarization per run, after truncation",
			Buckets: []float64{100, 500, 1000, 1500, 3000, 4500, 6000, 7500, 10000},
		},
	)

	// DocumentsExtracted counts extracted documents by type and result
	DocumentsExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_extracted_total",
			Help: "Total number of documents passed through text extraction",
		},
		[]string{"type", "result"},
	)

	// WebhookEventsTotal counts webhook notifications by result
	WebhookEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Total number of webhook notifications received",
		},
		[]string{"result"},
	)
)
