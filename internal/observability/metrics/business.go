package metrics

import "time"

// Run outcomes recorded by RecordSummaryRun.
const (
	OutcomeCompleted        = "completed"
	OutcomePartial          = "partial"
	OutcomeTooManyFiles     = "too_many_files"
	OutcomeExtractionFailed = "extraction_failed"
	OutcomeRejected         = "rejected"
)

// RecordSummaryRun records the outcome of one pipeline run.
func RecordSummaryRun(outcome string) {
	SummaryRunsTotal.WithLabelValues(outcome).Inc()
}

// RecordChunkSummarized records a chunk completion call and its duration.
// Status is "success" or "failure".
func RecordChunkSummarized(success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	ChunksSummarizedTotal.WithLabelValues(status).Inc()
	ChunkSummarizationDuration.Observe(duration.Seconds())
}

// RecordWordsProcessed records how many words a run submitted after truncation.
func RecordWordsProcessed(words int) {
	WordsProcessed.Observe(float64(words))
}

// RecordDocumentExtracted records one document passing through extraction.
func RecordDocumentExtracted(docType string, success bool) {
	result := "success"
	if !success {
		result = "failure"
	}
	DocumentsExtracted.WithLabelValues(docType, result).Inc()
}

// RecordWebhookEvent records one webhook notification. Result is
// "logged", "invalid" or "error".
func RecordWebhookEvent(result string) {
	WebhookEventsTotal.WithLabelValues(result).Inc()
}
