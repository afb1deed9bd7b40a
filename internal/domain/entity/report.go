package entity

import (
	"fmt"
	"strings"
)

// SummaryFileName is the name of the downloadable report.
const SummaryFileName = "ScholarScope_Summary.txt"

// ChunkSummary is the generated text for one chunk. Index is 1-based.
type ChunkSummary struct {
	Index int
	Text  string
}

// Report is the outcome of a run. Summaries are ordered by chunk index and hold
// only the chunks that completed; a run that failed midway keeps its earlier results.
type Report struct {
	Model       string
	WordCount   int
	Truncated   bool
	TotalChunks int
	Summaries   []ChunkSummary
}

// Complete reports whether every chunk produced a summary.
func (r *Report) Complete() bool {
	return len(r.Summaries) == r.TotalChunks
}

// Text renders the chunk-labeled report. The same string is shown on screen and
// served as the download body.
func (r *Report) Text() string {
	var b strings.Builder
	for _, s := range r.Summaries {
		fmt.Fprintf(&b, "\n\n📍 Chunk %d:\n%s", s.Index, s.Text)
	}
	return strings.TrimSpace(b.String())
}
