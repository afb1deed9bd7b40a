package summary

import (
	"scholarscope/internal/domain/entity"
)

// ChunkDTO is one chunk summary in a response.
type ChunkDTO struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// ResultDTO is the outcome of a run. Summary is the exact text offered for
// download. Error is set when a chunk failed; Chunks then holds the summaries
// completed before the failure.
type ResultDTO struct {
	Summary     string     `json:"summary"`
	Chunks      []ChunkDTO `json:"chunks"`
	TotalChunks int        `json:"total_chunks"`
	WordCount   int        `json:"word_count"`
	Truncated   bool       `json:"truncated"`
	Model       string     `json:"model"`
	Notices     []string   `json:"notices"`
	Error       string     `json:"error,omitempty"`
}

func newResultDTO(report *entity.Report, notices []string, runErr error) ResultDTO {
	if notices == nil {
		notices = []string{}
	}
	dto := ResultDTO{
		Summary:     report.Text(),
		Chunks:      make([]ChunkDTO, 0, len(report.Summaries)),
		TotalChunks: report.TotalChunks,
		WordCount:   report.WordCount,
		Truncated:   report.Truncated,
		Model:       report.Model,
		Notices:     notices,
	}
	for _, s := range report.Summaries {
		dto.Chunks = append(dto.Chunks, ChunkDTO{Index: s.Index, Text: s.Text})
	}
	if runErr != nil {
		dto.Error = userMessage(runErr)
	}
	return dto
}

// ProgressDTO is the payload of a progress event.
type ProgressDTO struct {
	Kind    string `json:"kind"`
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	Message string `json:"message,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// NoticeDTO is the payload of a notice event.
type NoticeDTO struct {
	Message string `json:"message"`
}
