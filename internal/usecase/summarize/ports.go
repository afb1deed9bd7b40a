package summarize

import (
	"context"

	"scholarscope/internal/domain/entity"
)

// Extractor returns the plain text of one document.
type Extractor interface {
	Extract(ctx context.Context, doc entity.Document) (string, error)
}

// CompletionRequest is one chat-completion call.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}

// Completer issues a single chat-completion request and returns the generated text.
type Completer interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// EventKind distinguishes progress events.
type EventKind string

const (
	// EventNotice carries a user-visible notice such as truncation.
	EventNotice EventKind = "notice"
	// EventChunkStarted is emitted before a chunk's completion call.
	EventChunkStarted EventKind = "chunk_started"
	// EventChunkCompleted is emitted after a chunk's summary is produced.
	EventChunkCompleted EventKind = "chunk_completed"
)

// ProgressEvent reports the state of a run. Index is 1-based.
type ProgressEvent struct {
	Kind    EventKind
	Index   int
	Total   int
	Message string
	Summary string
}

// ProgressFunc receives events synchronously from Run. It may be nil.
type ProgressFunc func(ProgressEvent)
