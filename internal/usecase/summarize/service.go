package summarize

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"scholarscope/internal/domain/entity"
	"scholarscope/internal/observability/metrics"
	"scholarscope/internal/observability/tracing"
	"scholarscope/internal/utils/text"
)

// RunInput is one summarization request.
type RunInput struct {
	Documents []entity.Document
	// Model is a tier name or model identifier; empty selects the default.
	Model string
}

// Service runs the summarization pipeline. Chunks are summarized strictly in
// order, one completion call per chunk, and the first failure ends the run.
type Service struct {
	cfg       Config
	extractor Extractor
	completer Completer
}

// NewService creates a Service. cfg is validated here so a misconfigured
// process fails at startup rather than on the first upload.
func NewService(cfg Config, extractor Extractor, completer Completer) (*Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid summarize config: %w", err)
	}
	if extractor == nil || completer == nil {
		return nil, errors.New("extractor and completer are required")
	}
	return &Service{cfg: cfg, extractor: extractor, completer: completer}, nil
}

// Config returns the limits the service enforces.
func (s *Service) Config() Config {
	return s.cfg
}

// ExtractText concatenates the text of docs in upload order. The first
// document that cannot be read aborts extraction with an *ExtractionError.
func (s *Service) ExtractText(ctx context.Context, docs []entity.Document) (string, error) {
	var b strings.Builder
	for _, doc := range docs {
		content, err := s.extractor.Extract(ctx, doc)
		metrics.RecordDocumentExtracted(string(doc.Type), err == nil)
		if err != nil {
			return "", &ExtractionError{Document: doc.Name, Err: err}
		}
		b.WriteString(content)
	}
	return b.String(), nil
}

// SummarizeChunk issues one completion request for chunk and returns the
// trimmed response. Provider failures are returned as *RemoteAPIError with
// ChunkIndex left at zero.
func (s *Service) SummarizeChunk(ctx context.Context, chunk string, model entity.Model) (string, error) {
	out, err := s.completer.Complete(ctx, CompletionRequest{
		Model:       model.ID,
		System:      SystemInstruction,
		Prompt:      BuildPrompt(chunk),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return "", &RemoteAPIError{Err: err}
	}
	return strings.TrimSpace(out), nil
}

// Run validates the input, extracts, truncates and splits the text, then
// summarizes each chunk in order. When a chunk fails, Run returns the report
// holding every earlier summary together with the *RemoteAPIError; later
// chunks are never attempted. Validation and extraction errors return a nil
// report and happen before any completion call.
func (s *Service) Run(ctx context.Context, in RunInput, progress ProgressFunc) (*entity.Report, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	if len(in.Documents) > s.cfg.MaxFiles {
		metrics.RecordSummaryRun(metrics.OutcomeTooManyFiles)
		return nil, &TooManyFilesError{Count: len(in.Documents), Max: s.cfg.MaxFiles}
	}
	if len(in.Documents) == 0 {
		metrics.RecordSummaryRun(metrics.OutcomeRejected)
		return nil, ErrNoDocuments
	}
	model, err := s.cfg.Models.Resolve(in.Model)
	if err != nil {
		metrics.RecordSummaryRun(metrics.OutcomeRejected)
		return nil, err
	}

	ctx, span := tracing.StartSpan(ctx, "summarize.Run",
		attribute.String("model", model.ID),
		attribute.Int("documents", len(in.Documents)))

	raw, err := s.ExtractText(ctx, in.Documents)
	if err != nil {
		metrics.RecordSummaryRun(metrics.OutcomeExtractionFailed)
		tracing.EndWithError(span, err)
		return nil, err
	}

	body, truncated := text.Truncate(raw, s.cfg.MaxWords)
	if truncated {
		progress(ProgressEvent{
			Kind:    EventNotice,
			Message: fmt.Sprintf("Truncating to %d words.", s.cfg.MaxWords),
		})
	}

	chunks := text.SplitChunks(body, s.cfg.ChunkWords)
	report := &entity.Report{
		Model:       model.ID,
		WordCount:   text.CountWords(body),
		Truncated:   truncated,
		TotalChunks: len(chunks),
		Summaries:   make([]entity.ChunkSummary, 0, len(chunks)),
	}
	metrics.RecordWordsProcessed(report.WordCount)
	span.SetAttributes(
		attribute.Int("words", report.WordCount),
		attribute.Int("chunks", report.TotalChunks),
		attribute.Bool("truncated", truncated))

	slog.InfoContext(ctx, "summarization started",
		slog.String("model", model.ID),
		slog.Int("documents", len(in.Documents)),
		slog.Int("words", report.WordCount),
		slog.Int("chunks", report.TotalChunks),
		slog.Bool("truncated", truncated))

	for i, chunk := range chunks {
		index := i + 1
		progress(ProgressEvent{
			Kind:    EventChunkStarted,
			Index:   index,
			Total:   len(chunks),
			Message: fmt.Sprintf("Processing chunk %d/%d", index, len(chunks)),
		})

		summary, err := s.summarizeIndexed(ctx, chunk, model, index)
		if err != nil {
			metrics.RecordSummaryRun(metrics.OutcomePartial)
			slog.WarnContext(ctx, "summarization halted",
				slog.Int("chunk", index),
				slog.Int("completed", len(report.Summaries)),
				slog.Int("total", len(chunks)),
				slog.Any("error", err))
			tracing.EndWithError(span, err)
			return report, err
		}

		report.Summaries = append(report.Summaries, entity.ChunkSummary{Index: index, Text: summary})
		progress(ProgressEvent{
			Kind:    EventChunkCompleted,
			Index:   index,
			Total:   len(chunks),
			Summary: summary,
		})
	}

	metrics.RecordSummaryRun(metrics.OutcomeCompleted)
	slog.InfoContext(ctx, "summarization completed",
		slog.String("model", model.ID),
		slog.Int("chunks", report.TotalChunks))
	tracing.EndWithError(span, nil)
	return report, nil
}

func (s *Service) summarizeIndexed(ctx context.Context, chunk string, model entity.Model, index int) (string, error) {
	ctx, span := tracing.StartSpan(ctx, "summarize.Chunk",
		attribute.Int("chunk.index", index),
		attribute.Int("chunk.words", text.CountWords(chunk)))

	start := time.Now()
	summary, err := s.SummarizeChunk(ctx, chunk, model)
	metrics.RecordChunkSummarized(err == nil, time.Since(start))

	var apiErr *RemoteAPIError
	if errors.As(err, &apiErr) {
		apiErr.ChunkIndex = index
	}
	tracing.EndWithError(span, err)
	return summary, err
}
