// Package webhook records incoming payment webhook notifications verbatim.
// It has no dependency on the summarization pipeline.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"scholarscope/internal/observability/metrics"
)

// ErrInvalidPayload indicates the request body is not valid JSON.
var ErrInvalidPayload = errors.New("webhook payload is not valid JSON")

// Sink persists one record.
type Sink interface {
	Append(ctx context.Context, record []byte) error
}

// Service appends each valid JSON payload to the sink as one line.
type Service struct {
	sink Sink
}

// NewService creates a webhook Service.
func NewService(sink Sink) *Service {
	return &Service{sink: sink}
}

// Record validates body and appends it, compacted onto a single line. No
// schema is imposed and the payload's content is otherwise unchanged.
func (s *Service) Record(ctx context.Context, body []byte) error {
	if !json.Valid(body) {
		metrics.RecordWebhookEvent("invalid")
		return ErrInvalidPayload
	}

	var line bytes.Buffer
	if err := json.Compact(&line, body); err != nil {
		metrics.RecordWebhookEvent("invalid")
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	line.WriteByte('\n')

	if err := s.sink.Append(ctx, line.Bytes()); err != nil {
		metrics.RecordWebhookEvent("error")
		return fmt.Errorf("append webhook record: %w", err)
	}

	metrics.RecordWebhookEvent("logged")
	slog.InfoContext(ctx, "webhook recorded", slog.Int("bytes", line.Len()-1))
	return nil
}
