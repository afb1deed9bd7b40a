package summary

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"scholarscope/internal/handler/http/respond"
	"scholarscope/internal/observability/logging"
	"scholarscope/internal/usecase/summarize"
)

// Server-sent event names.
const (
	EventProgress = "progress"
	EventNotice   = "notice"
	EventResult   = "result"
	EventError    = "error"
)

// StreamHandler runs a summary and reports progress as server-sent events.
type StreamHandler struct {
	Svc       Runner
	MaxMemory int64
}

// ServeHTTP streams a summary run
// @Summary      Summarize documents with progress
// @Description  Same input as POST /summaries; emits progress, notice, result and error events
// @Tags         summaries
// @Accept       multipart/form-data
// @Produce      text/event-stream
// @Param        files formData file true "PDF or TXT documents (repeatable)"
// @Param        model formData string false "free, pro or a model identifier"
// @Success      200 {string} string "Event stream"
// @Failure      400 {object} respond.ErrorBody "Rejected before the stream started"
// @Router       /summaries/stream [post]
func (h StreamHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	in, err := parseUpload(r, h.MaxMemory, h.Svc.Config().MaxFiles)
	if err != nil {
		writeRunError(w, err)
		return
	}

	stream := newEventStream(w, logger)
	var notices []string
	report, err := h.Svc.Run(r.Context(), in, func(ev summarize.ProgressEvent) {
		switch ev.Kind {
		case summarize.EventNotice:
			notices = append(notices, ev.Message)
			stream.send(EventNotice, NoticeDTO{Message: ev.Message})
		default:
			stream.send(EventProgress, ProgressDTO{
				Kind:    string(ev.Kind),
				Index:   ev.Index,
				Total:   ev.Total,
				Message: ev.Message,
				Summary: ev.Summary,
			})
		}
	})

	switch {
	case report == nil && !stream.started:
		// nothing sent yet, so a plain error response still fits
		writeRunError(w, err)
	case report == nil:
		stream.send(EventError, respond.ErrorBody{Error: userMessage(err)})
	case err != nil:
		stream.send(EventError, newResultDTO(report, notices, err))
	default:
		stream.send(EventResult, newResultDTO(report, notices, nil))
	}
}

// eventStream writes server-sent events, sending headers on the first event.
type eventStream struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	logger  *slog.Logger
	started bool
	failed  bool
}

func newEventStream(w http.ResponseWriter, logger *slog.Logger) *eventStream {
	return &eventStream{w: w, rc: http.NewResponseController(w), logger: logger}
}

func (s *eventStream) send(event string, payload any) {
	if s.failed {
		return
	}
	if !s.started {
		h := s.w.Header()
		h.Set("Content-Type", "text/event-stream")
		h.Set("Cache-Control", "no-cache")
		h.Set("Connection", "keep-alive")
		h.Set("X-Accel-Buffering", "no")
		s.w.WriteHeader(http.StatusOK)
		s.started = true
	}

	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to encode event", slog.String("event", event), slog.Any("error", err))
		return
	}
	if _, err := fmt.Fprintf(s.w, "event: %s\ndata: %s\n\n", event, data); err != nil {
		s.fail(event, err)
		return
	}
	if err := s.rc.Flush(); err != nil {
		s.fail(event, err)
	}
}

func (s *eventStream) fail(event string, err error) {
	s.failed = true
	s.logger.Warn("event stream write failed", slog.String("event", event), slog.Any("error", err))
}
