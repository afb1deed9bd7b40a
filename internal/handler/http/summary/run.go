package summary

import (
	"log/slog"
	"net/http"

	"scholarscope/internal/handler/http/respond"
	"scholarscope/internal/observability/logging"
	"scholarscope/internal/usecase/summarize"
)

// RunHandler summarizes the uploaded documents and returns the report as JSON.
type RunHandler struct {
	Svc       Runner
	MaxMemory int64
}

// ServeHTTP runs a summary
// @Summary      Summarize documents
// @Description  Extracts, truncates and chunks up to three PDF or TXT files, then summarizes each chunk in order
// @Tags         summaries
// @Accept       multipart/form-data
// @Produce      json
// @Param        files formData file true "PDF or TXT documents (repeatable)"
// @Param        model formData string false "free, pro or a model identifier"
// @Success      200 {object} ResultDTO
// @Failure      400 {object} respond.ErrorBody "Too many files, no files, unknown model or unreadable document"
// @Failure      413 {object} respond.ErrorBody "Upload too large"
// @Failure      502 {object} ResultDTO "A chunk failed; earlier summaries are included"
// @Router       /summaries [post]
func (h RunHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())

	in, err := parseUpload(r, h.MaxMemory, h.Svc.Config().MaxFiles)
	if err != nil {
		writeRunError(w, err)
		return
	}

	var notices []string
	report, err := h.Svc.Run(r.Context(), in, func(ev summarize.ProgressEvent) {
		if ev.Kind == summarize.EventNotice {
			notices = append(notices, ev.Message)
		}
	})
	if report == nil {
		writeRunError(w, err)
		return
	}

	code := http.StatusOK
	if err != nil {
		code = statusFor(err)
		logger.Warn("summary incomplete",
			slog.Int("completed", len(report.Summaries)),
			slog.Int("total", report.TotalChunks),
			slog.String("error", respond.SanitizeError(err)))
	}
	respond.JSON(w, code, newResultDTO(report, notices, err))
}
