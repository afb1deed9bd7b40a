package summary

import (
	"fmt"
	"net/http"
	"strings"

	"scholarscope/internal/domain/entity"
	"scholarscope/internal/handler/http/respond"
	"scholarscope/internal/usecase/summarize"
)

// DownloadHandler serves a report as a plain-text attachment.
//
// A request with a "summary" field downloads that text, which is how the upload
// page saves what it is showing. Browsers submit textarea line breaks as CRLF,
// so they are turned back into the LF the page displays. A request with files
// runs the pipeline first and downloads the resulting report; when a chunk
// fails, the partial result is returned as JSON instead.
type DownloadHandler struct {
	Svc       Runner
	MaxMemory int64
}

// ServeHTTP downloads a report
// @Summary      Download summary
// @Description  Returns the report as ScholarScope_Summary.txt
// @Tags         summaries
// @Accept       multipart/form-data
// @Produce      plain
// @Param        summary formData string false "Rendered report to download as is"
// @Param        files formData file false "PDF or TXT documents to summarize first"
// @Param        model formData string false "free, pro or a model identifier"
// @Success      200 {string} string "Report text"
// @Failure      400 {object} respond.ErrorBody "Invalid input"
// @Failure      502 {object} ResultDTO "A chunk failed; holds the partial result"
// @Router       /summaries/download [post]
func (h DownloadHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/x-www-form-urlencoded") {
		if err := r.ParseForm(); err != nil {
			writeRunError(w, formError(err))
			return
		}
		writeAttachment(w, displayedText(r.PostForm.Get(SummaryField)))
		return
	}

	in, err := parseUpload(r, h.MaxMemory, h.Svc.Config().MaxFiles)
	if err != nil {
		writeRunError(w, err)
		return
	}
	if rendered, ok := r.MultipartForm.Value[SummaryField]; ok && len(in.Documents) == 0 {
		writeAttachment(w, displayedText(strings.Join(rendered, "")))
		return
	}

	var notices []string
	report, err := h.Svc.Run(r.Context(), in, func(ev summarize.ProgressEvent) {
		if ev.Kind == summarize.EventNotice {
			notices = append(notices, ev.Message)
		}
	})
	switch {
	case report == nil:
		writeRunError(w, err)
		return
	case err != nil:
		respond.JSON(w, statusFor(err), newResultDTO(report, notices, err))
		return
	}
	writeAttachment(w, report.Text())
}

// displayedText undoes the CRLF line breaks of a submitted form field.
func displayedText(field string) string {
	return strings.ReplaceAll(field, "\r\n", "\n")
}

func writeAttachment(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", entity.SummaryFileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
