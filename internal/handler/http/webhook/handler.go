// Package webhook accepts webhook notifications and appends them to the log.
package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"scholarscope/internal/handler/http/respond"
	webhookUC "scholarscope/internal/usecase/webhook"
)

// Recorder stores one webhook payload.
type Recorder interface {
	Record(ctx context.Context, body []byte) error
}

// Handler logs each POSTed JSON body.
type Handler struct {
	Svc Recorder
}

// ServeHTTP records a webhook
// @Summary      Record webhook
// @Description  Appends the JSON body, compacted to one line, to the webhook log
// @Tags         webhook
// @Accept       json
// @Success      200 "Recorded"
// @Failure      400 {object} respond.ErrorBody "Body is not valid JSON"
// @Failure      413 {object} respond.ErrorBody "Body too large"
// @Failure      500 {object} respond.ErrorBody "Log could not be written"
// @Router       /webhook [post]
func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.SafeError(w, http.StatusRequestEntityTooLarge,
				respond.NewAppError(http.StatusRequestEntityTooLarge,
					fmt.Sprintf("payload too large: the limit is %d bytes", maxErr.Limit), err))
			return
		}
		respond.SafeError(w, http.StatusBadRequest,
			respond.NewAppError(http.StatusBadRequest, "could not read request body", err))
		return
	}

	if err := h.Svc.Record(r.Context(), body); err != nil {
		if errors.Is(err, webhookUC.ErrInvalidPayload) {
			respond.SafeError(w, http.StatusBadRequest,
				respond.NewAppError(http.StatusBadRequest, webhookUC.ErrInvalidPayload.Error(), nil))
			return
		}
		respond.SafeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// Register registers the webhook route.
func Register(mux *http.ServeMux, svc Recorder) {
	mux.Handle("POST /webhook", Handler{Svc: svc})
}
