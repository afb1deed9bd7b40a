// Package logging builds the process logger and carries request-scoped loggers
// through a context.
//
// Output is JSON by default; LOG_FORMAT=text switches to the slog text handler
// for local runs. LOG_LEVEL selects debug, info, warn or error.
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
//	    logging.WithRequestID(r.Context(), slog.Default()).Info("summary requested")
//	}
package logging
