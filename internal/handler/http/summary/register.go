// Package summary serves the upload page and the summarization endpoints.
package summary

import (
	"net/http"
)

// Register registers the upload page and summary routes. maxMemory bounds the
// part of a multipart upload held in memory; the rest spills to temp files.
func Register(mux *http.ServeMux, svc Runner, maxMemory int64) {
	mux.Handle("GET /{$}", PageHandler{Svc: svc})
	mux.Handle("POST /summaries", RunHandler{Svc: svc, MaxMemory: maxMemory})
	mux.Handle("POST /summaries/download", DownloadHandler{Svc: svc, MaxMemory: maxMemory})
	mux.Handle("POST /summaries/stream", StreamHandler{Svc: svc, MaxMemory: maxMemory})
}
