// Package http provides the HTTP surface of the service: middleware, metrics,
// health probes and the handler subpackages for summaries and webhooks.
package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthResponse represents the JSON response for health check endpoints.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "unhealthy"
	Timestamp string                 `json:"timestamp"` // ISO 8601 format
	Checks    map[string]CheckStatus `json:"checks"`    // Status of each check item
	Version   string                 `json:"version"`   // Application version
}

// CheckStatus represents the status of a single health check.
type CheckStatus struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// CircuitChecker reports the state of a circuit breaker guarding a remote API.
type CircuitChecker interface {
	Name() string
	IsOpen() bool
}

// HealthHandler reports whether the completion provider is accepting calls
// and whether the webhook log can be written.
type HealthHandler struct {
	Version string
	// Provider is the configured completion provider name.
	Provider string
	// Circuits may be empty when the provider makes no remote calls.
	Circuits []CircuitChecker
	// WebhookLogPath is the file webhook events are appended to.
	WebhookLogPath string
}

// ServeHTTP performs health checks and returns the application health status.
// Returns 200 OK if healthy, or 503 Service Unavailable if any check fails.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := h.runChecks()

	status := statusHealthy
	statusCode := http.StatusOK
	for _, c := range checks {
		if c.Status == statusUnhealthy {
			status = statusUnhealthy
			statusCode = http.StatusServiceUnavailable
			break
		}
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

func (h *HealthHandler) runChecks() map[string]CheckStatus {
	return map[string]CheckStatus{
		"summarizer":  h.checkSummarizer(),
		"webhook_log": h.checkWebhookLog(),
	}
}

// checkSummarizer fails while any circuit breaker is open.
func (h *HealthHandler) checkSummarizer() CheckStatus {
	details := map[string]interface{}{"provider": h.Provider}
	check := CheckStatus{Status: statusHealthy, Details: details}

	for _, c := range h.Circuits {
		state := "closed"
		if c.IsOpen() {
			state = "open"
			check.Status = statusUnhealthy
			check.Message = fmt.Sprintf("circuit breaker %s is open", c.Name())
		}
		details[c.Name()] = state
	}
	return check
}

// checkWebhookLog verifies that a file can be created next to the log.
func (h *HealthHandler) checkWebhookLog() CheckStatus {
	if h.WebhookLogPath == "" {
		return CheckStatus{Status: statusUnhealthy, Message: "not configured"}
	}

	dir := filepath.Dir(h.WebhookLogPath)
	f, err := os.CreateTemp(dir, ".healthcheck-*")
	if err != nil {
		return CheckStatus{Status: statusUnhealthy, Message: "log directory is not writable"}
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)

	return CheckStatus{
		Status:  statusHealthy,
		Details: map[string]interface{}{"path": h.WebhookLogPath},
	}
}

// LiveHandler handles liveness probe requests.
type LiveHandler struct{}

// ServeHTTP always returns 200 OK while the process can respond.
func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("alive")); err != nil {
		slog.Error("alive: failed to write response", slog.Any("error", err))
	}
}
