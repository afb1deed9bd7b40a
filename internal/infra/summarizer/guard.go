package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"

	"scholarscope/internal/resilience/circuitbreaker"
	"scholarscope/internal/resilience/retry"
	"scholarscope/internal/usecase/summarize"
)

// guard applies the timeout, circuit breaker, retry policy and metrics shared
// by every remote provider.
type guard struct {
	name            string
	timeout         time.Duration
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	metricsRecorder CompletionMetricsRecorder

	mu      sync.Mutex
	lastErr error
}

func newGuard(name string, cfg Config) *guard {
	rc := retry.CompletionAPIConfig(cfg.RetryAttempts)
	rc.Retryable = isTransient
	return &guard{
		name:            name,
		timeout:         cfg.Timeout,
		circuitBreaker:  circuitbreaker.New(circuitbreaker.CompletionAPIConfig(name)),
		retryConfig:     rc,
		metricsRecorder: NewPrometheusCompletionMetrics(),
	}
}

// do runs call under the guard and returns the provider's text or error.
func (g *guard) do(ctx context.Context, call func(context.Context) (string, error)) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var result string
	err := retry.WithBackoff(ctx, g.retryConfig, func() error {
		start := time.Now()
		cbResult, err := g.circuitBreaker.Execute(func() (interface{}, error) {
			return call(ctx)
		})
		duration := time.Since(start)

		if err != nil {
			if errors.Is(err, circuitbreaker.ErrOpenState) {
				slog.WarnContext(ctx, "completion circuit breaker open, request rejected",
					slog.String("provider", g.name),
					slog.String("state", g.circuitBreaker.State().String()))
				g.metricsRecorder.RecordFailure(g.name, "circuit_open")
				if last := g.lastFailure(); last != nil {
					return fmt.Errorf("%s unavailable: %w: %w", g.name, err, last)
				}
				return fmt.Errorf("%s unavailable: %w", g.name, err)
			}
			g.setLastFailure(err)
			slog.ErrorContext(ctx, "completion failed",
				slog.String("provider", g.name),
				slog.Duration("duration", duration),
				slog.String("error", err.Error()))
			g.metricsRecorder.RecordFailure(g.name, failureReason(err))
			return err
		}

		g.setLastFailure(nil)
		result = cbResult.(string)
		g.metricsRecorder.RecordDuration(g.name, duration)
		g.metricsRecorder.RecordLength(g.name, len([]rune(result)))
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// lastFailure is the most recent provider error, reported while the breaker
// rejects calls so callers still see why it opened.
func (g *guard) lastFailure() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

func (g *guard) setLastFailure(err error) {
	g.mu.Lock()
	g.lastErr = err
	g.mu.Unlock()
}

// statusCode extracts the HTTP status of a provider error, or 0.
func statusCode(err error) int {
	var oaErr *openai.APIError
	if errors.As(err, &oaErr) {
		return oaErr.HTTPStatusCode
	}
	var oaReqErr *openai.RequestError
	if errors.As(err, &oaReqErr) {
		return oaReqErr.HTTPStatusCode
	}
	var anErr *anthropic.Error
	if errors.As(err, &anErr) {
		return anErr.StatusCode
	}
	return 0
}

// isTransient reports whether a provider error is worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, circuitbreaker.ErrOpenState) {
		return false
	}
	if code := statusCode(err); code != 0 {
		return retry.RetryableStatus(code)
	}
	return retry.IsRetryable(err)
}

func failureReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	}
	if code := statusCode(err); code != 0 {
		return fmt.Sprintf("http_%d", code)
	}
	return "transport"
}

// breakerProvider is implemented by completers that sit behind a circuit breaker.
type breakerProvider interface {
	Breaker() *circuitbreaker.CircuitBreaker
}

// BreakerOf returns the circuit breaker guarding c, or nil when c has none.
func BreakerOf(c summarize.Completer) *circuitbreaker.CircuitBreaker {
	if bp, ok := c.(breakerProvider); ok {
		return bp.Breaker()
	}
	return nil
}
