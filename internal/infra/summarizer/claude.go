package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"

	"scholarscope/internal/resilience/circuitbreaker"
	"scholarscope/internal/usecase/summarize"
)

// Claude completes prompts with the Anthropic Messages API.
type Claude struct {
	client anthropic.Client
	guard  *guard
}

// NewClaude creates a Claude completer. The SDK's own retries are disabled so
// the retry policy in cfg is the only one applied.
func NewClaude(cfg Config) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}

	slog.Info("initialized claude completer",
		slog.Int("retry_attempts", cfg.RetryAttempts))

	return &Claude{
		client: anthropic.NewClient(opts...),
		guard:  newGuard("claude-api", cfg),
	}
}

// Complete implements summarize.Completer.
func (c *Claude) Complete(ctx context.Context, req summarize.CompletionRequest) (string, error) {
	return c.guard.do(ctx, func(ctx context.Context) (string, error) {
		return c.doComplete(ctx, req)
	})
}

// doComplete performs one API call without retry or circuit breaker.
func (c *Claude) doComplete(ctx context.Context, req summarize.CompletionRequest) (string, error) {
	requestID := uuid.NewString()
	slog.DebugContext(ctx, "claude completion started",
		slog.String("claude_request_id", requestID),
		slog.String("model", req.Model),
		slog.Int("prompt_length", len([]rune(req.Prompt))))

	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(req.Model),
		MaxTokens:   int64(req.MaxTokens),
		Temperature: anthropic.Float(float64(req.Temperature)),
		System:      []anthropic.TextBlockParam{{Text: req.System}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	})
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, block := range message.Content {
		if textBlock, ok := block.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(textBlock.Text)
		}
	}
	if b.Len() == 0 {
		slog.WarnContext(ctx, "claude returned no text blocks",
			slog.String("claude_request_id", requestID),
			slog.Int("blocks", len(message.Content)))
		return "", fmt.Errorf("claude %w", ErrEmptyResponse)
	}
	return b.String(), nil
}

// Breaker returns the circuit breaker guarding API calls.
func (c *Claude) Breaker() *circuitbreaker.CircuitBreaker {
	return c.guard.circuitBreaker
}
