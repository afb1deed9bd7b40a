package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"scholarscope/internal/resilience/circuitbreaker"
	"scholarscope/internal/usecase/summarize"
)

// ErrEmptyResponse is returned when a provider answers without any text.
var ErrEmptyResponse = errors.New("api returned empty response")

// OpenAI completes prompts with the OpenAI chat-completions API.
type OpenAI struct {
	client *openai.Client
	guard  *guard
}

// NewOpenAI creates an OpenAI completer. cfg.BaseURL, when set, points the
// client at a compatible gateway.
func NewOpenAI(cfg Config) *OpenAI {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	if cfg.Timeout > 0 {
		clientCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	slog.Info("initialized openai completer",
		slog.String("base_url", clientCfg.BaseURL),
		slog.Int("retry_attempts", cfg.RetryAttempts))

	return &OpenAI{
		client: openai.NewClientWithConfig(clientCfg),
		guard:  newGuard("openai-api", cfg),
	}
}

// Complete implements summarize.Completer.
func (o *OpenAI) Complete(ctx context.Context, req summarize.CompletionRequest) (string, error) {
	return o.guard.do(ctx, func(ctx context.Context) (string, error) {
		return o.doComplete(ctx, req)
	})
}

// doComplete performs one API call without retry or circuit breaker.
func (o *OpenAI) doComplete(ctx context.Context, req summarize.CompletionRequest) (string, error) {
	slog.DebugContext(ctx, "openai completion started",
		slog.String("model", req.Model),
		slog.Int("prompt_length", len([]rune(req.Prompt))))

	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai %w", ErrEmptyResponse)
	}
	return resp.Choices[0].Message.Content, nil
}

// Breaker returns the circuit breaker guarding API calls.
func (o *OpenAI) Breaker() *circuitbreaker.CircuitBreaker {
	return o.guard.circuitBreaker
}
