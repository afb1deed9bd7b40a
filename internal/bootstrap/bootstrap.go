// Package bootstrap builds the application services from an AppConfig. Both
// the HTTP server and the CLI start from here.
package bootstrap

import (
	"fmt"
	"io"
	"log/slog"

	"scholarscope/internal/config"
	"scholarscope/internal/domain/entity"
	"scholarscope/internal/infra/extractor"
	"scholarscope/internal/infra/summarizer"
	infraWebhook "scholarscope/internal/infra/webhook"
	"scholarscope/internal/usecase/summarize"
	webhookUC "scholarscope/internal/usecase/webhook"
)

// Summarizer holds the summarization service and the completer behind it.
type Summarizer struct {
	Service   *summarize.Service
	Completer summarize.Completer
}

// NewSummarizer wires the configured completion provider and the document
// extractor into a summarize.Service.
func NewSummarizer(cfg *config.AppConfig) (*Summarizer, error) {
	completer, err := summarizer.New(summarizer.Config{
		Provider:      cfg.Summarizer.Provider,
		APIKey:        cfg.Summarizer.APIKey(),
		BaseURL:       cfg.Summarizer.BaseURL,
		Timeout:       cfg.Summarizer.Timeout,
		RetryAttempts: cfg.Summarizer.RetryAttempts,
	})
	if err != nil {
		return nil, fmt.Errorf("create completer: %w", err)
	}
	if cfg.Summarizer.APIKey() == "" && cfg.Summarizer.Provider != summarizer.ProviderNoOp {
		slog.Warn("no API key configured, completion calls will fail",
			slog.String("provider", cfg.Summarizer.Provider))
	}

	svc, err := summarize.NewService(summarize.Config{
		MaxFiles:    cfg.Limits.MaxFiles,
		MaxWords:    cfg.Limits.MaxWords,
		ChunkWords:  cfg.Limits.ChunkWords,
		Temperature: float32(cfg.Summarizer.Temperature),
		MaxTokens:   cfg.Summarizer.MaxTokens,
		Models:      entity.NewModelCatalog(cfg.Summarizer.ModelFree, cfg.Summarizer.ModelPro),
	}, extractor.New(), completer)
	if err != nil {
		return nil, fmt.Errorf("create summarize service: %w", err)
	}
	return &Summarizer{Service: svc, Completer: completer}, nil
}

// NewWebhook builds the webhook service. A positive MaxSizeMB selects the
// rotating sink; the returned Closer must be closed on shutdown.
func NewWebhook(cfg config.WebhookConfig) (*webhookUC.Service, io.Closer) {
	if cfg.MaxSizeMB > 0 {
		sink := infraWebhook.NewRotatingSink(cfg.LogPath, infraWebhook.RotationConfig{
			MaxSizeMB:  cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
		return webhookUC.NewService(sink), sink
	}
	return webhookUC.NewService(infraWebhook.NewFileSink(cfg.LogPath)), nopCloser{}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
