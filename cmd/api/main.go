package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"scholarscope/internal/bootstrap"
	"scholarscope/internal/config"
	hhttp "scholarscope/internal/handler/http"
	"scholarscope/internal/handler/http/requestid"
	hsummary "scholarscope/internal/handler/http/summary"
	hwebhook "scholarscope/internal/handler/http/webhook"
	"scholarscope/internal/infra/summarizer"
	"scholarscope/internal/observability/logging"
	"scholarscope/internal/observability/tracing"
)

// @title           ScholarScope API
// @version         1.0
// @description     Summarizes uploaded academic papers chunk by chunk and logs webhook notifications.
// @BasePath        /

// multipartMemory is the part of an upload held in memory before spilling to disk.
const multipartMemory = 8 << 20

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	shutdownTracing := tracing.Setup(cfg.Version)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(ctx); err != nil {
			logger.Warn("tracer shutdown failed", slog.Any("error", err))
		}
	}()

	sum, err := bootstrap.NewSummarizer(cfg)
	if err != nil {
		return err
	}
	webhookSvc, webhookLog := bootstrap.NewWebhook(cfg.Webhook)
	defer func() {
		if err := webhookLog.Close(); err != nil {
			logger.Warn("failed to close webhook log", slog.Any("error", err))
		}
	}()

	mux := http.NewServeMux()
	hsummary.Register(mux, sum.Service, multipartMemory)
	hwebhook.Register(mux, webhookSvc)
	mux.Handle("GET /health", healthHandler(cfg, sum))
	mux.Handle("GET /live", &hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           applyMiddleware(logger, mux, cfg.MaxUploadBytes),
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		slog.String("addr", cfg.HTTPAddr),
		slog.String("version", cfg.Version),
		slog.String("provider", cfg.Summarizer.Provider),
		slog.String("model_free", cfg.Summarizer.ModelFree),
		slog.String("model_pro", cfg.Summarizer.ModelPro),
		slog.String("webhook_log", cfg.Webhook.LogPath))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})
	return g.Wait()
}

func healthHandler(cfg *config.AppConfig, sum *bootstrap.Summarizer) *hhttp.HealthHandler {
	h := &hhttp.HealthHandler{
		Version:        cfg.Version,
		Provider:       cfg.Summarizer.Provider,
		WebhookLogPath: cfg.Webhook.LogPath,
	}
	if cb := summarizer.BreakerOf(sum.Completer); cb != nil {
		h.Circuits = append(h.Circuits, cb)
	}
	return h
}

// applyMiddleware wraps the handler with the middleware chain.
// Order: Request ID → Recovery → Logging → Body Limit → Tracing → Metrics
func applyMiddleware(logger *slog.Logger, handler http.Handler, maxUploadBytes int64) http.Handler {
	return hhttp.Chain(handler,
		requestid.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.LimitRequestBody(maxUploadBytes),
		tracing.Middleware,
		hhttp.MetricsMiddleware,
	)
}
