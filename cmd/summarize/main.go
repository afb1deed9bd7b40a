// Package main provides a CLI that summarizes local documents with the same
// pipeline as the HTTP service.
// Usage: scholarscope-summarize [-model free|pro|<id>] [-o file] [-output text|json] file...
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"

	"scholarscope/internal/bootstrap"
	"scholarscope/internal/config"
	"scholarscope/internal/domain/entity"
	"scholarscope/internal/handler/http/respond"
	"scholarscope/internal/observability/logging"
	"scholarscope/internal/usecase/summarize"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailed  = 1
	exitUsage   = 2
	exitPartial = 3
)

// SummaryOutput is the JSON output format.
type SummaryOutput struct {
	Model       string        `json:"model"`
	WordCount   int           `json:"word_count"`
	Truncated   bool          `json:"truncated"`
	TotalChunks int           `json:"total_chunks"`
	Chunks      []ChunkOutput `json:"chunks"`
	Summary     string        `json:"summary"`
	Error       string        `json:"error,omitempty"`
}

// ChunkOutput is one chunk summary in the JSON output.
type ChunkOutput struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("scholarscope-summarize", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		model        string
		outPath      string
		outputFormat string
	)
	fs.StringVar(&model, "model", "", "Model to use: free, pro or a model identifier (default free)")
	fs.StringVar(&outPath, "o", "", "Write the report to this file instead of stdout")
	fs.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: scholarscope-summarize [-model free|pro|<id>] [-o file] [-output text|json] file...")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Examples:")
		fmt.Fprintln(stderr, "  scholarscope-summarize paper.pdf")
		fmt.Fprintln(stderr, "  scholarscope-summarize -model pro -o summary.txt a.pdf b.txt")
		fmt.Fprintln(stderr, "  scholarscope-summarize -output json notes.txt")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	if outputFormat != "text" && outputFormat != "json" {
		fmt.Fprintf(stderr, "Error: invalid output format %q (must be text or json)\n", outputFormat)
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	// Logs go to stderr so stdout carries only the report.
	slog.SetDefault(logging.New(stderr, logging.Options{Level: envOr("LOG_LEVEL", "warn"), Format: "text"}))

	warn := color.New(color.FgYellow)
	fail := color.New(color.FgRed, color.Bold)
	info := color.New(color.FgCyan)

	cfg, err := config.Load()
	if err != nil {
		fail.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	sum, err := bootstrap.NewSummarizer(cfg)
	if err != nil {
		fail.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}

	docs, err := readDocuments(fs.Args())
	if err != nil {
		fail.Fprintf(stderr, "❌ %s\n", errorText(err))
		return exitFailed
	}

	report, runErr := sum.Service.Run(ctx, summarize.RunInput{Documents: docs, Model: model},
		func(ev summarize.ProgressEvent) {
			switch ev.Kind {
			case summarize.EventNotice:
				warn.Fprintf(stderr, "⚠️ %s\n", ev.Message)
			case summarize.EventChunkStarted:
				info.Fprintln(stderr, ev.Message)
			}
		})
	if report == nil {
		fail.Fprintf(stderr, "❌ %s\n", errorText(runErr))
		return exitFailed
	}
	if runErr != nil {
		fail.Fprintf(stderr, "⚠️ %s\n", errorText(runErr))
	}

	if err := writeReport(report, runErr, outputFormat, outPath, stdout); err != nil {
		fail.Fprintf(stderr, "Error: %v\n", err)
		return exitFailed
	}
	if outPath != "" {
		color.New(color.FgGreen).Fprintf(stderr, "📎 Saved %s\n", outPath)
	}

	if runErr != nil {
		return exitPartial
	}
	return exitOK
}

func readDocuments(paths []string) ([]entity.Document, error) {
	docs := make([]entity.Document, 0, len(paths))
	for _, p := range paths {
		// #nosec G304 -- paths are given by the user on the command line.
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		doc, err := entity.NewDocument(filepath.Base(p), data)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func writeReport(report *entity.Report, runErr error, format, outPath string, stdout io.Writer) error {
	w := stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		w = f
	}

	if format == "json" {
		out := SummaryOutput{
			Model:       report.Model,
			WordCount:   report.WordCount,
			Truncated:   report.Truncated,
			TotalChunks: report.TotalChunks,
			Chunks:      make([]ChunkOutput, 0, len(report.Summaries)),
			Summary:     report.Text(),
		}
		for _, s := range report.Summaries {
			out.Chunks = append(out.Chunks, ChunkOutput{Index: s.Index, Text: s.Text})
		}
		if runErr != nil {
			out.Error = errorText(runErr)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	text := report.Text()
	if outPath == "" && text != "" {
		text += "\n"
	}
	_, err := io.WriteString(w, text)
	return err
}

// errorText is the message shown for an error, with secrets masked.
func errorText(err error) string {
	var ve *entity.ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return respond.SanitizeError(err)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
