// Package webhook stores received webhook payloads in an append-only log file.
package webhook

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// FileSink appends records to a single file, one write per record. Writes are
// serialized so concurrent records never interleave.
type FileSink struct {
	mu   sync.Mutex
	path string
}

// NewFileSink returns a sink for path. The file is created on first append.
func NewFileSink(path string) *FileSink {
	return &FileSink{path: path}
}

// Append writes record to the end of the file.
func (s *FileSink) Append(ctx context.Context, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// #nosec G304 -- path comes from operator configuration.
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return fmt.Errorf("open webhook log: %w", err)
	}
	if _, err := f.Write(record); err != nil {
		_ = f.Close()
		return fmt.Errorf("write webhook log: %w", err)
	}
	return f.Close()
}

// RotationConfig bounds the size of a rotating webhook log.
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// RotatingSink appends records through lumberjack, rolling the file over once
// it reaches MaxSizeMB.
type RotatingSink struct {
	mu sync.Mutex
	w  io.WriteCloser
}

// NewRotatingSink returns a rotating sink for path.
func NewRotatingSink(path string, cfg RotationConfig) *RotatingSink {
	return &RotatingSink{w: &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}}
}

// Append writes record to the current log file.
func (s *RotatingSink) Append(ctx context.Context, record []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.w.Write(record); err != nil {
		return fmt.Errorf("write webhook log: %w", err)
	}
	return nil
}

// Close releases the underlying file.
func (s *RotatingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Close()
}
