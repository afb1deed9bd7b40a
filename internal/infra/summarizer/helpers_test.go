package summarizer

import (
	"sync"
	"time"

	"scholarscope/internal/usecase/summarize"
)

// MockMetricsRecorder captures recorded metrics for assertions.
type MockMetricsRecorder struct {
	mu        sync.Mutex
	Lengths   []int
	Durations []time.Duration
	Failures  []string
}

func (m *MockMetricsRecorder) RecordLength(_ string, length int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Lengths = append(m.Lengths, length)
}

func (m *MockMetricsRecorder) RecordDuration(_ string, d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Durations = append(m.Durations, d)
}

func (m *MockMetricsRecorder) RecordFailure(_ string, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures = append(m.Failures, reason)
}

func testRequest() summarize.CompletionRequest {
	return summarize.CompletionRequest{
		Model:       "gpt-3.5-turbo",
		System:      summarize.SystemInstruction,
		Prompt:      summarize.BuildPrompt("alpha beta gamma"),
		Temperature: 0.7,
		MaxTokens:   700,
	}
}

func fastRetry(g *guard) {
	g.retryConfig.InitialDelay = time.Millisecond
	g.retryConfig.MaxDelay = 2 * time.Millisecond
}
