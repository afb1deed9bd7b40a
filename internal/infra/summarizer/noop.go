// Package summarizer provides the chat-completion providers behind the
// summarization pipeline: OpenAI, Anthropic Claude and an offline NoOp.
// Remote providers share a circuit breaker, an optional retry policy and
// Prometheus metrics.
package summarizer

import (
	"context"
	"fmt"
	"strings"

	"scholarscope/internal/usecase/summarize"
)

// noopExcerptWords is how many words of the excerpt NoOp echoes back.
const noopExcerptWords = 40

// NoOp answers without calling any API. It echoes the start of the excerpt
// embedded in the prompt, which is enough to exercise the pipeline offline.
type NoOp struct{}

// NewNoOp creates a new NoOp completer.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Complete implements summarize.Completer.
func (n *NoOp) Complete(ctx context.Context, req summarize.CompletionRequest) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	excerpt := req.Prompt
	if i := strings.LastIndex(excerpt, "Text:\n"); i >= 0 {
		excerpt = excerpt[i+len("Text:\n"):]
	}
	words := strings.Fields(excerpt)
	total := len(words)
	if len(words) > noopExcerptWords {
		words = words[:noopExcerptWords]
	}

	return fmt.Sprintf("- Excerpt (%d words): %s\n- Project idea: offline mode, no model was called (%s).",
		total, strings.Join(words, " "), req.Model), nil
}
