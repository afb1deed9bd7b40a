package summarizer

import (
	"fmt"

	"scholarscope/internal/usecase/summarize"
)

// New builds the completer named by cfg.Provider.
func New(cfg Config) (summarize.Completer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAI(cfg), nil
	case ProviderClaude:
		return NewClaude(cfg), nil
	case ProviderNoOp:
		return NewNoOp(), nil
	}
	return nil, fmt.Errorf("unknown summarizer provider %q", cfg.Provider)
}
