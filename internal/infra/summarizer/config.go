package summarizer

import (
	"fmt"
	"time"
)

// Supported provider names.
const (
	ProviderOpenAI = "openai"
	ProviderClaude = "claude"
	ProviderNoOp   = "noop"
)

// Config selects and tunes a completion provider.
type Config struct {
	// Provider is one of ProviderOpenAI, ProviderClaude or ProviderNoOp.
	Provider string

	// APIKey is passed to the provider as-is. An empty key is accepted here;
	// the provider rejects the call with its own authentication error.
	APIKey string

	// BaseURL overrides the provider endpoint, e.g. for a compatible gateway.
	BaseURL string

	// Timeout bounds one completion call. Zero leaves the transport default.
	Timeout time.Duration

	// RetryAttempts is the total number of calls made for one completion.
	// 1 disables retrying.
	RetryAttempts int
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderOpenAI, ProviderClaude, ProviderNoOp:
	default:
		return fmt.Errorf("unknown summarizer provider %q", c.Provider)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %v", c.Timeout)
	}
	if c.RetryAttempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.RetryAttempts)
	}
	return nil
}
