package summarize

import (
	"fmt"

	"scholarscope/internal/domain/entity"
)

// Config bounds a run.
type Config struct {
	MaxFiles    int
	MaxWords    int
	ChunkWords  int
	Temperature float32
	MaxTokens   int
	Models      entity.ModelCatalog
}

// DefaultConfig returns the limits of the free service: 3 files, 10000 words,
// 1500-word chunks, temperature 0.7 and 700 output tokens.
func DefaultConfig() Config {
	return Config{
		MaxFiles:    3,
		MaxWords:    10000,
		ChunkWords:  1500,
		Temperature: 0.7,
		MaxTokens:   700,
		Models:      entity.NewModelCatalog("gpt-3.5-turbo", "gpt-4"),
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.MaxFiles <= 0:
		return fmt.Errorf("max files must be positive, got %d", c.MaxFiles)
	case c.MaxWords <= 0:
		return fmt.Errorf("max words must be positive, got %d", c.MaxWords)
	case c.ChunkWords <= 0:
		return fmt.Errorf("chunk words must be positive, got %d", c.ChunkWords)
	case c.MaxTokens <= 0:
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	case c.Temperature < 0 || c.Temperature > 2:
		return fmt.Errorf("temperature must be within [0, 2], got %v", c.Temperature)
	case c.Models.Free.ID == "" || c.Models.Pro.ID == "":
		return fmt.Errorf("both free and pro model identifiers are required")
	}
	return nil
}
