// Package config assembles the process configuration from an optional .env
// file, an optional YAML file and environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	envconfig "scholarscope/pkg/config"
)

// ConfigFileEnv names the variable holding the optional YAML config path.
const ConfigFileEnv = "SCHOLARSCOPE_CONFIG"

// AppConfig is the immutable configuration of one process.
type AppConfig struct {
	HTTPAddr        string        `yaml:"http_addr"`
	MaxUploadBytes  int64         `yaml:"max_upload_bytes"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	Version         string        `yaml:"version"`

	Limits     LimitsConfig     `yaml:"limits"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Webhook    WebhookConfig    `yaml:"webhook"`
}

// LimitsConfig bounds one summarization run.
type LimitsConfig struct {
	MaxFiles   int `yaml:"max_files"`
	MaxWords   int `yaml:"max_words"`
	ChunkWords int `yaml:"chunk_words"`
}

// SummarizerConfig selects the completion provider and its parameters.
// API keys are only read from the environment.
type SummarizerConfig struct {
	Provider      string        `yaml:"provider"`
	BaseURL       string        `yaml:"base_url"`
	ModelFree     string        `yaml:"model_free"`
	ModelPro      string        `yaml:"model_pro"`
	Temperature   float64       `yaml:"temperature"`
	MaxTokens     int           `yaml:"max_tokens"`
	Timeout       time.Duration `yaml:"timeout"`
	RetryAttempts int           `yaml:"retry_attempts"`

	OpenAIAPIKey    string `yaml:"-"`
	AnthropicAPIKey string `yaml:"-"`
}

// APIKey returns the key for the configured provider.
func (s SummarizerConfig) APIKey() string {
	if s.Provider == "claude" {
		return s.AnthropicAPIKey
	}
	return s.OpenAIAPIKey
}

// WebhookConfig locates the webhook log. MaxSizeMB above zero enables rotation.
type WebhookConfig struct {
	LogPath    string `yaml:"log_path"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

// Default returns the built-in configuration.
func Default() AppConfig {
	return AppConfig{
		HTTPAddr:        ":8080",
		MaxUploadBytes:  32 << 20,
		ShutdownTimeout: 10 * time.Second,
		Version:         "dev",
		Limits: LimitsConfig{
			MaxFiles:   3,
			MaxWords:   10000,
			ChunkWords: 1500,
		},
		Summarizer: SummarizerConfig{
			Provider:      "openai",
			ModelFree:     "gpt-3.5-turbo",
			ModelPro:      "gpt-4",
			Temperature:   0.7,
			MaxTokens:     700,
			RetryAttempts: 1,
		},
		Webhook: WebhookConfig{
			LogPath: "webhook_log.jsonl",
		},
	}
}

// Load builds the configuration. A missing .env file or unset
// SCHOLARSCOPE_CONFIG is not an error; a missing API key is not checked here.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := Default()
	if path := strings.TrimSpace(os.Getenv(ConfigFileEnv)); path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return nil, err
		}
		slog.Info("loaded config file", slog.String("path", path))
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// mergeFile overlays the keys present in the YAML file onto cfg.
func mergeFile(cfg *AppConfig, path string) error {
	// #nosec G304 -- path is operator supplied.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *AppConfig) {
	cfg.HTTPAddr = envconfig.GetEnvString("HTTP_ADDR", cfg.HTTPAddr)
	cfg.MaxUploadBytes = envconfig.GetEnvInt64("MAX_UPLOAD_BYTES", cfg.MaxUploadBytes)
	cfg.ShutdownTimeout = envconfig.GetEnvDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	cfg.Version = envconfig.GetEnvString("VERSION", cfg.Version)

	cfg.Limits.MaxFiles = envconfig.GetEnvInt("MAX_FILES", cfg.Limits.MaxFiles)
	cfg.Limits.MaxWords = envconfig.GetEnvInt("MAX_WORDS", cfg.Limits.MaxWords)
	cfg.Limits.ChunkWords = envconfig.GetEnvInt("CHUNK_WORDS", cfg.Limits.ChunkWords)

	s := &cfg.Summarizer
	s.Provider = strings.ToLower(envconfig.GetEnvString("SUMMARIZER_PROVIDER", s.Provider))
	s.BaseURL = envconfig.GetEnvString("OPENAI_BASE_URL", s.BaseURL)
	s.ModelFree = envconfig.GetEnvString("MODEL_FREE", s.ModelFree)
	s.ModelPro = envconfig.GetEnvString("MODEL_PRO", s.ModelPro)
	s.Temperature = envconfig.GetEnvFloat("SUMMARIZER_TEMPERATURE", s.Temperature)
	s.MaxTokens = envconfig.GetEnvInt("SUMMARIZER_MAX_TOKENS", s.MaxTokens)
	s.Timeout = envconfig.GetEnvDuration("SUMMARIZER_TIMEOUT", s.Timeout)
	s.RetryAttempts = envconfig.GetEnvInt("SUMMARIZER_RETRY_ATTEMPTS", s.RetryAttempts)
	s.OpenAIAPIKey = envconfig.GetEnvString("OPENAI_API_KEY", "")
	s.AnthropicAPIKey = envconfig.GetEnvString("ANTHROPIC_API_KEY", "")

	cfg.Webhook.LogPath = envconfig.GetEnvString("WEBHOOK_LOG_PATH", cfg.Webhook.LogPath)
	cfg.Webhook.MaxSizeMB = envconfig.GetEnvInt("WEBHOOK_LOG_MAX_SIZE_MB", cfg.Webhook.MaxSizeMB)
	cfg.Webhook.MaxBackups = envconfig.GetEnvInt("WEBHOOK_LOG_MAX_BACKUPS", cfg.Webhook.MaxBackups)
}

// Validate reports the first invalid setting.
func (c *AppConfig) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("HTTP_ADDR cannot be empty")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}
	if err := envconfig.ValidatePositiveDuration(c.ShutdownTimeout); err != nil {
		return fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err)
	}
	if c.Limits.MaxFiles <= 0 {
		return fmt.Errorf("MAX_FILES must be positive")
	}
	if c.Limits.MaxWords <= 0 {
		return fmt.Errorf("MAX_WORDS must be positive")
	}
	if c.Limits.ChunkWords <= 0 {
		return fmt.Errorf("CHUNK_WORDS must be positive")
	}

	switch c.Summarizer.Provider {
	case "openai", "claude", "noop":
	default:
		return fmt.Errorf("SUMMARIZER_PROVIDER must be openai, claude or noop, got %q", c.Summarizer.Provider)
	}
	if c.Summarizer.ModelFree == "" || c.Summarizer.ModelPro == "" {
		return fmt.Errorf("MODEL_FREE and MODEL_PRO cannot be empty")
	}
	if c.Summarizer.Temperature < 0 || c.Summarizer.Temperature > 2 {
		return fmt.Errorf("SUMMARIZER_TEMPERATURE must be between 0 and 2")
	}
	if c.Summarizer.MaxTokens <= 0 {
		return fmt.Errorf("SUMMARIZER_MAX_TOKENS must be positive")
	}
	if err := envconfig.ValidateNonNegativeDuration(c.Summarizer.Timeout); err != nil {
		return fmt.Errorf("SUMMARIZER_TIMEOUT: %w", err)
	}
	if c.Summarizer.RetryAttempts < 1 {
		return fmt.Errorf("SUMMARIZER_RETRY_ATTEMPTS must be at least 1")
	}

	if c.Webhook.LogPath == "" {
		return fmt.Errorf("WEBHOOK_LOG_PATH cannot be empty")
	}
	if c.Webhook.MaxSizeMB < 0 || c.Webhook.MaxBackups < 0 {
		return fmt.Errorf("webhook rotation settings must not be negative")
	}
	return nil
}
