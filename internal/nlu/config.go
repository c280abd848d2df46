package nlu

import (
	"errors"
	"strings"
)

// Config holds connection settings for the OpenAI-compatible LLM backend
// (llamafile, Ollama, or any other local server speaking the same protocol).
type Config struct {
	// BaseURL is the base URL of the chat-completions API.
	// Example: "http://localhost:8080/v1"
	BaseURL string

	// Model is the model identifier. llamafile accepts any non-empty name.
	Model string

	// APIKey is the bearer token. Local servers usually accept any
	// non-empty string.
	APIKey string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithBaseURL sets the LLM server base URL.
func WithBaseURL(baseURL string) ConfigOption {
	return func(c *Config) {
		c.BaseURL = baseURL
	}
}

// WithModel sets the model identifier.
func WithModel(model string) ConfigOption {
	return func(c *Config) {
		c.Model = model
	}
}

// WithAPIKey sets the bearer token.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// DefaultConfig returns settings for a llamafile server on its default port.
func DefaultConfig() *Config {
	return &Config{
		BaseURL: "http://localhost:8080/v1",
		Model:   "llamafile",
		APIKey:  "sk-local-123",
	}
}

// NewConfig creates a Config with defaults and applies the provided options.
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the base URL carries the /v1 suffix expected by
// OpenAI-compatible APIs.
func (c *Config) Normalize() {
	if c.BaseURL != "" && !strings.HasSuffix(c.BaseURL, "/v1") {
		c.BaseURL = strings.TrimSuffix(c.BaseURL, "/") + "/v1"
	}
}

// Validate checks that the configuration is complete. It normalizes first.
func (c *Config) Validate() error {
	c.Normalize()

	if c.BaseURL == "" {
		return errors.New("nlu config: BaseURL is required")
	}
	if c.Model == "" {
		return errors.New("nlu config: Model is required")
	}
	if c.APIKey == "" {
		return errors.New("nlu config: APIKey is required")
	}
	return nil
}
