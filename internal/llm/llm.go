// Package llm provides the completion clients quill uses to talk to a
// language model: a local Ollama server by default, or an OpenAI-compatible
// or Anthropic endpoint.
package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/alkime/quill/internal/config"
)

const (
	// DefaultOllamaURL is the local Ollama server.
	DefaultOllamaURL = "http://localhost:11434"
	// DefaultOpenAIURL is Ollama's OpenAI-compatible endpoint.
	DefaultOpenAIURL = "http://localhost:11434/v1"
	// DefaultTimeout bounds a single completion call.
	DefaultTimeout = 120 * time.Second
)

// Completer turns a prompt into a completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// CompleterFunc adapts a function to the Completer interface.
type CompleterFunc func(ctx context.Context, prompt string) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// New builds the Completer selected by cfg.Provider, wrapped in a rate
// limiter when cfg.RateLimit is positive.
func New(cfg *config.Config, logger *slog.Logger) (Completer, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var (
		completer Completer
		err       error
	)

	switch cfg.Provider {
	case config.ProviderOllama, "":
		completer = NewOllamaClient(orDefault(cfg.BaseURL, DefaultOllamaURL), cfg.Model, timeout, logger)
	case config.ProviderOpenAI:
		completer = NewOpenAIClient(orDefault(cfg.BaseURL, DefaultOpenAIURL), cfg.OpenAIAPIKey, cfg.Model, timeout)
	case config.ProviderAnthropic:
		completer, err = NewAnthropicClient(cfg.BaseURL, cfg.AnthropicAPIKey, cfg.Model, timeout)
	default:
		err = fmt.Errorf("unknown completion provider %q", cfg.Provider)
	}

	if err != nil {
		return nil, err
	}

	if cfg.RateLimit > 0 {
		completer = NewLimited(completer, cfg.RateLimit)
	}

	logger.Debug("Completion client ready",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"timeout", timeout,
		"rate_limit", cfg.RateLimit,
	)

	return completer, nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

var errAPIKeyRequired = errors.New("API key required")
