// Package keyring stores provider API keys in the system keychain.
package keyring

import (
	"fmt"
	"log/slog"

	"github.com/alkime/quill/internal/config"
	"github.com/zalando/go-keyring"
)

const serviceName = "quill"

// APIKey names a keychain entry.
type APIKey string

const (
	// OpenAI is the keychain entry for the OpenAI-compatible provider.
	OpenAI APIKey = "openai-api-key"
	// Anthropic is the keychain entry for the Anthropic provider.
	Anthropic APIKey = "anthropic-api-key"
)

// AllAPIKeys returns all known keys.
func AllAPIKeys() []APIKey {
	return []APIKey{OpenAI, Anthropic}
}

// Provider returns the completion provider the key belongs to.
func (k APIKey) Provider() string {
	switch k {
	case OpenAI:
		return config.ProviderOpenAI
	case Anthropic:
		return config.ProviderAnthropic
	default:
		return string(k)
	}
}

// Get retrieves a key from the keychain.
func Get(apiKey APIKey) (string, error) {
	value, err := keyring.Get(serviceName, string(apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to get %s key from keychain: %w", apiKey.Provider(), err)
	}

	return value, nil
}

// Set stores a key in the keychain.
func Set(apiKey APIKey, value string) error {
	if err := keyring.Set(serviceName, string(apiKey), value); err != nil {
		return fmt.Errorf("failed to set %s key in keychain: %w", apiKey.Provider(), err)
	}

	return nil
}

// IsSet reports whether a key exists in the keychain.
func IsSet(apiKey APIKey) bool {
	_, err := keyring.Get(serviceName, string(apiKey))

	return err == nil
}

// FromProvider maps a provider name to its key.
func FromProvider(name string) (APIKey, error) {
	switch name {
	case config.ProviderOpenAI:
		return OpenAI, nil
	case config.ProviderAnthropic:
		return Anthropic, nil
	default:
		return "", fmt.Errorf("unknown provider: %s", name)
	}
}

// FillConfig copies keychain keys into cfg for the active provider when
// the environment did not set them.
func FillConfig(cfg *config.Config) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			cfg.OpenAIAPIKey = lookup(OpenAI)
		}
	case config.ProviderAnthropic:
		if cfg.AnthropicAPIKey == "" {
			cfg.AnthropicAPIKey = lookup(Anthropic)
		}
	}
}

func lookup(apiKey APIKey) string {
	secret, err := Get(apiKey)
	if err != nil {
		slog.Debug("keychain lookup failed", "key", apiKey.Provider(), "error", err)
		return ""
	}

	return secret
}
