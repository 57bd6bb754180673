package service

import (
	"fmt"
	"log/slog"

	"github.com/alkime/quill/internal/comments"
	"github.com/alkime/quill/internal/config"
	"github.com/alkime/quill/internal/content"
	"github.com/alkime/quill/internal/llm"
	"github.com/alkime/quill/internal/persona"
	"github.com/alkime/quill/internal/post"
)

// Registry returns the personas file named by cfg, or the built-in set.
func Registry(cfg *config.Config) (*persona.Registry, error) {
	if cfg.PersonasFile == "" {
		return persona.Default(), nil
	}

	reg, err := persona.LoadFile(cfg.PersonasFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load personas: %w", err)
	}

	return reg, nil
}

// FromConfig wires a Service from configuration: completion client,
// persona registry, comment generator and post store.
func FromConfig(cfg *config.Config, logger *slog.Logger) (*Service, error) {
	completer, err := llm.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create completion client: %w", err)
	}

	reg, err := Registry(cfg)
	if err != nil {
		return nil, err
	}

	return New(
		post.NewStore(cfg.PostsDir),
		comments.NewGenerator(reg, completer, comments.WithLogger(logger)),
		content.NewWriter(completer),
		logger,
	), nil
}
