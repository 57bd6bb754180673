// Package service wires comment generation to the post store.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alkime/quill/internal/apperr"
	"github.com/alkime/quill/internal/comments"
	"github.com/alkime/quill/internal/content"
	"github.com/alkime/quill/internal/post"
)

// Service runs the end-to-end content pipelines.
type Service struct {
	store     *post.Store
	generator *comments.Generator
	writer    *content.Writer
	logger    *slog.Logger
	now       func() time.Time
}

// New creates a Service.
func New(store *post.Store, generator *comments.Generator, writer *content.Writer, logger *slog.Logger) *Service {
	return &Service{
		store:     store,
		generator: generator,
		writer:    writer,
		logger:    logger,
		now:       time.Now,
	}
}

// Store returns the post store.
func (s *Service) Store() *post.Store {
	return s.store
}

// CommentOnPost generates count comments for the named post and appends
// them to it.
func (s *Service) CommentOnPost(ctx context.Context, name string, count int) ([]comments.Comment, error) {
	p, err := s.store.Load(name)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(p.Body) == "" {
		return nil, fmt.Errorf("post %s: %w", name, apperr.ErrEmptyContent)
	}

	generated, err := s.generator.Generate(ctx, p.Body, count)
	if err != nil {
		return nil, err
	}

	if err := s.store.AppendComments(name, generated); err != nil {
		return nil, fmt.Errorf("failed to append comments to %s: %w", name, err)
	}

	s.logger.Info("Comments appended", "post", name, "count", len(generated))

	return generated, nil
}

// Draft writes a post for title and generates comments on it without
// touching the store.
func (s *Service) Draft(ctx context.Context, title string, count int) (string, []comments.Comment, error) {
	body, err := s.writer.DraftPost(ctx, title)
	if err != nil {
		return "", nil, err
	}

	generated, err := s.generator.Generate(ctx, body, count)
	if err != nil {
		return "", nil, err
	}

	return body, generated, nil
}

// CreatePost writes a new post for title. When body is empty it is drafted
// first. Generated comments go into the post's ai_comments frontmatter.
func (s *Service) CreatePost(ctx context.Context, title, body string, count int) (string, error) {
	if strings.TrimSpace(body) == "" {
		drafted, err := s.writer.DraftPost(ctx, title)
		if err != nil {
			return "", err
		}
		body = drafted
	}

	generated, err := s.generator.Generate(ctx, body, count)
	if err != nil {
		return "", err
	}

	path, err := s.store.Create(title, body, generated, s.now())
	if err != nil {
		return "", fmt.Errorf("failed to create post: %w", err)
	}

	s.logger.Info("Post created", "path", path, "comments", len(generated))

	return path, nil
}

// Ideas returns blog post ideas for topic.
func (s *Service) Ideas(ctx context.Context, topic string) (string, error) {
	return s.writer.Ideas(ctx, topic)
}

// Pending lists posts that have no Comments section yet. Malformed posts
// are logged and skipped.
func (s *Service) Pending() ([]string, error) {
	names, err := s.store.List()
	if err != nil {
		return nil, err
	}

	var pending []string
	for _, name := range names {
		p, err := s.store.Load(name)
		if err != nil {
			if errors.Is(err, apperr.ErrMalformedPost) {
				s.logger.Warn("Skipping malformed post", "post", name)
				continue
			}

			return nil, err
		}

		if p.HasComments() || strings.TrimSpace(p.Body) == "" {
			continue
		}
		pending = append(pending, name)
	}

	return pending, nil
}

// Enhance comments on every pending post, calling done after each one.
// It stops at the first failure.
func (s *Service) Enhance(ctx context.Context, count int, done func(name string)) (int, error) {
	pending, err := s.Pending()
	if err != nil {
		return 0, err
	}

	for i, name := range pending {
		if _, err := s.CommentOnPost(ctx, name, count); err != nil {
			return i, err
		}
		if done != nil {
			done(name)
		}
	}

	return len(pending), nil
}
