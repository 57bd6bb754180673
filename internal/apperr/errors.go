// Package apperr defines the sentinel errors shared across quill components.
//
// Components wrap these with context; callers match with errors.Is.
package apperr

import "errors"

var (
	// ErrServiceUnavailable means the inference endpoint could not be reached
	// or answered with a non-success status.
	ErrServiceUnavailable = errors.New("completion service unavailable")
	// ErrMalformedResponse means the inference endpoint answered with a body
	// that lacks the expected completion field.
	ErrMalformedResponse = errors.New("malformed completion response")
	// ErrEmptyContent means there was nothing to generate from.
	ErrEmptyContent = errors.New("content is empty")
	// ErrInsufficientPersonas means more distinct comments were requested
	// than personas exist.
	ErrInsufficientPersonas = errors.New("not enough personas")
	// ErrMalformedPost means the frontmatter delimiters could not be found.
	ErrMalformedPost = errors.New("malformed post: frontmatter delimiters not found")
	ErrNotFound      = errors.New("not found")
)
