package service

import (
	"context"
	"errors"
	"fmt"

	"ragcompare/internal/chunker"
	"ragcompare/internal/llm"
	"ragcompare/internal/partition"
)

var (
	// ErrInvalidInput is returned for uploads that cannot be read as text.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned for unknown stacks.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when the embedding endpoint, Qdrant or the LLM fails.
	ErrExternalService = errors.New("external service error")
)

// ValidationError reports a request field that failed validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context.
func WrapError(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// classify tags backend errors for the transport: bad documents become
// ErrInvalidInput and unreachable dependencies ErrExternalService. Unsupported
// content types and cancellation keep their own identity.
func classify(err error, msg string) error {
	switch {
	case errors.Is(err, context.Canceled):
		return WrapError(err, msg)
	case errors.Is(err, partition.ErrUnsupportedContentType):
		return WrapError(err, msg)
	case errors.Is(err, chunker.ErrInvalidUTF8):
		return fmt.Errorf("%s: %w: %w", msg, ErrInvalidInput, err)
	case errors.Is(err, llm.ErrUnavailable):
		return fmt.Errorf("%s: %w: %w", msg, ErrExternalService, err)
	}
	return WrapError(err, msg)
}

// classifyTurn classifies a failed conversation turn. A turn only talks to the
// embedding endpoint, Qdrant, SQLite and the LLM, so anything but a cancelled
// request is reported as ErrExternalService.
func classifyTurn(err error) error {
	const msg = "conversation turn failed"
	if errors.Is(err, context.Canceled) || errors.Is(err, llm.ErrUnavailable) {
		return classify(err, msg)
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrExternalService, err)
}
