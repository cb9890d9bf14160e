package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"ragcompare/internal/chunker"
	"ragcompare/internal/llm"
	"ragcompare/internal/partition"
)

func TestValidationError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ValidationError
		want string
	}{
		{
			name: "empty conversation text",
			err:  &ValidationError{Field: "text", Message: "cannot be empty"},
			want: "validation error on field text: cannot be empty",
		},
		{
			name: "upload without filename",
			err:  &ValidationError{Field: "files", Message: "filename is required"},
			want: "validation error on field files: filename is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ValidationError.Error() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	if err := WrapError(nil, "failed to list files"); err != nil {
		t.Errorf("WrapError(nil) = %v, want nil", err)
	}

	cause := errors.New("disk I/O error")
	got := WrapError(cause, "failed to list files")
	if got.Error() != "failed to list files: disk I/O error" || !errors.Is(got, cause) {
		t.Errorf("WrapError() = %v, want wrapped cause", got)
	}
}

func TestClassify(t *testing.T) {
	unsupported := fmt.Errorf("%w: image/png (a.png)", partition.ErrUnsupportedContentType)
	badText := &chunker.DecodeError{Filename: "a.md", Line: 2}
	plain := errors.New("database is locked")

	tests := []struct {
		name    string
		err     error
		want    []error
		notWant []error
	}{
		{
			name:    "invalid UTF-8 is invalid input",
			err:     badText,
			want:    []error{ErrInvalidInput, chunker.ErrInvalidUTF8},
			notWant: []error{ErrExternalService},
		},
		{
			name:    "unavailable endpoint is external",
			err:     fmt.Errorf("embed batch: %w", llm.ErrUnavailable),
			want:    []error{ErrExternalService, llm.ErrUnavailable},
			notWant: []error{ErrInvalidInput},
		},
		{
			name:    "unsupported content type passes through",
			err:     unsupported,
			want:    []error{partition.ErrUnsupportedContentType},
			notWant: []error{ErrInvalidInput, ErrExternalService},
		},
		{
			name:    "cancellation passes through",
			err:     context.Canceled,
			want:    []error{context.Canceled},
			notWant: []error{ErrExternalService},
		},
		{
			name:    "other errors are only wrapped",
			err:     plain,
			want:    []error{plain},
			notWant: []error{ErrInvalidInput, ErrExternalService},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.err, "failed to add a.md")
			if !strings.HasPrefix(got.Error(), "failed to add a.md: ") {
				t.Errorf("classify() = %q, want message prefix", got)
			}
			for _, target := range tt.want {
				if !errors.Is(got, target) {
					t.Errorf("classify() = %v, want it to match %v", got, target)
				}
			}
			for _, target := range tt.notWant {
				if errors.Is(got, target) {
					t.Errorf("classify() = %v, must not match %v", got, target)
				}
			}
		})
	}
}

func TestClassifyTurn(t *testing.T) {
	qdrantDown := errors.New("failed to search points: connection refused")

	tests := []struct {
		name     string
		err      error
		external bool
		want     error
	}{
		{name: "vector store failure", err: qdrantDown, external: true, want: qdrantDown},
		{name: "breaker open", err: llm.ErrUnavailable, external: true, want: llm.ErrUnavailable},
		{name: "client went away", err: fmt.Errorf("embed query: %w", context.Canceled), want: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyTurn(tt.err)
			if errors.Is(got, ErrExternalService) != tt.external {
				t.Errorf("classifyTurn() = %v, external = %v, want %v", got, !tt.external, tt.external)
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("classifyTurn() = %v, want it to wrap %v", got, tt.want)
			}
		})
	}
}
