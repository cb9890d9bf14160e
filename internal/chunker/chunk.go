// Package chunker splits documents into bounded-size text chunks for embedding
// and retrieval.
//
// Two strategies are provided. MarkdownChunker follows the heading structure of
// a markdown document and prefixes every chunk with the text of its ancestor
// sections. UnstructuredChunker slices already-extracted text elements into
// fixed-size windows. Both return lazy, single-use iterators and attach the same
// freshly generated document ID to every chunk of one call.
//
// Lengths are measured in characters (Unicode code points), not bytes or tokens.
package chunker

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// DefaultMaxChunkSize is the default character ceiling for a chunk.
const DefaultMaxChunkSize = 2000

// ErrInvalidUTF8 is returned when an input line is not valid UTF-8.
var ErrInvalidUTF8 = errors.New("invalid UTF-8")

// Chunk is a unit of text plus the provenance of the document it came from.
type Chunk struct {
	Text             string `json:"text"`
	SourceDocumentID string `json:"source_document_id"`
	SourceFilename   string `json:"source_filename"`
}

// DecodeError reports an input line that could not be decoded.
type DecodeError struct {
	Filename string
	Line     int // 1-based
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: line %d: %v", e.Filename, e.Line, ErrInvalidUTF8)
}

func (e *DecodeError) Unwrap() error {
	return ErrInvalidUTF8
}

// Option configures a chunker.
type Option func(*options)

type options struct {
	maxChunkSize int
	newID        func() string
}

func defaultOptions() options {
	return options{
		maxChunkSize: DefaultMaxChunkSize,
		newID:        func() string { return uuid.New().String() },
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithMaxChunkSize sets the character ceiling for emitted chunks and for each
// context section. Non-positive values are ignored.
func WithMaxChunkSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.maxChunkSize = n
		}
	}
}

// WithIDGenerator replaces the document ID generator (UUIDv4 by default).
func WithIDGenerator(fn func() string) Option {
	return func(o *options) {
		if fn != nil {
			o.newID = fn
		}
	}
}
