package chunker

import (
	"iter"
	"strings"
)

// UnstructuredChunker slices plain text elements, such as the paragraphs a
// document partitioner extracts from a PDF or spreadsheet, into fixed-size
// windows. Elements are split independently and never joined.
type UnstructuredChunker struct {
	opts options
}

// NewUnstructuredChunker creates an unstructured chunker.
func NewUnstructuredChunker(opts ...Option) *UnstructuredChunker {
	return &UnstructuredChunker{opts: applyOptions(opts)}
}

// MaxChunkSize returns the configured character ceiling.
func (c *UnstructuredChunker) MaxChunkSize() int {
	return c.opts.maxChunkSize
}

// Chunk returns one chunk per window of every normalized element.
func (c *UnstructuredChunker) Chunk(filename string, elements iter.Seq[string]) iter.Seq[Chunk] {
	docID := c.opts.newID()
	limit := c.opts.maxChunkSize

	return func(yield func(Chunk) bool) {
		for el := range elements {
			for window := range Windows(normalizeSpace(el), limit) {
				if !yield(Chunk{Text: window, SourceDocumentID: docID, SourceFilename: filename}) {
					return
				}
			}
		}
	}
}

// normalizeSpace collapses whitespace runs to a single space and trims.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
