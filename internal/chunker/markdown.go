package chunker

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strings"
	"unicode/utf8"
)

// MarkdownChunker chunks markdown by heading structure.
//
// Every heading closes the sections it does not nest under and opens a new
// one. When the current path of open sections is about to change, the deepest
// section is emitted: its lines are packed into chunks, and each chunk is
// prefixed with the text of every ancestor section on the path. Text before
// the first heading is dropped, so a document without headings yields no
// chunks.
type MarkdownChunker struct {
	opts options
}

// NewMarkdownChunker creates a markdown chunker.
func NewMarkdownChunker(opts ...Option) *MarkdownChunker {
	return &MarkdownChunker{opts: applyOptions(opts)}
}

// MaxChunkSize returns the configured character ceiling.
func (c *MarkdownChunker) MaxChunkSize() int {
	return c.opts.maxChunkSize
}

// Chunk returns the chunks of the document whose raw lines are produced by
// lines. A line that is not valid UTF-8 ends the sequence with a *DecodeError.
// The returned sequence is meant to be consumed once.
func (c *MarkdownChunker) Chunk(filename string, lines iter.Seq[[]byte]) iter.Seq2[Chunk, error] {
	docID := c.opts.newID()
	limit := c.opts.maxChunkSize

	return func(yield func(Chunk, error) bool) {
		var stack sectionStack

		flush := func() bool {
			for text := range render(stack, limit) {
				if !yield(Chunk{Text: text, SourceDocumentID: docID, SourceFilename: filename}, nil) {
					return false
				}
			}
			return true
		}

		lineNo := 0
		for raw := range lines {
			lineNo++
			if !utf8.Valid(raw) {
				yield(Chunk{}, &DecodeError{Filename: filename, Line: lineNo})
				return
			}
			line := strings.TrimSpace(string(raw))

			if !isHeading(line) {
				stack.appendLine(line)
				continue
			}
			if !stack.empty() && !flush() {
				return
			}
			stack.push(line)
		}

		if !stack.empty() {
			flush()
		}
	}
}

// ChunkReader is Chunk over the newline-delimited content of r.
func (c *MarkdownChunker) ChunkReader(filename string, r io.Reader) iter.Seq2[Chunk, error] {
	var readErr error
	lines := func(yield func([]byte) bool) {
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadBytes('\n')
			if len(line) > 0 && !yield(line) {
				return
			}
			if err != nil {
				if err != io.EOF {
					readErr = fmt.Errorf("read %s: %w", filename, err)
				}
				return
			}
		}
	}

	chunks := c.Chunk(filename, lines)
	return func(yield func(Chunk, error) bool) {
		for chunk, err := range chunks {
			// A read failure ends the line sequence early; the final flush
			// that follows must not be mistaken for a complete document.
			if readErr != nil {
				yield(Chunk{}, readErr)
				return
			}
			if !yield(chunk, err) {
				return
			}
		}
		if readErr != nil {
			yield(Chunk{}, readErr)
		}
	}
}

// render produces the chunk texts for the deepest section of stack. Each
// ancestor section is truncated to limit on its own before the ancestors are
// joined into the context, and the combined chunk is truncated again. A long
// context can therefore crowd out the body. The separator is written even when
// the context is empty, so top-level chunks start with a newline.
func render(stack sectionStack, limit int) iter.Seq[string] {
	ancestors := stack[:len(stack)-1]
	leaf := stack[len(stack)-1]

	parts := make([]string, len(ancestors))
	for i, sec := range ancestors {
		parts[i] = truncate(sec.text(), limit)
	}
	prefix := strings.Join(parts, "\n")

	return func(yield func(string) bool) {
		for body := range splitSection(leaf, limit) {
			if !yield(truncate(prefix+"\n"+body, limit)) {
				return
			}
		}
	}
}
