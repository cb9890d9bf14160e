// Package partition extracts plain text elements from uploaded documents so
// they can be handed to the generic chunker.
package partition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"ragcompare/internal/contextutil"
)

// Content types understood by the partitioner.
const (
	ContentTypeText     = "text/plain"
	ContentTypeMarkdown = "text/markdown"
	ContentTypeHTML     = "text/html"
	ContentTypePDF      = "application/pdf"
	ContentTypeXLSX     = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ErrUnsupportedContentType is returned for documents no extractor handles.
var ErrUnsupportedContentType = errors.New("unsupported content type")

var extContentTypes = map[string]string{
	".txt":      ContentTypeText,
	".text":     ContentTypeText,
	".md":       ContentTypeMarkdown,
	".markdown": ContentTypeMarkdown,
	".htm":      ContentTypeHTML,
	".html":     ContentTypeHTML,
	".pdf":      ContentTypePDF,
	".xlsx":     ContentTypeXLSX,
}

// DetectContentType resolves the content type of an upload. A declared type
// wins unless it is empty or the generic octet-stream; otherwise the file
// extension decides. Parameters such as charset are stripped.
func DetectContentType(filename, declared string) string {
	if declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil && mt != "application/octet-stream" {
			if mt == "text/x-markdown" {
				return ContentTypeMarkdown
			}
			return mt
		}
	}
	if ct, ok := extContentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Supported reports whether contentType has an extractor.
func Supported(contentType string) bool {
	switch contentType {
	case ContentTypeText, ContentTypeMarkdown, ContentTypeHTML, ContentTypePDF, ContentTypeXLSX:
		return true
	}
	return false
}

// Partitioner splits documents into text elements by content type.
type Partitioner struct {
	md goldmark.Markdown
}

// New creates a partitioner.
func New() *Partitioner {
	return &Partitioner{
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

// Partition reads r fully and returns its text elements in document order.
// Empty elements are dropped.
func (p *Partitioner) Partition(ctx context.Context, filename, contentType string, r io.Reader) ([]string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	ct := DetectContentType(filename, contentType)
	if !Supported(ct) {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedContentType, ct, filename)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var elements []string
	switch ct {
	case ContentTypeText:
		elements = partitionText(data)
	case ContentTypeMarkdown:
		elements = p.partitionMarkdown(data)
	case ContentTypeHTML:
		elements, err = partitionHTML(bytes.NewReader(data))
	case ContentTypePDF:
		elements, err = partitionPDF(data)
	case ContentTypeXLSX:
		elements, err = partitionXLSX(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to partition %s: %w", filename, err)
	}

	logger.DebugContext(ctx, "partitioned document",
		"file", filename,
		"content_type", ct,
		"elements", len(elements),
	)
	return elements, nil
}

// appendNonEmpty appends the trimmed s to elements unless it is blank.
func appendNonEmpty(elements []string, s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return elements
	}
	return append(elements, s)
}
