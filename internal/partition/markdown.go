package partition

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// partitionMarkdown returns the block elements of a markdown document:
// headings, paragraphs, list items, code blocks and table rows.
func (p *Partitioner) partitionMarkdown(content []byte) []string {
	doc := p.md.Parser().Parse(text.NewReader(content))

	var elements []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			elements = appendNonEmpty(elements, inlineText(node, content))
			return ast.WalkSkipChildren, nil
		case *ast.ListItem:
			elements = appendNonEmpty(elements, inlineText(node, content))
			return ast.WalkSkipChildren, nil
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			elements = appendNonEmpty(elements, blockLines(node, content))
			return ast.WalkSkipChildren, nil
		}

		switch n.Kind() {
		case extast.KindTableHeader, extast.KindTableRow:
			elements = appendNonEmpty(elements, tableRowText(n, content))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return elements
}

// inlineText concatenates the text leaves under n. Line breaks inside a
// paragraph become spaces.
func inlineText(n ast.Node, content []byte) string {
	var sb strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(content))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			// nested code in a list item
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(blockLines(v, content))
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph, *ast.TextBlock:
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})

	return strings.Join(strings.Fields(sb.String()), " ")
}

// blockLines returns the raw source lines of a block node.
func blockLines(n ast.Node, content []byte) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(content))
	}
	return sb.String()
}

// tableRowText formats the cells of a table row with pipe separators.
func tableRowText(row ast.Node, content []byte) string {
	var cells []string
	for c := row.FirstChild(); c != nil; c = c.NextSibling() {
		if c.Kind() == extast.KindTableCell {
			cells = append(cells, inlineText(c, content))
		}
	}
	return strings.Join(cells, " | ")
}
