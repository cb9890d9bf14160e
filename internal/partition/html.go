package partition

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// partitionHTML returns the visible text of block-level HTML elements. When no
// block element carries text, the whole document text is returned instead.
func partitionHTML(r io.Reader) ([]string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	var elements []string
	collectBlocks(doc, &elements)

	if len(elements) == 0 {
		elements = appendNonEmpty(elements, visibleText(doc))
	}
	return elements, nil
}

func collectBlocks(n *html.Node, elements *[]string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Script, atom.Style, atom.Noscript, atom.Template, atom.Head:
			return
		case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
			atom.P, atom.Li, atom.Pre, atom.Blockquote, atom.Dt, atom.Dd,
			atom.Caption, atom.Figcaption:
			*elements = appendNonEmpty(*elements, visibleText(n))
			return
		case atom.Tr:
			*elements = appendNonEmpty(*elements, rowText(n))
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectBlocks(c, elements)
	}
}

// rowText joins the cells of a table row with pipe separators.
func rowText(tr *html.Node) string {
	var cells []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.DataAtom == atom.Td || c.DataAtom == atom.Th) {
			cells = append(cells, visibleText(c))
		}
	}
	return strings.Join(cells, " | ")
}

// visibleText extracts the text under n, skipping script and style content.
func visibleText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if t := strings.TrimSpace(n.Data); t != "" {
				if sb.Len() > 0 {
					sb.WriteByte(' ')
				}
				sb.WriteString(t)
			}
		case html.ElementNode:
			switch n.DataAtom {
			case atom.Script, atom.Style, atom.Noscript, atom.Template:
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}
