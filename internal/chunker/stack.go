package chunker

import "strings"

// section is a heading line followed by its body lines.
type section []string

func (s section) depth() int {
	return headingDepth(s[0])
}

func (s section) text() string {
	return strings.Join(s, "\n")
}

// sectionStack is the chain of open sections from the document root to the
// current one. Depths strictly increase from bottom to top.
type sectionStack []section

func (s *sectionStack) empty() bool {
	return len(*s) == 0
}

// push opens a section for heading. Open sections at the same or a deeper
// level are closed first, so a sibling replaces its predecessor and a
// shallower heading unwinds back to its own level.
func (s *sectionStack) push(heading string) {
	d := headingDepth(heading)
	for len(*s) > 0 && d <= (*s)[len(*s)-1].depth() {
		*s = (*s)[:len(*s)-1]
	}
	*s = append(*s, section{heading})
}

// appendLine adds a body line to the current section. Lines before the first
// heading have no section and are dropped.
func (s *sectionStack) appendLine(line string) {
	if s.empty() {
		return
	}
	top := len(*s) - 1
	(*s)[top] = append((*s)[top], line)
}

func (s *sectionStack) depths() []int {
	out := make([]int, len(*s))
	for i, sec := range *s {
		out[i] = sec.depth()
	}
	return out
}

func isHeading(line string) bool {
	return strings.HasPrefix(line, "#")
}

// headingDepth counts the leading '#' characters of line.
func headingDepth(line string) int {
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	return n
}
