package partition

import (
	"strings"
)

// partitionText splits plain text into paragraphs separated by blank lines.
func partitionText(data []byte) []string {
	var elements []string
	var para strings.Builder

	for line := range strings.Lines(strings.ReplaceAll(string(data), "\r\n", "\n")) {
		if strings.TrimSpace(line) == "" {
			elements = appendNonEmpty(elements, para.String())
			para.Reset()
			continue
		}
		para.WriteString(line)
	}
	return appendNonEmpty(elements, para.String())
}
