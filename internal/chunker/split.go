package chunker

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Windows slices s into consecutive, non-overlapping windows of size
// characters. The last window may be shorter. An empty string yields nothing.
func Windows(s string, size int) iter.Seq[string] {
	return func(yield func(string) bool) {
		if s == "" {
			return
		}
		if size <= 0 {
			yield(s)
			return
		}
		start, n := 0, 0
		for i := range s {
			if n == size {
				if !yield(s[start:i]) {
					return
				}
				start, n = i, 0
			}
			n++
		}
		yield(s[start:])
	}
}

// splitSection greedily packs the lines of sec into chunks of fewer than limit
// characters. Every chunk starts with the section heading. Line lengths are
// summed without separators, so the joined text can run past limit; the hard
// truncation catches that.
func splitSection(sec section, limit int) iter.Seq[string] {
	return func(yield func(string) bool) {
		heading := sec[0]
		headingLen := utf8.RuneCountInString(heading)

		buf := []string{heading}
		bufLen := headingLen
		for _, line := range sec[1:] {
			lineLen := utf8.RuneCountInString(line)
			if bufLen+lineLen < limit {
				buf = append(buf, line)
				bufLen += lineLen
				continue
			}
			if !yield(truncate(strings.Join(buf, "\n"), limit)) {
				return
			}
			buf = []string{heading, line}
			bufLen = headingLen + lineLen
		}
		yield(truncate(strings.Join(buf, "\n"), limit))
	}
}

// truncate cuts s to at most limit characters.
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i]
		}
		n++
	}
	return s
}
