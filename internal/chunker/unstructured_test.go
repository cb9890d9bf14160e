package chunker

import (
	"reflect"
	"slices"
	"strings"
	"testing"
	"unicode/utf8"

	"pgregory.net/rapid"
)

func TestWindows(t *testing.T) {
	tests := []struct {
		name string
		s    string
		size int
		want []string
	}{
		{name: "empty", s: "", size: 3, want: nil},
		{name: "shorter than size", s: "ab", size: 3, want: []string{"ab"}},
		{name: "exact multiple", s: "abcdef", size: 3, want: []string{"abc", "def"}},
		{name: "remainder", s: "abcdefg", size: 3, want: []string{"abc", "def", "g"}},
		{name: "multi-byte runes", s: "héllo", size: 2, want: []string{"hé", "ll", "o"}},
		{name: "non-positive size", s: "abc", size: 0, want: []string{"abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Collect(Windows(tt.s, tt.size))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Windows(%q, %d) = %q, want %q", tt.s, tt.size, got, tt.want)
			}
		})
	}
}

func TestWindows_Properties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.String().Draw(t, "s")
		size := rapid.IntRange(1, 50).Draw(t, "size")

		windows := slices.Collect(Windows(s, size))

		if got := strings.Join(windows, ""); got != s {
			t.Fatalf("concatenation = %q, want %q", got, s)
		}
		n := utf8.RuneCountInString(s)
		if want := (n + size - 1) / size; len(windows) != want {
			t.Fatalf("got %d windows for %d characters at size %d, want %d", len(windows), n, size, want)
		}
		for i, w := range windows {
			l := utf8.RuneCountInString(w)
			if i < len(windows)-1 && l != size {
				t.Fatalf("window %d has %d characters, want %d", i, l, size)
			}
			if l == 0 || l > size {
				t.Fatalf("window %d has %d characters, size %d", i, l, size)
			}
		}
	})
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		s     string
		limit int
		want  string
	}{
		{"hello", 10, "hello"},
		{"hello", 5, "hello"},
		{"hello", 3, "hel"},
		{"日本語テキスト", 3, "日本語"},
		{"hello", 0, ""},
	}
	for _, tt := range tests {
		if got := truncate(tt.s, tt.limit); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.s, tt.limit, got, tt.want)
		}
	}
}

func TestUnstructuredChunker_Chunk(t *testing.T) {
	tests := []struct {
		name     string
		elements []string
		maxSize  int
		want     []string
	}{
		{
			name:     "each element windowed independently",
			elements: []string{"aaa", "bbb"},
			maxSize:  2,
			want:     []string{"aa", "a", "bb", "b"},
		},
		{
			name:     "whitespace collapsed",
			elements: []string{"  hello \n\t world  "},
			maxSize:  100,
			want:     []string{"hello world"},
		},
		{
			name:     "blank elements yield nothing",
			elements: []string{"", "   ", "\n"},
			maxSize:  100,
			want:     nil,
		},
		{
			name:     "elements are not joined",
			elements: []string{"a", "b"},
			maxSize:  100,
			want:     []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewUnstructuredChunker(WithMaxChunkSize(tt.maxSize), WithIDGenerator(func() string { return "doc" }))

			var got []string
			for chunk := range c.Chunk("file.pdf", slices.Values(tt.elements)) {
				if chunk.SourceDocumentID != "doc" || chunk.SourceFilename != "file.pdf" {
					t.Errorf("chunk metadata = (%q, %q), want (doc, file.pdf)", chunk.SourceDocumentID, chunk.SourceFilename)
				}
				got = append(got, chunk.Text)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Chunk() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnstructuredChunker_DefaultSize(t *testing.T) {
	c := NewUnstructuredChunker(WithMaxChunkSize(-1))
	if c.MaxChunkSize() != DefaultMaxChunkSize {
		t.Errorf("MaxChunkSize() = %d, want %d", c.MaxChunkSize(), DefaultMaxChunkSize)
	}
}

func TestUnstructuredChunker_SizeBound(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		elements := rapid.SliceOf(rapid.String()).Draw(t, "elements")
		limit := rapid.IntRange(1, 40).Draw(t, "limit")

		c := NewUnstructuredChunker(WithMaxChunkSize(limit))
		for chunk := range c.Chunk("f", slices.Values(elements)) {
			if n := utf8.RuneCountInString(chunk.Text); n == 0 || n > limit {
				t.Fatalf("chunk %q has %d characters, limit %d", chunk.Text, n, limit)
			}
		}
	})
}
