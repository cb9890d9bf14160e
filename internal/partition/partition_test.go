package partition

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestDetectContentType(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		declared string
		want     string
	}{
		{name: "declared wins", filename: "a.txt", declared: "text/markdown", want: ContentTypeMarkdown},
		{name: "parameters stripped", filename: "a", declared: "text/plain; charset=utf-8", want: ContentTypeText},
		{name: "octet-stream falls back to extension", filename: "a.md", declared: "application/octet-stream", want: ContentTypeMarkdown},
		{name: "empty falls back to extension", filename: "Report.PDF", declared: "", want: ContentTypePDF},
		{name: "x-markdown alias", filename: "a", declared: "text/x-markdown", want: ContentTypeMarkdown},
		{name: "xlsx extension", filename: "sheet.xlsx", declared: "", want: ContentTypeXLSX},
		{name: "unknown extension", filename: "a.bin", declared: "", want: "application/octet-stream"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectContentType(tt.filename, tt.declared); got != tt.want {
				t.Errorf("DetectContentType(%q, %q) = %q, want %q", tt.filename, tt.declared, got, tt.want)
			}
		})
	}
}

func TestPartitioner_Partition(t *testing.T) {
	markdown := "# Title\n\nIntro paragraph\nspanning lines.\n\n- item one\n- item two\n\n" +
		"```go\nfmt.Println(\"hi\")\n```\n\n| a | b |\n|---|---|\n| 1 | 2 |\n"

	page := `<html><head><title>T</title><style>p{}</style></head><body>` +
		`<h1>Head</h1><p>Para <b>bold</b> text</p><script>var x = 1</script>` +
		`<ul><li>one</li><li>two</li></ul>` +
		`<table><tr><th>a</th><th>b</th></tr><tr><td>1</td><td>2</td></tr></table></body></html>`

	tests := []struct {
		name        string
		filename    string
		contentType string
		content     string
		want        []string
	}{
		{
			name:     "plain text paragraphs",
			filename: "notes.txt",
			content:  "first para\nline two\n\n\nsecond\r\n\r\nthird",
			want:     []string{"first para\nline two", "second", "third"},
		},
		{
			name:     "markdown blocks",
			filename: "doc.md",
			content:  markdown,
			want: []string{
				"Title",
				"Intro paragraph spanning lines.",
				"item one",
				"item two",
				`fmt.Println("hi")`,
				"a | b",
				"1 | 2",
			},
		},
		{
			name:        "html blocks",
			filename:    "page",
			contentType: "text/html; charset=utf-8",
			content:     page,
			want:        []string{"Head", "Para bold text", "one", "two", "a | b", "1 | 2"},
		},
		{
			name:     "html without blocks falls back to body text",
			filename: "page.html",
			content:  "<div>just <span>text</span></div>",
			want:     []string{"just text"},
		},
		{
			name:     "empty text",
			filename: "empty.txt",
			content:  "\n\n  \n",
			want:     nil,
		},
	}

	p := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Partition(context.Background(), tt.filename, tt.contentType, strings.NewReader(tt.content))
			if err != nil {
				t.Fatalf("Partition() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Partition() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPartitioner_Partition_XLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	for cell, v := range map[string]any{"A1": "name", "B1": "qty", "A2": "apple", "B2": 3} {
		if err := f.SetCellValue("Sheet1", cell, v); err != nil {
			t.Fatalf("SetCellValue() error: %v", err)
		}
	}
	if _, err := f.NewSheet("Empty"); err != nil {
		t.Fatalf("NewSheet() error: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer() error: %v", err)
	}

	got, err := New().Partition(context.Background(), "stock.xlsx", "", buf)
	if err != nil {
		t.Fatalf("Partition() unexpected error: %v", err)
	}
	want := []string{"name\tqty\napple\t3"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Partition() = %q, want %q", got, want)
	}
}

func TestPartitioner_Partition_Errors(t *testing.T) {
	p := New()

	t.Run("unsupported type", func(t *testing.T) {
		_, err := p.Partition(context.Background(), "blob.bin", "", strings.NewReader("data"))
		if !errors.Is(err, ErrUnsupportedContentType) {
			t.Errorf("Partition() error = %v, want ErrUnsupportedContentType", err)
		}
	})

	t.Run("invalid pdf", func(t *testing.T) {
		_, err := p.Partition(context.Background(), "broken.pdf", "", strings.NewReader("not a pdf"))
		if err == nil {
			t.Fatal("Partition() expected error for invalid pdf")
		}
		if errors.Is(err, ErrUnsupportedContentType) {
			t.Errorf("Partition() error = %v, want a parse error", err)
		}
	})

	t.Run("invalid xlsx", func(t *testing.T) {
		_, err := p.Partition(context.Background(), "broken.xlsx", "", strings.NewReader("not a zip"))
		if err == nil {
			t.Fatal("Partition() expected error for invalid xlsx")
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := p.Partition(ctx, "a.txt", "", strings.NewReader("x"))
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Partition() error = %v, want context.Canceled", err)
		}
	})
}
