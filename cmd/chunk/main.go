// Command chunk runs a chunker over local files and prints the chunks as JSON
// lines, one object per chunk.
//
//	chunk -strategy markdown -max 800 notes.md
//	chunk -strategy generic report.pdf table.xlsx
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"ragcompare/internal/chunker"
	"ragcompare/internal/contextutil"
	"ragcompare/internal/indexer"
	"ragcompare/internal/partition"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	ctx := contextutil.WithLogger(context.Background(), logger)

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		logger.Error("chunk failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("chunk", flag.ContinueOnError)
	strategy := fs.String("strategy", string(indexer.StrategyMarkdown), "chunking strategy: markdown or generic")
	maxSize := fs.Int("max", chunker.DefaultMaxChunkSize, "maximum chunk size in characters")
	contentType := fs.String("content-type", "", "content type override (detected from the extension by default)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("no input files")
	}
	if *maxSize <= 0 {
		return fmt.Errorf("-max must be greater than 0")
	}

	enc := json.NewEncoder(out)
	opt := chunker.WithMaxChunkSize(*maxSize)

	for _, path := range fs.Args() {
		var n int
		var err error
		switch indexer.Strategy(*strategy) {
		case indexer.StrategyMarkdown:
			n, err = chunkMarkdown(path, chunker.NewMarkdownChunker(opt), enc)
		case indexer.StrategyGeneric:
			n, err = chunkGeneric(ctx, path, *contentType, chunker.NewUnstructuredChunker(opt), enc)
		default:
			return fmt.Errorf("unknown strategy %q", *strategy)
		}
		if err != nil {
			return err
		}
		contextutil.LoggerFromContext(ctx).DebugContext(ctx, "chunked file", "path", path, "chunks", n)
	}
	return nil
}

func chunkMarkdown(path string, c *chunker.MarkdownChunker, enc *json.Encoder) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = f.Close()
	}()

	n := 0
	for chunk, err := range c.ChunkReader(path, f) {
		if err != nil {
			return n, err
		}
		if err := enc.Encode(chunk); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func chunkGeneric(ctx context.Context, path, contentType string, c *chunker.UnstructuredChunker, enc *json.Encoder) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = f.Close()
	}()

	ct := partition.DetectContentType(path, contentType)
	elements, err := partition.New().Partition(ctx, path, ct, f)
	if err != nil {
		return 0, err
	}

	n := 0
	for chunk := range c.Chunk(path, slices.Values(elements)) {
		if err := enc.Encode(chunk); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
