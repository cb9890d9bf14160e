package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_stack_service.go -package=mocks ragcompare/internal/service StackService

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"ragcompare/internal/contextutil"
	"ragcompare/internal/indexer"
	"ragcompare/internal/partition"
	"ragcompare/internal/rag"
)

// DefaultIngestConcurrency bounds parallel document ingestion when no limit is configured.
const DefaultIngestConcurrency = 4

// StackService exposes the RAG stacks to transports.
type StackService interface {
	// Stacks returns the available stacks.
	Stacks() []rag.Stack
	// Open starts a fresh session on a stack: the stack must exist and its
	// conversation is reset.
	Open(ctx context.Context, stack string) error
	ListFiles(ctx context.Context, stack string) ([]string, error)
	// AddFiles ingests uploads concurrently. Results are in upload order.
	AddFiles(ctx context.Context, stack string, uploads []indexer.Upload) ([]indexer.Result, error)
	ClearFiles(ctx context.Context, stack string) error
	AddConversation(ctx context.Context, stack, text string) ([]rag.AttributedAnswer, error)
	ClearConversation(ctx context.Context, stack string) error
	Stats(ctx context.Context, stack string) (*indexer.CorpusStats, error)
	// Seed ingests every supported file under root into an empty stack. A
	// stack that already has files is left alone.
	Seed(ctx context.Context, stack, root string) ([]indexer.Result, error)
}

type stackService struct {
	registry    *rag.Registry
	concurrency int
}

// NewStackService creates a StackService over registry. concurrency bounds
// parallel ingestion; values below 1 use DefaultIngestConcurrency.
func NewStackService(registry *rag.Registry, concurrency int) StackService {
	if concurrency < 1 {
		concurrency = DefaultIngestConcurrency
	}
	return &stackService{
		registry:    registry,
		concurrency: concurrency,
	}
}

func (s *stackService) Stacks() []rag.Stack {
	return s.registry.Stacks()
}

func (s *stackService) backend(ctx context.Context, name string) (rag.Backend, error) {
	b, ok := s.registry.Get(name)
	if !ok {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "unknown stack", "stack", name)
		return nil, fmt.Errorf("stack %q: %w", name, ErrNotFound)
	}
	return b, nil
}

func (s *stackService) Open(ctx context.Context, stack string) error {
	b, err := s.backend(ctx, stack)
	if err != nil {
		return err
	}
	return b.ClearConversation(ctx)
}

func (s *stackService) ListFiles(ctx context.Context, stack string) ([]string, error) {
	b, err := s.backend(ctx, stack)
	if err != nil {
		return nil, err
	}
	files, err := b.ListFiles(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list files")
	}
	return files, nil
}

func (s *stackService) AddFiles(ctx context.Context, stack string, uploads []indexer.Upload) ([]indexer.Result, error) {
	b, err := s.backend(ctx, stack)
	if err != nil {
		return nil, err
	}

	if len(uploads) == 0 {
		return nil, &ValidationError{Field: "files", Message: "at least one file is required"}
	}
	for _, up := range uploads {
		if strings.TrimSpace(up.Filename) == "" {
			return nil, &ValidationError{Field: "files", Message: "filename cannot be empty"}
		}
		if ct := partition.DetectContentType(up.Filename, up.ContentType); !partition.Supported(ct) {
			return nil, fmt.Errorf("%s (%s): %w", up.Filename, ct, partition.ErrUnsupportedContentType)
		}
	}

	return s.ingest(ctx, b, len(uploads), func(i int) (indexer.Upload, io.Closer, error) {
		return uploads[i], nil, nil
	})
}

func (s *stackService) Seed(ctx context.Context, stack, root string) ([]indexer.Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	b, err := s.backend(ctx, stack)
	if err != nil {
		return nil, err
	}

	existing, err := b.ListFiles(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list files")
	}
	if len(existing) > 0 {
		logger.InfoContext(ctx, "stack already seeded", "stack", stack, "files", len(existing))
		return nil, nil
	}

	files, err := indexer.ScanDir(ctx, root)
	if err != nil {
		return nil, WrapError(err, "failed to scan seed directory")
	}
	logger.InfoContext(ctx, "seeding stack", "stack", stack, "root", root, "files", len(files))

	return s.ingest(ctx, b, len(files), func(i int) (indexer.Upload, io.Closer, error) {
		f, err := os.Open(files[i].AbsPath)
		if err != nil {
			return indexer.Upload{}, nil, err
		}
		return indexer.Upload{
			Filename:    files[i].RelPath,
			ContentType: files[i].ContentType,
			Body:        f,
		}, f, nil
	})
}

// ingest adds n documents to b with at most s.concurrency in flight. open
// produces the i-th upload and an optional closer released once it is indexed.
// The first failure cancels the uploads that have not started.
func (s *stackService) ingest(ctx context.Context, b rag.Backend, n int, open func(i int) (indexer.Upload, io.Closer, error)) ([]indexer.Result, error) {
	results := make([]indexer.Result, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i := range n {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			up, closer, err := open(i)
			if err != nil {
				return err
			}
			if closer != nil {
				defer func() {
					_ = closer.Close()
				}()
			}

			res, err := b.AddFile(gctx, up)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, classify(err, "failed to add files")
	}

	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "files added", "stack", b.Name(), "files", n)
	return results, nil
}

func (s *stackService) ClearFiles(ctx context.Context, stack string) error {
	b, err := s.backend(ctx, stack)
	if err != nil {
		return err
	}
	if err := b.ClearFiles(ctx); err != nil {
		return classify(err, "failed to clear files")
	}
	return nil
}

func (s *stackService) AddConversation(ctx context.Context, stack, text string) ([]rag.AttributedAnswer, error) {
	b, err := s.backend(ctx, stack)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(text) == "" {
		return nil, &ValidationError{Field: "text", Message: "cannot be empty"}
	}

	answers, err := b.AddConversation(ctx, text)
	if err != nil {
		return nil, classifyTurn(err)
	}
	return answers, nil
}

func (s *stackService) ClearConversation(ctx context.Context, stack string) error {
	b, err := s.backend(ctx, stack)
	if err != nil {
		return err
	}
	return b.ClearConversation(ctx)
}

func (s *stackService) Stats(ctx context.Context, stack string) (*indexer.CorpusStats, error) {
	b, err := s.backend(ctx, stack)
	if err != nil {
		return nil, err
	}
	stats, err := b.Stats(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to compute stats")
	}
	return stats, nil
}
