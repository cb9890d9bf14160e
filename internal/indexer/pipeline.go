package indexer

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_indexer.go -package=mocks ragcompare/internal/indexer Embedder,Partitioner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"unicode/utf8"

	"github.com/google/uuid"

	"ragcompare/internal/chunker"
	"ragcompare/internal/contextutil"
	"ragcompare/internal/metrics"
	"ragcompare/internal/partition"
	"ragcompare/internal/storage"
	"ragcompare/internal/vectorstore"
)

// Strategy selects how uploaded documents are chunked.
type Strategy string

const (
	// StrategyGeneric partitions every document into text elements and slices
	// them into fixed windows.
	StrategyGeneric Strategy = "generic"
	// StrategyMarkdown chunks markdown by heading structure and falls back to
	// StrategyGeneric for other content types.
	StrategyMarkdown Strategy = "markdown"
)

// Payload keys stored with every vector point.
const (
	PayloadCorpusID   = "corpus_id"
	PayloadDocumentID = "document_id"
	PayloadFileName   = "file_name"
	PayloadChunkIndex = "chunk_index"
)

// DefaultEmbedBatchSize is the number of chunks embedded per request.
const DefaultEmbedBatchSize = 32

// Embedder turns texts into vectors.
type Embedder interface {
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Partitioner extracts text elements from a document.
type Partitioner interface {
	Partition(ctx context.Context, filename, contentType string, r io.Reader) ([]string, error)
}

// Upload is a document to index.
type Upload struct {
	Filename    string
	ContentType string // may be empty; detected from the filename
	Body        io.Reader
}

// Result describes an indexed document.
type Result struct {
	DocumentID string `json:"document_id,omitempty"`
	Filename   string `json:"file_name"`
	Chunks     int    `json:"chunks"`
}

// Pipeline chunks uploads and stores them in SQLite and Qdrant.
type Pipeline struct {
	documents   storage.DocumentStore
	chunks      storage.ChunkStore
	embedder    Embedder
	vectorStore vectorstore.VectorStore
	partitioner Partitioner
	collection  string
	batchSize   int
	markdown    *chunker.MarkdownChunker
	generic     *chunker.UnstructuredChunker
	metrics     *metrics.Metrics
}

// NewPipeline creates a new indexing pipeline. maxChunkSize and batchSize fall
// back to their defaults when not positive.
func NewPipeline(
	documents storage.DocumentStore,
	chunks storage.ChunkStore,
	embedder Embedder,
	vectorStore vectorstore.VectorStore,
	partitioner Partitioner,
	collection string,
	maxChunkSize int,
	batchSize int,
	m *metrics.Metrics,
) *Pipeline {
	if batchSize <= 0 {
		batchSize = DefaultEmbedBatchSize
	}
	return &Pipeline{
		documents:   documents,
		chunks:      chunks,
		embedder:    embedder,
		vectorStore: vectorStore,
		partitioner: partitioner,
		collection:  collection,
		batchSize:   batchSize,
		markdown:    chunker.NewMarkdownChunker(chunker.WithMaxChunkSize(maxChunkSize)),
		generic:     chunker.NewUnstructuredChunker(chunker.WithMaxChunkSize(maxChunkSize)),
		metrics:     m,
	}
}

// MaxChunkSize returns the character ceiling used by both chunkers.
func (p *Pipeline) MaxChunkSize() int {
	return p.markdown.MaxChunkSize()
}

// chunkerFor returns the strategy that actually chunks an upload: the
// structural chunker only reads markdown, everything else is partitioned and
// chunked generically.
func chunkerFor(strategy Strategy, contentType string) Strategy {
	if strategy == StrategyMarkdown && contentType == partition.ContentTypeMarkdown {
		return StrategyMarkdown
	}
	return StrategyGeneric
}

// chunkSeq returns the chunk sequence of an upload for the given chunker.
func (p *Pipeline) chunkSeq(ctx context.Context, strategy Strategy, up Upload, contentType string) (iter.Seq2[chunker.Chunk, error], error) {
	if strategy == StrategyMarkdown {
		return p.markdown.ChunkReader(up.Filename, up.Body), nil
	}

	elements, err := p.partitioner.Partition(ctx, up.Filename, contentType, up.Body)
	if err != nil {
		return nil, err
	}
	chunks := p.generic.Chunk(up.Filename, slices.Values(elements))
	return func(yield func(chunker.Chunk, error) bool) {
		for c := range chunks {
			if !yield(c, nil) {
				return
			}
		}
	}, nil
}

// IndexDocument chunks one upload into the corpus. The document row is created
// when the first chunk arrives, so an upload that yields no chunks leaves no
// trace. On failure everything stored for the document is removed again.
func (p *Pipeline) IndexDocument(ctx context.Context, corpusID int64, strategy Strategy, up Upload) (Result, error) {
	logger := contextutil.LoggerFromContext(ctx)

	contentType := partition.DetectContentType(up.Filename, up.ContentType)
	chunking := chunkerFor(strategy, contentType)
	result := Result{Filename: up.Filename}
	var lengths []int

	err := func() error {
		seq, err := p.chunkSeq(ctx, chunking, up, contentType)
		if err != nil {
			return err
		}

		var doc *storage.Document
		batch := make([]chunker.Chunk, 0, p.batchSize)

		flush := func() error {
			if len(batch) == 0 {
				return nil
			}
			if err := p.storeBatch(ctx, corpusID, doc, result.Chunks, batch); err != nil {
				return err
			}
			result.Chunks += len(batch)
			batch = batch[:0]
			return nil
		}

		for c, err := range seq {
			if err != nil {
				return err
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			if doc == nil {
				doc = &storage.Document{
					ID:          c.SourceDocumentID,
					CorpusID:    corpusID,
					Filename:    up.Filename,
					ContentType: contentType,
				}
				if err := p.documents.Insert(ctx, doc); err != nil {
					doc = nil
					return err
				}
				result.DocumentID = doc.ID
			}

			lengths = append(lengths, utf8.RuneCountInString(c.Text))
			batch = append(batch, c)
			if len(batch) == p.batchSize {
				if err := flush(); err != nil {
					return err
				}
			}
		}
		if err := flush(); err != nil {
			return err
		}

		if doc != nil {
			return p.documents.UpdateChunkCount(ctx, doc.ID, result.Chunks)
		}
		return nil
	}()

	p.metrics.RecordDocument(string(chunking), lengths, err)

	if err != nil {
		if result.DocumentID != "" {
			p.removeDocument(context.WithoutCancel(ctx), result.DocumentID)
		}
		logger.ErrorContext(ctx, "failed to index document", "file", up.Filename, "content_type", contentType, "error", err)
		return Result{Filename: up.Filename}, fmt.Errorf("failed to index %s: %w", up.Filename, err)
	}

	if result.Chunks == 0 {
		logger.WarnContext(ctx, "no chunks generated", "file", up.Filename, "content_type", contentType, "strategy", chunking)
		return result, nil
	}

	logger.InfoContext(ctx, "indexed document",
		"file", up.Filename,
		"document_id", result.DocumentID,
		"content_type", contentType,
		"strategy", chunking,
		"chunks", result.Chunks,
	)
	return result, nil
}

// storeBatch embeds a batch and writes it to SQLite and Qdrant. offset is the
// chunk index of the first chunk in the batch.
func (p *Pipeline) storeBatch(ctx context.Context, corpusID int64, doc *storage.Document, offset int, batch []chunker.Chunk) error {
	texts := make([]string, len(batch))
	for i, c := range batch {
		texts[i] = c.Text
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding count mismatch: expected %d, got %d", len(batch), len(embeddings))
	}

	records := make([]storage.Chunk, len(batch))
	points := make([]vectorstore.Point, len(batch))
	for i, c := range batch {
		id := uuid.New().String()
		index := offset + i

		records[i] = storage.Chunk{
			ID:         id,
			DocumentID: doc.ID,
			ChunkIndex: index,
			Text:       c.Text,
		}
		points[i] = vectorstore.Point{
			ID:  id,
			Vec: embeddings[i],
			Meta: map[string]any{
				PayloadCorpusID:   corpusID,
				PayloadDocumentID: doc.ID,
				PayloadFileName:   c.SourceFilename,
				PayloadChunkIndex: int64(index),
			},
		}
	}

	if err := p.chunks.InsertBatch(ctx, records); err != nil {
		return err
	}
	if err := p.vectorStore.Upsert(ctx, p.collection, points); err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}
	return nil
}

// removeDocument deletes a partially indexed document. Failures are logged.
func (p *Pipeline) removeDocument(ctx context.Context, documentID string) {
	logger := contextutil.LoggerFromContext(ctx)

	err := errors.Join(
		p.vectorStore.DeleteByFilter(ctx, p.collection, vectorstore.Filter{PayloadDocumentID: documentID}),
		p.documents.Delete(ctx, documentID),
	)
	if err != nil {
		logger.WarnContext(ctx, "failed to clean up partial document", "document_id", documentID, "error", err)
	}
}

// ClearCorpus removes every document of a corpus from Qdrant and SQLite and
// returns how many documents were removed.
func (p *Pipeline) ClearCorpus(ctx context.Context, corpusID int64) (int64, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if err := p.vectorStore.DeleteByFilter(ctx, p.collection, vectorstore.Filter{PayloadCorpusID: corpusID}); err != nil {
		return 0, fmt.Errorf("failed to clear vectors: %w", err)
	}
	n, err := p.documents.DeleteByCorpus(ctx, corpusID)
	if err != nil {
		return 0, err
	}

	logger.InfoContext(ctx, "cleared corpus", "corpus_id", corpusID, "documents", n)
	return n, nil
}

// ListDocuments returns the documents of a corpus in upload order.
func (p *Pipeline) ListDocuments(ctx context.Context, corpusID int64) ([]storage.Document, error) {
	return p.documents.ListByCorpus(ctx, corpusID)
}
