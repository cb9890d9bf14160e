package indexer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"slices"
	"unicode/utf8"
)

// ChunkerVersion identifies the chunking rules. Bump it when chunk boundaries change.
const ChunkerVersion = "v2.0"

// CorpusStats describes what a corpus currently holds.
type CorpusStats struct {
	// Documents is the number of stored documents.
	Documents int `json:"documents"`
	// DocumentsInProgress counts uploads still being indexed. A document row
	// is written with its first chunk and gets its chunk count when the upload
	// completes, so only in-flight uploads have a zero count.
	DocumentsInProgress int `json:"documents_in_progress"`
	Chunks              int `json:"chunks"`
	// ChunkLength summarizes chunk lengths in characters.
	ChunkLength LengthStats `json:"chunk_length"`
	// MaxChunkSize is the configured character ceiling.
	MaxChunkSize   int    `json:"max_chunk_size"`
	ChunkerVersion string `json:"chunker_version"`
	// IndexVersion is a hash of the chunker version, embedding model and size ceiling.
	IndexVersion string `json:"index_version"`
}

// LengthStats contains min, max, mean and p95 of a set of lengths.
type LengthStats struct {
	Min  int     `json:"min"`
	Max  int     `json:"max"`
	Mean float64 `json:"mean"`
	P95  int     `json:"p95"`
}

// CorpusStats computes statistics for one corpus from the metadata store.
func (p *Pipeline) CorpusStats(ctx context.Context, corpusID int64, embeddingModel string) (*CorpusStats, error) {
	docs, err := p.documents.ListByCorpus(ctx, corpusID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	texts, err := p.chunks.ListTextsByCorpus(ctx, corpusID)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks: %w", err)
	}

	stats := &CorpusStats{
		Documents:      len(docs),
		Chunks:         len(texts),
		MaxChunkSize:   p.MaxChunkSize(),
		ChunkerVersion: ChunkerVersion,
		IndexVersion:   indexVersion(embeddingModel, p.MaxChunkSize()),
	}
	for _, d := range docs {
		if d.ChunkCount == 0 {
			stats.DocumentsInProgress++
		}
	}

	lengths := make([]int, len(texts))
	for i, t := range texts {
		lengths[i] = utf8.RuneCountInString(t)
	}
	stats.ChunkLength = computeLengthStats(lengths)

	return stats, nil
}

func indexVersion(embeddingModel string, maxChunkSize int) string {
	input := fmt.Sprintf("%s|%s|maxChunkSize=%d", ChunkerVersion, embeddingModel, maxChunkSize)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])[:16]
}

// computeLengthStats computes min, max, mean, and p95 from lengths.
func computeLengthStats(lengths []int) LengthStats {
	if len(lengths) == 0 {
		return LengthStats{}
	}

	sorted := slices.Clone(lengths)
	slices.Sort(sorted)

	sum := 0
	for _, n := range sorted {
		sum += n
	}
	mean := float64(sum) / float64(len(sorted))

	p95Index := int(math.Ceil(float64(len(sorted)) * 0.95))
	if p95Index >= len(sorted) {
		p95Index = len(sorted) - 1
	}

	return LengthStats{
		Min:  sorted[0],
		Max:  sorted[len(sorted)-1],
		Mean: math.Round(mean*100) / 100,
		P95:  sorted[p95Index],
	}
}
