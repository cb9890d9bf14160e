package indexer

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"ragcompare/internal/storage"
)

func TestPipeline_CorpusStats(t *testing.T) {
	db, err := storage.New(filepath.Join(t.TempDir(), "stats.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})
	if err := storage.Migrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	ctx := context.Background()
	corpora := storage.NewCorpusRepo(db)
	documents := storage.NewDocumentRepo(db)
	chunks := storage.NewChunkRepo(db)

	pipeline := NewPipeline(documents, chunks, nil, nil, nil, "", 50, 0, nil)

	corpus, err := corpora.GetOrCreateByName(ctx, "naive")
	if err != nil {
		t.Fatalf("GetOrCreateByName() error = %v", err)
	}

	stats, err := pipeline.CorpusStats(ctx, corpus.ID, "test-embedding-model")
	if err != nil {
		t.Fatalf("CorpusStats() error = %v", err)
	}
	if stats.Documents != 0 || stats.Chunks != 0 || stats.ChunkLength != (LengthStats{}) {
		t.Errorf("CorpusStats() on empty corpus = %+v", stats)
	}
	if stats.ChunkerVersion != ChunkerVersion || stats.MaxChunkSize != 50 {
		t.Errorf("CorpusStats() versions = %+v", stats)
	}
	if stats.IndexVersion == "" {
		t.Error("IndexVersion should not be empty")
	}

	withChunks := &storage.Document{CorpusID: corpus.ID, Filename: "a.md", ContentType: "text/markdown", ChunkCount: 3}
	if err := documents.Insert(ctx, withChunks); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	// b.txt has its row but no recorded chunk count yet, as during an upload
	if err := documents.Insert(ctx, &storage.Document{CorpusID: corpus.ID, Filename: "b.txt", ContentType: "text/plain"}); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}
	err = chunks.InsertBatch(ctx, []storage.Chunk{
		{ID: "c0", DocumentID: withChunks.ID, ChunkIndex: 0, Text: strings.Repeat("a", 10)},
		{ID: "c1", DocumentID: withChunks.ID, ChunkIndex: 1, Text: strings.Repeat("é", 20)},
		{ID: "c2", DocumentID: withChunks.ID, ChunkIndex: 2, Text: strings.Repeat("b", 30)},
	})
	if err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	stats, err = pipeline.CorpusStats(ctx, corpus.ID, "test-embedding-model")
	if err != nil {
		t.Fatalf("CorpusStats() error = %v", err)
	}
	if stats.Documents != 2 {
		t.Errorf("Documents = %d, want 2", stats.Documents)
	}
	if stats.DocumentsInProgress != 1 {
		t.Errorf("DocumentsInProgress = %d, want 1", stats.DocumentsInProgress)
	}
	if stats.Chunks != 3 {
		t.Errorf("Chunks = %d, want 3", stats.Chunks)
	}
	want := LengthStats{Min: 10, Max: 30, Mean: 20, P95: 30}
	if stats.ChunkLength != want {
		t.Errorf("ChunkLength = %+v, want %+v", stats.ChunkLength, want)
	}
}

func TestIndexVersion(t *testing.T) {
	a := indexVersion("model-a", 2000)
	if a != indexVersion("model-a", 2000) {
		t.Error("indexVersion() not deterministic")
	}
	if len(a) != 16 {
		t.Errorf("indexVersion() length = %d, want 16", len(a))
	}
	if a == indexVersion("model-b", 2000) || a == indexVersion("model-a", 1000) {
		t.Error("indexVersion() should change with model and chunk size")
	}
}

func TestComputeLengthStats(t *testing.T) {
	tests := []struct {
		name    string
		lengths []int
		want    LengthStats
	}{
		{
			name: "empty",
			want: LengthStats{},
		},
		{
			name:    "single value",
			lengths: []int{100},
			want:    LengthStats{Min: 100, Max: 100, Mean: 100, P95: 100},
		},
		{
			name:    "multiple values",
			lengths: []int{10, 20, 30, 40, 50},
			want:    LengthStats{Min: 10, Max: 50, Mean: 30, P95: 50},
		},
		{
			name:    "unsorted",
			lengths: []int{50, 10, 30, 20, 40},
			want:    LengthStats{Min: 10, Max: 50, Mean: 30, P95: 50},
		},
		{
			name:    "p95 of twenty",
			lengths: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20},
			want:    LengthStats{Min: 1, Max: 20, Mean: 10.5, P95: 20},
		},
		{
			name:    "mean rounded",
			lengths: []int{1, 1, 2},
			want:    LengthStats{Min: 1, Max: 2, Mean: 1.33, P95: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := computeLengthStats(tt.lengths); got != tt.want {
				t.Errorf("computeLengthStats() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
