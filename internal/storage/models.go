package storage

import "time"

// Corpus is the set of documents owned by one RAG stack.
type Corpus struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Document is an uploaded file that produced at least one chunk.
type Document struct {
	ID          string // UUID, shared by all chunks cut from the file
	CorpusID    int64
	Filename    string
	ContentType string
	ChunkCount  int
	CreatedAt   time.Time
}

// Chunk is a stored chunk of a document. Its ID doubles as the Qdrant point ID.
type Chunk struct {
	ID         string
	DocumentID string
	ChunkIndex int // starts at 0
	Text       string
}
