package rag

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rag.go -package=mocks ragcompare/internal/rag Backend,Indexer,ChatClient

import (
	"context"

	"ragcompare/internal/indexer"
	"ragcompare/internal/llm"
	"ragcompare/internal/storage"
)

// AttributedAnswer is one assistant answer with the passages it was built from.
type AttributedAnswer struct {
	Answer    string   `json:"answer"`
	Citations []string `json:"citations,omitempty"`
	// Score is the best retrieval score among the citations, nil when nothing
	// was retrieved.
	Score *float64 `json:"score,omitempty"`
}

// Backend is one RAG stack: a document corpus plus a running conversation.
type Backend interface {
	// Name returns the stack name.
	Name() string
	// ListFiles returns the filenames in the corpus in upload order.
	ListFiles(ctx context.Context) ([]string, error)
	// AddFile chunks and indexes one document.
	AddFile(ctx context.Context, up indexer.Upload) (indexer.Result, error)
	// ClearFiles removes every document from the corpus.
	ClearFiles(ctx context.Context) error
	// AddConversation answers message in the context of the conversation so far.
	AddConversation(ctx context.Context, message string) ([]AttributedAnswer, error)
	// ClearConversation forgets the conversation history.
	ClearConversation(ctx context.Context) error
	// Stats describes the corpus.
	Stats(ctx context.Context) (*indexer.CorpusStats, error)
}

// Indexer is the part of indexer.Pipeline a backend drives.
type Indexer interface {
	IndexDocument(ctx context.Context, corpusID int64, strategy indexer.Strategy, up indexer.Upload) (indexer.Result, error)
	ClearCorpus(ctx context.Context, corpusID int64) (int64, error)
	ListDocuments(ctx context.Context, corpusID int64) ([]storage.Document, error)
	CorpusStats(ctx context.Context, corpusID int64, embeddingModel string) (*indexer.CorpusStats, error)
}

// ChatClient generates answers.
type ChatClient interface {
	ChatWithMessages(ctx context.Context, messages []llm.Message, params llm.ChatParams) (string, error)
}
