package rag

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"ragcompare/internal/contextutil"
	"ragcompare/internal/indexer"
	"ragcompare/internal/llm"
	"ragcompare/internal/metrics"
	"ragcompare/internal/storage"
	"ragcompare/internal/vectorstore"
)

const (
	// RetrieveTopK is the number of chunks fetched from the vector store per turn.
	RetrieveTopK = 10
	// RerankTopK is the number of chunks kept after reranking.
	RerankTopK = 5

	// maxHistoryMessages bounds how much of the conversation is replayed to the LLM.
	maxHistoryMessages = 20
	answerTemperature  = 0.7
)

const systemPrompt = "You are a helpful assistant that answers questions based on passages from the user's uploaded files. " +
	"Answer using only the information in the passages. If the passages don't contain " +
	"enough information to answer the question, say so."

const noResultsAnswer = "I couldn't find any relevant information in the uploaded files to answer this question."

// Stack describes how a backend chunks and retrieves.
type Stack struct {
	Name     string           `json:"name"`
	Strategy indexer.Strategy `json:"strategy"`
	Rerank   bool             `json:"rerank"`
	// HyDE searches with a hypothetical answer written by the LLM.
	HyDE bool `json:"hyde"`
	// MultiQuery also searches with sub-questions of the message.
	MultiQuery bool `json:"multi_query"`
}

// Deps are the collaborators shared by every engine.
type Deps struct {
	Indexer        Indexer
	Embedder       indexer.Embedder
	VectorStore    vectorstore.VectorStore
	Chunks         storage.ChunkStore
	Chat           ChatClient
	Metrics        *metrics.Metrics
	Collection     string
	EmbeddingModel string
}

// Engine implements Backend for one stack over its own corpus.
type Engine struct {
	stack    Stack
	corpusID int64
	deps     Deps

	mu      sync.Mutex // serializes turns and guards history
	history []llm.Message
}

// NewEngine creates the backend for stack over corpus corpusID.
func NewEngine(stack Stack, corpusID int64, deps Deps) *Engine {
	return &Engine{
		stack:    stack,
		corpusID: corpusID,
		deps:     deps,
	}
}

// Name returns the stack name.
func (e *Engine) Name() string {
	return e.stack.Name
}

// Stack returns the stack configuration.
func (e *Engine) Stack() Stack {
	return e.stack
}

// ListFiles returns the filenames in the corpus in upload order.
func (e *Engine) ListFiles(ctx context.Context) ([]string, error) {
	docs, err := e.deps.Indexer.ListDocuments(ctx, e.corpusID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Filename
	}
	return names, nil
}

// AddFile chunks and indexes one document with the stack's strategy.
func (e *Engine) AddFile(ctx context.Context, up indexer.Upload) (indexer.Result, error) {
	return e.deps.Indexer.IndexDocument(ctx, e.corpusID, e.stack.Strategy, up)
}

// ClearFiles removes every document from the corpus.
func (e *Engine) ClearFiles(ctx context.Context) error {
	_, err := e.deps.Indexer.ClearCorpus(ctx, e.corpusID)
	return err
}

// Stats describes the corpus.
func (e *Engine) Stats(ctx context.Context) (*indexer.CorpusStats, error) {
	return e.deps.Indexer.CorpusStats(ctx, e.corpusID, e.deps.EmbeddingModel)
}

// ClearConversation forgets the conversation history.
func (e *Engine) ClearConversation(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.history = nil
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "conversation cleared", "stack", e.stack.Name)
	return nil
}

// passage is a retrieved chunk with its scores.
type passage struct {
	chunkID string
	text    string
	vector  float64
	lexical float64
	final   float64
}

// AddConversation answers message using the corpus and the conversation so far.
// Turns on one engine run one at a time.
func (e *Engine) AddConversation(ctx context.Context, message string) ([]AttributedAnswer, error) {
	logger := contextutil.LoggerFromContext(ctx)
	start := time.Now()

	e.mu.Lock()
	defer e.mu.Unlock()

	passages, err := e.retrieve(ctx, message)
	if err != nil {
		e.deps.Metrics.RecordTurn(e.stack.Name, 0, time.Since(start), err)
		return nil, err
	}

	answer, err := e.answer(ctx, message, passages)
	e.deps.Metrics.RecordTurn(e.stack.Name, len(passages), time.Since(start), err)
	if err != nil {
		return nil, err
	}

	e.history = append(e.history,
		llm.Message{Role: "user", Content: message},
		llm.Message{Role: "assistant", Content: answer.Answer},
	)

	logger.InfoContext(ctx, "conversation turn completed",
		"stack", e.stack.Name,
		"passages", len(passages),
		"answer_length", len(answer.Answer),
		"history", len(e.history),
		"duration", time.Since(start),
	)
	return []AttributedAnswer{answer}, nil
}

// retrieve searches the corpus with the vectors of the stack's queries, keeps
// the best RetrieveTopK points and, for rerank stacks, blends in a lexical
// score and keeps the best RerankTopK.
func (e *Engine) retrieve(ctx context.Context, message string) ([]passage, error) {
	logger := contextutil.LoggerFromContext(ctx)

	vectors, err := e.queryVectors(ctx, message)
	if err != nil {
		return nil, err
	}

	var hits [][]vectorstore.SearchResult
	for _, vec := range vectors {
		results, err := e.deps.VectorStore.Search(ctx, e.deps.Collection, vec, RetrieveTopK,
			vectorstore.Filter{indexer.PayloadCorpusID: e.corpusID})
		if err != nil {
			logger.ErrorContext(ctx, "failed to search vector store", "error", err)
			return nil, fmt.Errorf("failed to search vector store: %w", err)
		}
		hits = append(hits, results)
	}
	results := mergeResults(hits, RetrieveTopK)

	passages := make([]passage, 0, len(results))
	for _, result := range results {
		chunk, err := e.deps.Chunks.GetByID(ctx, result.PointID)
		if errors.Is(err, storage.ErrNotFound) {
			logger.WarnContext(ctx, "chunk missing for vector point", "chunk_id", result.PointID)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to fetch chunk %s: %w", result.PointID, err)
		}

		p := passage{
			chunkID: chunk.ID,
			text:    chunk.Text,
			vector:  float64(result.Score),
		}
		p.final = p.vector
		passages = append(passages, p)
	}

	if e.stack.Rerank {
		passages = rerank(message, passages, RerankTopK)
	}

	logger.DebugContext(ctx, "retrieval completed",
		"stack", e.stack.Name,
		"queries", len(vectors),
		"retrieved", len(results),
		"kept", len(passages),
	)
	return passages, nil
}

// answer prompts the LLM with the history and the passages.
func (e *Engine) answer(ctx context.Context, message string, passages []passage) (AttributedAnswer, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(passages) == 0 {
		logger.InfoContext(ctx, "no passages retrieved", "stack", e.stack.Name)
		return AttributedAnswer{Answer: noResultsAnswer}, nil
	}

	messages := buildMessages(e.history, message, passages)
	text, err := e.deps.Chat.ChatWithMessages(ctx, messages, llm.ChatParams{
		Temperature: answerTemperature,
	})
	if err != nil {
		logger.ErrorContext(ctx, "failed to get LLM response", "error", err)
		return AttributedAnswer{}, fmt.Errorf("failed to get LLM response: %w", err)
	}

	citations := make([]string, len(passages))
	best := passages[0].final
	for i, p := range passages {
		citations[i] = p.text
		best = max(best, p.final)
	}

	return AttributedAnswer{
		Answer:    text,
		Citations: citations,
		Score:     &best,
	}, nil
}

// buildMessages lays out the system prompt, the recent history and the new
// user message followed by the numbered passages.
func buildMessages(history []llm.Message, message string, passages []passage) []llm.Message {
	if len(history) > maxHistoryMessages {
		history = history[len(history)-maxHistoryMessages:]
	}

	var b strings.Builder
	b.WriteString(message)
	b.WriteString("\n\n--- Passages ---\n\n")
	for i, p := range passages {
		fmt.Fprintf(&b, "[%d]\n%s\n\n", i+1, p.text)
	}
	b.WriteString("--- End Passages ---")

	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: "system", Content: systemPrompt})
	messages = append(messages, history...)
	messages = append(messages, llm.Message{Role: "user", Content: b.String()})
	return messages
}
