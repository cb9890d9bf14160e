package rag

import (
	"context"
	"fmt"

	"ragcompare/internal/indexer"
	"ragcompare/internal/storage"
)

// DefaultStacks are the configured RAG stacks, in display order.
var DefaultStacks = []Stack{
	{Name: "naive", Strategy: indexer.StrategyGeneric},
	{Name: "window", Strategy: indexer.StrategyMarkdown},
	{Name: "reranker", Strategy: indexer.StrategyGeneric, Rerank: true},
	{Name: "everything", Strategy: indexer.StrategyMarkdown, Rerank: true},
	{Name: "hyde", Strategy: indexer.StrategyGeneric, HyDE: true},
	{Name: "multi_query", Strategy: indexer.StrategyGeneric, MultiQuery: true},
}

// Registry maps stack names to backends. It is built once and read-only afterwards.
type Registry struct {
	backends map[string]Backend
	stacks   []Stack
}

// NewRegistry creates one engine per stack, each over a corpus named after the
// stack. Corpora are created on first start.
func NewRegistry(ctx context.Context, corpora storage.CorpusStore, stacks []Stack, deps Deps) (*Registry, error) {
	r := &Registry{
		backends: make(map[string]Backend, len(stacks)),
		stacks:   stacks,
	}

	for _, s := range stacks {
		if _, dup := r.backends[s.Name]; dup {
			return nil, fmt.Errorf("duplicate stack %q", s.Name)
		}
		corpus, err := corpora.GetOrCreateByName(ctx, s.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create corpus %s: %w", s.Name, err)
		}
		r.backends[s.Name] = NewEngine(s, corpus.ID, deps)
	}

	return r, nil
}

// NewRegistryFromBackends wraps already constructed backends.
func NewRegistryFromBackends(backends ...Backend) *Registry {
	r := &Registry{backends: make(map[string]Backend, len(backends))}
	for _, b := range backends {
		r.backends[b.Name()] = b
		r.stacks = append(r.stacks, Stack{Name: b.Name()})
	}
	return r
}

// Get returns the backend for a stack name.
func (r *Registry) Get(name string) (Backend, bool) {
	b, ok := r.backends[name]
	return b, ok
}

// Stacks returns the stack configurations in display order.
func (r *Registry) Stacks() []Stack {
	return r.stacks
}
