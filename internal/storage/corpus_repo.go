package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_corpus_store.go -package=mocks ragcompare/internal/storage CorpusStore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record is not found.
var ErrNotFound = errors.New("record not found")

// CorpusStore defines the interface for corpus storage operations.
type CorpusStore interface {
	// GetOrCreateByName returns the corpus called name, creating it if needed.
	GetOrCreateByName(ctx context.Context, name string) (Corpus, error)
	// ListAll returns all corpora ordered by name.
	ListAll(ctx context.Context) ([]Corpus, error)
}

// CorpusRepo implements CorpusStore on SQLite.
type CorpusRepo struct {
	db *sql.DB
}

// NewCorpusRepo creates a new CorpusRepo.
func NewCorpusRepo(db *sql.DB) *CorpusRepo {
	return &CorpusRepo{db: db}
}

// GetOrCreateByName gets an existing corpus by name, or creates it if it doesn't exist.
func (r *CorpusRepo) GetOrCreateByName(ctx context.Context, name string) (Corpus, error) {
	if _, err := r.db.ExecContext(ctx,
		"INSERT INTO corpora (name) VALUES (?) ON CONFLICT (name) DO NOTHING",
		name,
	); err != nil {
		return Corpus{}, fmt.Errorf("failed to create corpus %q: %w", name, err)
	}

	var c Corpus
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM corpora WHERE name = ?",
		name,
	).Scan(&c.ID, &c.Name, &c.CreatedAt)
	if err != nil {
		return Corpus{}, fmt.Errorf("failed to query corpus %q: %w", name, err)
	}

	return c, nil
}

// ListAll returns all corpora ordered by name.
func (r *CorpusRepo) ListAll(ctx context.Context) ([]Corpus, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, created_at FROM corpora ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to query corpora: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var corpora []Corpus
	for rows.Next() {
		var c Corpus
		if err := rows.Scan(&c.ID, &c.Name, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan corpus: %w", err)
		}
		corpora = append(corpora, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return corpora, nil
}
