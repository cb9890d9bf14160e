package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_document_store.go -package=mocks ragcompare/internal/storage DocumentStore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// DocumentStore defines the interface for document storage operations.
type DocumentStore interface {
	// Insert stores doc, assigning a UUID when doc.ID is empty.
	Insert(ctx context.Context, doc *Document) error
	// UpdateChunkCount records how many chunks a document produced.
	// Returns ErrNotFound if the document does not exist.
	UpdateChunkCount(ctx context.Context, id string, count int) error
	// ListByCorpus returns the documents of a corpus in upload order.
	ListByCorpus(ctx context.Context, corpusID int64) ([]Document, error)
	// Delete removes one document and its chunks.
	Delete(ctx context.Context, id string) error
	// DeleteByCorpus removes every document of a corpus and, by cascade, its chunks.
	DeleteByCorpus(ctx context.Context, corpusID int64) (int64, error)
}

// DocumentRepo implements DocumentStore on SQLite.
type DocumentRepo struct {
	db *sql.DB
}

// NewDocumentRepo creates a new DocumentRepo.
func NewDocumentRepo(db *sql.DB) *DocumentRepo {
	return &DocumentRepo{db: db}
}

// Insert stores doc, assigning a UUID when doc.ID is empty.
func (r *DocumentRepo) Insert(ctx context.Context, doc *Document) error {
	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO documents (id, corpus_id, filename, content_type, chunk_count)
		 VALUES (?, ?, ?, ?, ?)`,
		doc.ID, doc.CorpusID, doc.Filename, doc.ContentType, doc.ChunkCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert document: %w", err)
	}
	return nil
}

// UpdateChunkCount records how many chunks a document produced.
func (r *DocumentRepo) UpdateChunkCount(ctx context.Context, id string, count int) error {
	res, err := r.db.ExecContext(ctx, "UPDATE documents SET chunk_count = ? WHERE id = ?", count, id)
	if err != nil {
		return fmt.Errorf("failed to update chunk count: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListByCorpus returns the documents of a corpus in upload order.
func (r *DocumentRepo) ListByCorpus(ctx context.Context, corpusID int64) ([]Document, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, corpus_id, filename, content_type, chunk_count, created_at
		 FROM documents WHERE corpus_id = ? ORDER BY created_at, rowid`,
		corpusID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query documents: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var docs []Document
	for rows.Next() {
		var d Document
		if err := rows.Scan(&d.ID, &d.CorpusID, &d.Filename, &d.ContentType, &d.ChunkCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		docs = append(docs, d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return docs, nil
}

// Delete removes one document and, by cascade, its chunks. Deleting a missing
// document is not an error.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

// DeleteByCorpus removes every document of a corpus and returns how many were removed.
func (r *DocumentRepo) DeleteByCorpus(ctx context.Context, corpusID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, "DELETE FROM documents WHERE corpus_id = ?", corpusID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete documents: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n, nil
}
