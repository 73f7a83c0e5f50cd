package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Chunk is one knowledge-base snippet with its parent document's title and
// source tag ("marketplace" or "kb").
type Chunk struct {
	ID      uuid.UUID
	Title   string
	Source  string
	Content string
}

// SearchChunks runs a full-text match over knowledge chunks and returns up to
// limit results. No ranking guarantee beyond ts_rank; an empty result set is
// valid.
func (s *Store) SearchChunks(ctx context.Context, query string, limit int) ([]Chunk, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT c.id, d.title, d.source, c.content
		FROM knowledge_chunks c
		JOIN knowledge_documents d ON d.id = c.document_id
		WHERE to_tsvector('english', c.content) @@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', c.content), plainto_tsquery('english', $1)) DESC
		LIMIT $2`,
		query, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query knowledge chunks: %w", err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.Title, &c.Source, &c.Content); err != nil {
			return nil, fmt.Errorf("scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}
