// Package knowledge retrieves top-K knowledge-base snippets for a free-text
// query. An empty result set is valid; it silently lowers the downstream
// confidence score rather than raising an error.
package knowledge

import (
	"context"
	"fmt"

	"github.com/parcelpoint/concierge/internal/store"
)

const DefaultK = 6

// Snippet is one retrieved knowledge chunk with its parent document's title
// and source tag.
type Snippet struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Source  string `json:"source"` // "marketplace" or "kb"
	Content string `json:"content"`
}

type chunkStore interface {
	SearchChunks(ctx context.Context, query string, limit int) ([]store.Chunk, error)
}

type Retriever struct {
	store chunkStore
}

func NewRetriever(s chunkStore) *Retriever {
	return &Retriever{store: s}
}

// Search returns up to k snippets matching the query. k <= 0 falls back to
// DefaultK.
func (r *Retriever) Search(ctx context.Context, query string, k int) ([]Snippet, error) {
	if k <= 0 {
		k = DefaultK
	}
	chunks, err := r.store.SearchChunks(ctx, query, k)
	if err != nil {
		return nil, fmt.Errorf("search chunks: %w", err)
	}

	snippets := make([]Snippet, 0, len(chunks))
	for _, c := range chunks {
		snippets = append(snippets, Snippet{
			ID:      c.ID.String(),
			Title:   c.Title,
			Source:  c.Source,
			Content: c.Content,
		})
	}
	return snippets, nil
}
