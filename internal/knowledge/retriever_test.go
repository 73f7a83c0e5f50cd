package knowledge

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/parcelpoint/concierge/internal/store"
)

type fakeChunkStore struct {
	chunks    []store.Chunk
	err       error
	lastLimit int
}

func (f *fakeChunkStore) SearchChunks(ctx context.Context, query string, limit int) ([]store.Chunk, error) {
	f.lastLimit = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.chunks, nil
}

func TestSearch_MapsChunks(t *testing.T) {
	id := uuid.New()
	fs := &fakeChunkStore{chunks: []store.Chunk{
		{ID: id, Title: "Pricing your listing", Source: "kb", Content: "Comps drive price."},
	}}
	r := NewRetriever(fs)

	got, err := r.Search(context.Background(), "pricing", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 snippet, got %d", len(got))
	}
	s := got[0]
	if s.ID != id.String() {
		t.Errorf("expected id %s, got %s", id, s.ID)
	}
	if s.Title != "Pricing your listing" || s.Source != "kb" {
		t.Errorf("unexpected snippet: %+v", s)
	}
}

func TestSearch_DefaultK(t *testing.T) {
	fs := &fakeChunkStore{}
	r := NewRetriever(fs)

	if _, err := r.Search(context.Background(), "pricing", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fs.lastLimit != DefaultK {
		t.Errorf("expected default k %d, got %d", DefaultK, fs.lastLimit)
	}
}

func TestSearch_EmptyResultIsValid(t *testing.T) {
	r := NewRetriever(&fakeChunkStore{})

	got, err := r.Search(context.Background(), "nothing matches", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty result, got %d snippets", len(got))
	}
}

func TestSearch_StoreError(t *testing.T) {
	r := NewRetriever(&fakeChunkStore{err: errors.New("connection refused")})

	if _, err := r.Search(context.Background(), "pricing", 6); err == nil {
		t.Fatal("expected error from store failure")
	}
}
