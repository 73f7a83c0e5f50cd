// Package pulse supplies recently generated aggregate market-insight strings
// for the system prompt. Like the knowledge retriever, a miss degrades to an
// empty slice.
package pulse

import (
	"context"
)

const DefaultLimit = 5

type insightStore interface {
	RecentInsights(ctx context.Context, limit int) ([]string, error)
}

type Provider struct {
	store insightStore
}

func NewProvider(s insightStore) *Provider {
	return &Provider{store: s}
}

// Recent returns up to limit insight strings, newest first. Fetch failures
// degrade to an empty slice: market pulse is flavor, never load-bearing.
func (p *Provider) Recent(ctx context.Context, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}
	insights, err := p.store.RecentInsights(ctx, limit)
	if err != nil {
		return nil
	}
	return insights
}
