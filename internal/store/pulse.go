package store

import (
	"context"
	"fmt"
)

// RecentInsights returns the most recently generated market-pulse insight
// strings, newest first.
func (s *Store) RecentInsights(ctx context.Context, limit int) ([]string, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT content
		FROM market_insights
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query market insights: %w", err)
	}
	defer rows.Close()

	var insights []string
	for rows.Next() {
		var content string
		if err := rows.Scan(&content); err != nil {
			return nil, fmt.Errorf("scan insight: %w", err)
		}
		insights = append(insights, content)
	}
	return insights, rows.Err()
}
