package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Service is one active vendor service record from the marketplace catalog.
type Service struct {
	ID          uuid.UUID
	Title       string
	Description string
	Category    string
	Price       float64
}

// ServiceFilter narrows a catalog search. Zero values mean "no constraint".
type ServiceFilter struct {
	Query     string
	Category  string
	BudgetMin *float64
	BudgetMax *float64
}

// SearchServices returns up to limit active services matching the filter:
// category substring match, price bounds, free-text match on title or
// description.
func (s *Store) SearchServices(ctx context.Context, f ServiceFilter, limit int) ([]Service, error) {
	clauses := []string{"active = true"}
	args := []any{}
	n := 1

	if f.Category != "" {
		clauses = append(clauses, fmt.Sprintf("category ILIKE $%d", n))
		args = append(args, "%"+f.Category+"%")
		n++
	}
	if f.BudgetMin != nil {
		clauses = append(clauses, fmt.Sprintf("price >= $%d", n))
		args = append(args, *f.BudgetMin)
		n++
	}
	if f.BudgetMax != nil {
		clauses = append(clauses, fmt.Sprintf("price <= $%d", n))
		args = append(args, *f.BudgetMax)
		n++
	}
	if f.Query != "" {
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
		args = append(args, "%"+f.Query+"%")
		n++
	}

	args = append(args, limit)
	query := fmt.Sprintf(`
		SELECT id, title, description, category, price
		FROM services
		WHERE %s
		ORDER BY created_at DESC
		LIMIT $%d`,
		strings.Join(clauses, " AND "), n,
	)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query services: %w", err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var svc Service
		if err := rows.Scan(&svc.ID, &svc.Title, &svc.Description, &svc.Category, &svc.Price); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		services = append(services, svc)
	}
	return services, rows.Err()
}
