package store

import (
	"context"
)

// Profile is a read-only snapshot of an agent's stored attributes.
type Profile struct {
	UserID          string
	Territory       string
	Niche           string
	ExperienceLevel string
}

// GetProfile fetches the stored profile for a user. A miss surfaces as
// pgx.ErrNoRows; the caller decides what a missing profile means.
func (s *Store) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT user_id, territory, niche, experience_level
		FROM agent_profiles
		WHERE user_id = $1`,
		userID,
	)

	var p Profile
	if err := row.Scan(&p.UserID, &p.Territory, &p.Niche, &p.ExperienceLevel); err != nil {
		return nil, err
	}
	return &p, nil
}
