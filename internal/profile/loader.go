// Package profile resolves the requesting agent's stored attributes, falling
// back to a fixed default for anonymous callers and missing rows. A miss is
// never an error: the concierge degrades instead of failing.
package profile

import (
	"context"

	"github.com/parcelpoint/concierge/internal/store"
)

// Profile is the snapshot handed to the prompt builder.
type Profile struct {
	Territory       string
	Niche           string
	ExperienceLevel string
}

// Default is returned for anonymous callers and profile misses.
func Default() Profile {
	return Profile{
		Territory:       "Unknown",
		Niche:           "General",
		ExperienceLevel: "new_agent",
	}
}

type profileStore interface {
	GetProfile(ctx context.Context, userID string) (*store.Profile, error)
}

type Loader struct {
	store profileStore
}

func NewLoader(s profileStore) *Loader {
	return &Loader{store: s}
}

// Load returns the stored profile for userID, or the default when userID is
// empty or the row is missing.
func (l *Loader) Load(ctx context.Context, userID string) Profile {
	if userID == "" {
		return Default()
	}
	p, err := l.store.GetProfile(ctx, userID)
	if err != nil {
		return Default()
	}
	return Profile{
		Territory:       p.Territory,
		Niche:           p.Niche,
		ExperienceLevel: p.ExperienceLevel,
	}
}
