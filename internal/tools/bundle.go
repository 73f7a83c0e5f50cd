package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/parcelpoint/concierge/internal/store"
)

const bundleSize = 3

type bundleArgs struct {
	Goal string `json:"goal"`
}

type bundleItem struct {
	SKUID     string `json:"sku_id"`
	Title     string `json:"title"`
	WhyItFits string `json:"why_it_fits"`
}

type bundleResult struct {
	Items              []bundleItem `json:"items"`
	Rationale          string       `json:"rationale"`
	EstimatedCostRange string       `json:"estimated_cost_range"`
}

// recommendBundle reuses vendor_search on the goal text and keeps the first
// three hits. The per-item fit line and the cost range are templated copy,
// not figures computed from real cost data.
func (d *Dispatcher) recommendBundle(ctx context.Context, rawArgs string) (string, error) {
	var args bundleArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return "", fmt.Errorf("parse recommend_bundle args: %w", err)
	}

	services, err := d.catalog.SearchServices(ctx, store.ServiceFilter{Query: args.Goal}, maxVendorResults)
	if err != nil {
		return "", fmt.Errorf("recommend_bundle: %w", err)
	}
	if len(services) > bundleSize {
		services = services[:bundleSize]
	}

	items := make([]bundleItem, 0, len(services))
	for _, svc := range services {
		items = append(items, bundleItem{
			SKUID: svc.ID.String(),
			Title: svc.Title,
			WhyItFits: fmt.Sprintf("%s supports %q and suits a %s agent working %s in %s.",
				svc.Title, args.Goal, d.profile.ExperienceLevel, d.profile.Niche, d.profile.Territory),
		})
	}

	result := bundleResult{
		Items: items,
		Rationale: fmt.Sprintf("Bundled the top marketplace matches for %q so you can cover the goal with one vendor pass.",
			args.Goal),
		EstimatedCostRange: "Typically $500–$2,500 total depending on scope and vendor tier.",
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("marshal recommend_bundle result: %w", err)
	}
	return string(payload), nil
}
