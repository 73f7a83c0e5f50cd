// Package tools exposes the three read-only functions the model may invoke
// mid-turn: vendor_search, recommend_bundle, kb_search. Calls execute
// sequentially in the order the model returned them, at most one round per
// turn, and never mutate state.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/parcelpoint/concierge/internal/knowledge"
	"github.com/parcelpoint/concierge/internal/openai"
	"github.com/parcelpoint/concierge/internal/profile"
	"github.com/parcelpoint/concierge/internal/store"
)

const maxVendorResults = 10

// Catalog is the read surface of the service catalog.
type Catalog interface {
	SearchServices(ctx context.Context, f store.ServiceFilter, limit int) ([]store.Service, error)
}

// SnippetSearcher is the knowledge retriever surface kb_search delegates to.
type SnippetSearcher interface {
	Search(ctx context.Context, query string, k int) ([]knowledge.Snippet, error)
}

// Dispatcher is constructed per turn: recommend_bundle personalises its
// rationale with the requesting agent's profile.
type Dispatcher struct {
	catalog Catalog
	kb      SnippetSearcher
	profile profile.Profile
	logger  *slog.Logger
}

func NewDispatcher(catalog Catalog, kb SnippetSearcher, prof profile.Profile, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{catalog: catalog, kb: kb, profile: prof, logger: logger}
}

// Definitions returns the function specs advertised on the first model call.
func Definitions() []openai.Tool {
	return []openai.Tool{
		{
			Type: "function",
			Function: openai.FunctionDef{
				Name:        "vendor_search",
				Description: "Search active marketplace vendor services by free text, category, and budget range.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"query": {"type": "string", "description": "Free-text match on title and description"},
						"category": {"type": "string", "description": "Category substring, e.g. photography, staging, crm"},
						"budget_min": {"type": "number"},
						"budget_max": {"type": "number"}
					}
				}`),
			},
		},
		{
			Type: "function",
			Function: openai.FunctionDef{
				Name:        "recommend_bundle",
				Description: "Recommend a small bundle of services for a stated goal, with a rationale per item.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"goal": {"type": "string", "description": "What the agent wants to achieve"}
					},
					"required": ["goal"]
				}`),
			},
		},
		{
			Type: "function",
			Function: openai.FunctionDef{
				Name:        "kb_search",
				Description: "Search the knowledge base for playbooks and guidance snippets.",
				Parameters: json.RawMessage(`{
					"type": "object",
					"properties": {
						"query": {"type": "string"},
						"k": {"type": "integer", "description": "Max results, default 6"}
					},
					"required": ["query"]
				}`),
			},
		},
	}
}

// Execute runs one tool call and returns its JSON payload for the tool-role
// message. An unknown tool name is returned to the model as an error payload
// rather than failing the turn; store failures are turn failures.
func (d *Dispatcher) Execute(ctx context.Context, call openai.ToolCall) (string, error) {
	d.logger.Info("executing tool call",
		"tool", call.Function.Name,
		"call_id", call.ID,
	)

	switch call.Function.Name {
	case "vendor_search":
		return d.vendorSearch(ctx, call.Function.Arguments)
	case "recommend_bundle":
		return d.recommendBundle(ctx, call.Function.Arguments)
	case "kb_search":
		return d.kbSearch(ctx, call.Function.Arguments)
	default:
		d.logger.Warn("model requested unknown tool", "tool", call.Function.Name)
		payload, err := json.Marshal(map[string]string{
			"error": fmt.Sprintf("unknown tool %q", call.Function.Name),
		})
		if err != nil {
			return "", fmt.Errorf("marshal unknown-tool payload: %w", err)
		}
		return string(payload), nil
	}
}

type vendorSearchArgs struct {
	Query     string   `json:"query"`
	Category  string   `json:"category"`
	BudgetMin *float64 `json:"budget_min"`
	BudgetMax *float64 `json:"budget_max"`
}

type vendorResult struct {
	SKUID       string  `json:"sku_id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
}

func (d *Dispatcher) vendorSearch(ctx context.Context, rawArgs string) (string, error) {
	var args vendorSearchArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return "", fmt.Errorf("parse vendor_search args: %w", err)
	}

	services, err := d.catalog.SearchServices(ctx, store.ServiceFilter{
		Query:     args.Query,
		Category:  args.Category,
		BudgetMin: args.BudgetMin,
		BudgetMax: args.BudgetMax,
	}, maxVendorResults)
	if err != nil {
		return "", fmt.Errorf("vendor_search: %w", err)
	}

	results := make([]vendorResult, 0, len(services))
	for _, svc := range services {
		results = append(results, vendorResult{
			SKUID:       svc.ID.String(),
			Title:       svc.Title,
			Description: svc.Description,
			Category:    svc.Category,
			Price:       svc.Price,
		})
	}

	payload, err := json.Marshal(map[string]any{
		"services": results,
		"count":    len(results),
	})
	if err != nil {
		return "", fmt.Errorf("marshal vendor_search result: %w", err)
	}
	return string(payload), nil
}

type kbSearchArgs struct {
	Query string `json:"query"`
	K     int    `json:"k"`
}

func (d *Dispatcher) kbSearch(ctx context.Context, rawArgs string) (string, error) {
	var args kbSearchArgs
	if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
		return "", fmt.Errorf("parse kb_search args: %w", err)
	}

	snippets, err := d.kb.Search(ctx, args.Query, args.K)
	if err != nil {
		return "", fmt.Errorf("kb_search: %w", err)
	}

	payload, err := json.Marshal(map[string]any{
		"snippets": snippets,
		"count":    len(snippets),
	})
	if err != nil {
		return "", fmt.Errorf("marshal kb_search result: %w", err)
	}
	return string(payload), nil
}
