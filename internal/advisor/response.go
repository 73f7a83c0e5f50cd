package advisor

import (
	"encoding/json"
	"fmt"
)

// Response is the structured reply contract the concierge returns to the
// client. The model is asked to produce this shape; the trust block is always
// recomputed by the policy after parsing, overriding anything the model set.
type Response struct {
	Type         string     `json:"type"`
	Message      string     `json:"message"`
	QuickReplies []string   `json:"quick_replies,omitempty"`
	Actions      []Action   `json:"actions,omitempty"`
	Trust        *Trust     `json:"trust,omitempty"`
	Citations    []Citation `json:"citations,omitempty"`
	Handoff      *Handoff   `json:"handoff,omitempty"`
}

type Action struct {
	Label  string         `json:"label"`
	Action string         `json:"action"`
	Params map[string]any `json:"params,omitempty"`
}

type Trust struct {
	Confidence   int      `json:"confidence"`
	PeerPatterns []string `json:"peer_patterns"`
}

type Citation struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	ID     string `json:"id"`
}

type Handoff struct {
	Suggest bool   `json:"suggest"`
	Reason  string `json:"reason,omitempty"`
}

var validTypes = map[string]bool{
	"answer":  true,
	"ask":     true,
	"actions": true,
}

var validActions = map[string]bool{
	"view_services":  true,
	"start_workflow": true,
	"open_link":      true,
	"book_meeting":   true,
}

// ParseResponse decodes and validates the model's JSON reply. A schema
// mismatch is an upstream failure, not a crash: the caller converts it to the
// generic apology.
func ParseResponse(raw string) (*Response, error) {
	var resp Response
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("parse model reply: %w", err)
	}
	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid model reply: %w", err)
	}
	return &resp, nil
}

// Validate checks the reply against the response contract.
func (r *Response) Validate() error {
	if !validTypes[r.Type] {
		return fmt.Errorf("unknown response type %q", r.Type)
	}
	if r.Message == "" {
		return fmt.Errorf("empty message")
	}
	for i, a := range r.Actions {
		if !validActions[a.Action] {
			return fmt.Errorf("action %d: unknown action %q", i, a.Action)
		}
		if a.Label == "" {
			return fmt.Errorf("action %d: empty label", i)
		}
	}
	return nil
}
