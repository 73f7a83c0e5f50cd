package advisor

import (
	"encoding/json"
	"testing"
)

func TestParseResponse_Valid(t *testing.T) {
	raw := `{
		"type": "answer",
		"message": "Three stagers cover your area.",
		"quick_replies": ["Show me photographers"],
		"actions": [{"label": "View staging services", "action": "view_services", "params": {"category": "staging"}}],
		"citations": [{"title": "Staging ROI", "source": "kb", "id": "abc"}]
	}`

	resp, err := ParseResponse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Type != "answer" {
		t.Errorf("expected type answer, got %q", resp.Type)
	}
	if len(resp.Actions) != 1 || resp.Actions[0].Action != "view_services" {
		t.Errorf("unexpected actions: %+v", resp.Actions)
	}
	if len(resp.Citations) != 1 || resp.Citations[0].Source != "kb" {
		t.Errorf("unexpected citations: %+v", resp.Citations)
	}
}

func TestParseResponse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `the model rambled instead`},
		{"unknown type", `{"type":"essay","message":"hi"}`},
		{"empty message", `{"type":"answer","message":""}`},
		{"unknown action", `{"type":"actions","message":"hi","actions":[{"label":"x","action":"drop_table"}]}`},
		{"empty action label", `{"type":"actions","message":"hi","actions":[{"label":"","action":"open_link"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseResponse(tt.raw); err == nil {
				t.Errorf("expected error for %s", tt.name)
			}
		})
	}
}

func TestParseResponse_AllTypesAndActions(t *testing.T) {
	for _, typ := range []string{"answer", "ask", "actions"} {
		raw := `{"type":"` + typ + `","message":"hi"}`
		if _, err := ParseResponse(raw); err != nil {
			t.Errorf("type %q should be valid: %v", typ, err)
		}
	}
	for _, action := range []string{"view_services", "start_workflow", "open_link", "book_meeting"} {
		raw := `{"type":"actions","message":"hi","actions":[{"label":"go","action":"` + action + `"}]}`
		if _, err := ParseResponse(raw); err != nil {
			t.Errorf("action %q should be valid: %v", action, err)
		}
	}
}

func TestResponse_RoundTripPreservesConfidence(t *testing.T) {
	resp := &Response{
		Type:    "answer",
		Message: "A reply long enough to score the clarity bonus comfortably.",
		Trust:   &Trust{Confidence: 85, PeerPatterns: []string{"Staging ROI"}},
		Handoff: &Handoff{Suggest: false},
	}

	raw, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	parsed, err := ParseResponse(string(raw))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if parsed.Trust == nil || parsed.Trust.Confidence != 85 {
		t.Errorf("confidence must survive the round trip, got %+v", parsed.Trust)
	}
}
