package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/parcelpoint/concierge/internal/advisor"
)

// ChatRequest is the inbound turn payload. thread_id and text are required;
// user_id may be null for anonymous callers.
type ChatRequest struct {
	UserID   string `json:"user_id"`
	ThreadID string `json:"thread_id"`
	Text     string `json:"text"`
}

const (
	msgMissingFields  = "Missing required fields"
	msgTechnicalIssue = "I'm having trouble processing your request right now. Let me connect you with a human agent concierge."
)

func (s *Server) chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, invalidRequestResponse())
		return
	}
	if req.ThreadID == "" || req.Text == "" {
		writeJSON(w, http.StatusBadRequest, invalidRequestResponse())
		return
	}

	resp, err := s.turns.Run(r.Context(), req.UserID, req.ThreadID, req.Text)
	if err != nil {
		// Never leak upstream detail to the client.
		slog.Error("turn failed", "thread_id", req.ThreadID, "error", err)
		writeJSON(w, http.StatusInternalServerError, technicalIssueResponse())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func invalidRequestResponse() *advisor.Response {
	return &advisor.Response{
		Type:    "answer",
		Message: msgMissingFields,
		Handoff: &advisor.Handoff{Suggest: true, Reason: "Invalid request"},
	}
}

func technicalIssueResponse() *advisor.Response {
	return &advisor.Response{
		Type:    "answer",
		Message: msgTechnicalIssue,
		Handoff: &advisor.Handoff{Suggest: true, Reason: "Technical issue"},
		Actions: []advisor.Action{advisor.BookConciergeAction("technical_issue")},
	}
}
