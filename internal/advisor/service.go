package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/parcelpoint/concierge/internal/events"
	"github.com/parcelpoint/concierge/internal/profile"
	"github.com/parcelpoint/concierge/internal/store"
	"github.com/parcelpoint/concierge/internal/tools"
)

// ProfileLoader resolves the requesting agent's profile (soft fallback,
// never errors).
type ProfileLoader interface {
	Load(ctx context.Context, userID string) profile.Profile
}

// PulseProvider supplies recent market-insight strings (degrades to empty).
type PulseProvider interface {
	Recent(ctx context.Context, limit int) []string
}

// MessageLog is the append-only thread log.
type MessageLog interface {
	RecentMessages(ctx context.Context, threadID string, limit int) ([]store.Message, error)
	AppendTurn(ctx context.Context, threadID, userText, assistantJSON string) (uuid.UUID, uuid.UUID, error)
}

// TurnPublisher emits telemetry after a successful turn.
type TurnPublisher interface {
	PublishTurnCompleted(evt events.TurnCompleted)
}

// Limits are the per-turn read windows, from config. History counts turns
// (a user message plus its assistant reply), so the row fetch is twice that.
type Limits struct {
	History   int
	Knowledge int
	Pulse     int
}

// Service assembles the turn context, runs the engine, and persists the
// result. It is the request-scoped entry point the HTTP layer calls.
type Service struct {
	profiles ProfileLoader
	kb       tools.SnippetSearcher
	pulse    PulseProvider
	messages MessageLog
	catalog  tools.Catalog
	engine   *Engine
	events   TurnPublisher // nil when NATS is not configured
	limits   Limits
	logger   *slog.Logger
}

func NewService(profiles ProfileLoader, kb tools.SnippetSearcher, pulse PulseProvider, messages MessageLog, catalog tools.Catalog, engine *Engine, publisher TurnPublisher, limits Limits, logger *slog.Logger) *Service {
	return &Service{
		profiles: profiles,
		kb:       kb,
		pulse:    pulse,
		messages: messages,
		catalog:  catalog,
		engine:   engine,
		events:   publisher,
		limits:   limits,
		logger:   logger,
	}
}

// Run executes one full advisory turn for a thread. On any failure nothing is
// persisted; on success exactly two rows are appended in one transaction, the
// user message and then the assistant's raw JSON, sharing the thread id.
func (s *Service) Run(ctx context.Context, userID, threadID, text string) (*Response, error) {
	start := time.Now()

	prof := s.profiles.Load(ctx, userID)

	history, err := s.messages.RecentMessages(ctx, threadID, 2*s.limits.History)
	if err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	snippets, err := s.kb.Search(ctx, text, s.limits.Knowledge)
	if err != nil {
		return nil, fmt.Errorf("retrieve knowledge: %w", err)
	}

	insights := s.pulse.Recent(ctx, s.limits.Pulse)

	tc := TurnContext{
		Profile:  prof,
		History:  history,
		Snippets: snippets,
		Pulse:    insights,
	}

	dispatcher := tools.NewDispatcher(s.catalog, s.kb, prof, s.logger)

	outcome, err := s.engine.Respond(ctx, tc, dispatcher, tools.Definitions(), text)
	if err != nil {
		return nil, err
	}
	resp := outcome.Response

	raw, err := json.Marshal(resp)
	if err != nil {
		return nil, fmt.Errorf("marshal response: %w", err)
	}

	if _, _, err := s.messages.AppendTurn(ctx, threadID, text, string(raw)); err != nil {
		return nil, fmt.Errorf("log turn: %w", err)
	}

	if s.events != nil {
		s.events.PublishTurnCompleted(events.TurnCompleted{
			ThreadID:   threadID,
			UserID:     userID,
			Confidence: resp.Trust.Confidence,
			Handoff:    resp.Handoff != nil && resp.Handoff.Suggest,
			ToolCalls:  outcome.ToolCalls,
			DurationMS: time.Since(start).Milliseconds(),
		})
	}

	return resp, nil
}
