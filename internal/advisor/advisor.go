// Package advisor runs a full concierge turn: prompt assembly, the two-pass
// model/tool protocol, response validation, and the trust and handoff policy.
package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/parcelpoint/concierge/internal/knowledge"
	"github.com/parcelpoint/concierge/internal/openai"
	"github.com/parcelpoint/concierge/internal/profile"
	"github.com/parcelpoint/concierge/internal/store"
	"github.com/parcelpoint/concierge/internal/trust"
)

// Completer is the chat-completions surface the engine depends on.
type Completer interface {
	Complete(ctx context.Context, messages []openai.Message, tools []openai.Tool) (*openai.Completion, error)
}

// ToolRunner executes one model-issued tool call and returns its JSON payload.
type ToolRunner interface {
	Execute(ctx context.Context, call openai.ToolCall) (string, error)
}

// TurnContext carries everything a turn reads, fetched up front so the engine
// itself performs no lookups beyond the model and tool calls.
type TurnContext struct {
	Profile  profile.Profile
	History  []store.Message
	Snippets []knowledge.Snippet
	Pulse    []string
}

// Outcome is a completed turn: the policy-scored response plus what the
// telemetry stream wants to know.
type Outcome struct {
	Response  *Response
	ToolCalls int
}

type Engine struct {
	llm    Completer
	logger *slog.Logger
}

func NewEngine(llm Completer, logger *slog.Logger) *Engine {
	return &Engine{llm: llm, logger: logger}
}

// Respond runs the turn state machine. Tool calls execute sequentially in the
// order the model returned them; there is no retry of a failed call and no
// second tool round. The trust block is always recomputed here; whatever the
// model produced for it is discarded.
func (e *Engine) Respond(ctx context.Context, tc TurnContext, runner ToolRunner, toolDefs []openai.Tool, userText string) (*Outcome, error) {
	system := BuildSystemPrompt(tc.Profile, tc.Pulse, tc.Snippets)
	messages := BuildMessages(system, tc.History, userText)

	state := stateAwaitingModel
	toolCalls := 0

	comp, err := e.llm.Complete(ctx, messages, toolDefs)
	if err != nil {
		return nil, fmt.Errorf("first model call: %w", err)
	}

	if len(comp.ToolCalls) > 0 {
		if state, err = state.advance(stateResolvingTools); err != nil {
			return nil, err
		}
		e.logger.Info("resolving tool calls", "count", len(comp.ToolCalls))

		messages = append(messages, openai.Message{
			Role:      "assistant",
			Content:   comp.Content,
			ToolCalls: comp.ToolCalls,
		})
		for _, call := range comp.ToolCalls {
			payload, err := runner.Execute(ctx, call)
			if err != nil {
				return nil, fmt.Errorf("tool %s: %w", call.Function.Name, err)
			}
			messages = append(messages, openai.Message{
				Role:       "tool",
				Content:    payload,
				ToolCallID: call.ID,
			})
			toolCalls++
		}

		// Second pass with no tools advertised: the protocol does not
		// support chained tool use.
		comp, err = e.llm.Complete(ctx, messages, nil)
		if err != nil {
			return nil, fmt.Errorf("second model call: %w", err)
		}
		if len(comp.ToolCalls) > 0 {
			return nil, fmt.Errorf("model requested tools after resolution round")
		}
	}

	if state, err = state.advance(stateDone); err != nil {
		return nil, err
	}

	resp, err := ParseResponse(comp.Content)
	if err != nil {
		return nil, err
	}

	e.applyTrustPolicy(resp, tc.Snippets)

	e.logger.Info("turn complete",
		"state", state.String(),
		"type", resp.Type,
		"confidence", resp.Trust.Confidence,
		"handoff", resp.Handoff != nil && resp.Handoff.Suggest,
		"tool_calls", toolCalls,
	)

	return &Outcome{Response: resp, ToolCalls: toolCalls}, nil
}

const lowConfidenceReason = "Low confidence: a human Agent Concierge can confirm the details."

// applyTrustPolicy recomputes the trust block and applies the handoff
// override. Inventory and clarity are measured on the response as the model
// produced it, before any forced action is appended; clarity counts
// characters, not bytes. Below the threshold the override always wins; above
// it the model's own handoff judgment stands.
func (e *Engine) applyTrustPolicy(resp *Response, snippets []knowledge.Snippet) {
	confidence := trust.Confidence(len(snippets), len(resp.Actions), utf8.RuneCountInString(resp.Message))

	patterns := make([]string, 0, len(snippets))
	for _, s := range snippets {
		patterns = append(patterns, s.Title)
	}

	resp.Trust = &Trust{
		Confidence:   confidence,
		PeerPatterns: patterns,
	}

	if trust.SuggestHandoff(confidence) {
		resp.Handoff = &Handoff{
			Suggest: true,
			Reason:  lowConfidenceReason,
		}
		resp.Actions = append(resp.Actions, BookConciergeAction("low_confidence"))
	}
}

// BookConciergeAction is the escalation action appended on forced handoffs.
func BookConciergeAction(topic string) Action {
	return Action{
		Label:  "Book with an Agent Concierge",
		Action: "book_meeting",
		Params: map[string]any{"source": "concierge", "topic": topic},
	}
}
