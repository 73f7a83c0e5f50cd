package advisor

import "testing"

func TestTurnState_ValidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from turnState
		to   turnState
	}{
		{"answer without tools", stateAwaitingModel, stateDone},
		{"enter tool resolution", stateAwaitingModel, stateResolvingTools},
		{"finish after tools", stateResolvingTools, stateDone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.advance(tt.to)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.to {
				t.Errorf("expected state %s, got %s", tt.to, got)
			}
		})
	}
}

func TestTurnState_InvalidTransitions(t *testing.T) {
	tests := []struct {
		name string
		from turnState
		to   turnState
	}{
		{"no second tool round", stateResolvingTools, stateResolvingTools},
		{"done is terminal", stateDone, stateAwaitingModel},
		{"done cannot resolve tools", stateDone, stateResolvingTools},
		{"cannot rewind to awaiting", stateResolvingTools, stateAwaitingModel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.from.advance(tt.to); err == nil {
				t.Errorf("expected error for %s → %s", tt.from, tt.to)
			}
		})
	}
}
