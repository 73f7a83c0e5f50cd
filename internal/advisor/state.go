package advisor

import "fmt"

// turnState makes the two-phase tool protocol an explicit machine instead of
// nested conditionals: AwaitingModel → ResolvingTools → Done, or
// AwaitingModel → Done when the model answers without tools. There is no
// transition out of Done and no way back into ResolvingTools, which enforces
// the "tools resolve at most once per turn" invariant.
type turnState int

const (
	stateAwaitingModel turnState = iota
	stateResolvingTools
	stateDone
)

func (s turnState) String() string {
	switch s {
	case stateAwaitingModel:
		return "awaiting_model"
	case stateResolvingTools:
		return "resolving_tools"
	case stateDone:
		return "done"
	default:
		return fmt.Sprintf("turnState(%d)", int(s))
	}
}

// advance validates a transition and returns the new state.
func (s turnState) advance(to turnState) (turnState, error) {
	valid := false
	switch s {
	case stateAwaitingModel:
		valid = to == stateResolvingTools || to == stateDone
	case stateResolvingTools:
		valid = to == stateDone
	}
	if !valid {
		return s, fmt.Errorf("invalid turn transition %s → %s", s, to)
	}
	return to, nil
}
