package release

import "fmt"

// State represents the lifecycle state of a single release.
type State string

const (
	// StateDraft is the initial state before any release action.
	StateDraft State = "draft"

	// StatePrepared means the release branch exists and the tag name is
	// computed, but the tag has not been created.
	StatePrepared State = "prepared"

	// StateFinalized is the terminal success state: tag created and pushed,
	// snapshot written.
	StateFinalized State = "finalized"

	// StateFailed indicates the release failed during finalization.
	StateFailed State = "failed"
)

// String returns the string representation of the state.
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a recognized lifecycle state.
func (s State) IsValid() bool {
	switch s {
	case StateDraft, StatePrepared, StateFinalized, StateFailed:
		return true
	default:
		return false
	}
}

// IsFinal returns true for terminal states.
func (s State) IsFinal() bool {
	return s == StateFinalized
}

// CanTransitionTo returns true if transitioning to the target state is valid.
func (s State) CanTransitionTo(target State) bool {
	for _, valid := range validTransitions()[s] {
		if valid == target {
			return true
		}
	}
	return false
}

// validTransitions defines the lifecycle transitions. There is no automatic
// rollback of a partially finalized release: failure is surfaced, and the
// operator retries by re-running the command.
func validTransitions() map[State][]State {
	return map[State][]State{
		StateDraft:     {StatePrepared},
		StatePrepared:  {StateFinalized, StateFailed},
		StateFinalized: {},
		StateFailed:    {StateFinalized},
	}
}

// ParseState parses a string into a State.
func ParseState(s string) (State, error) {
	state := State(s)
	if !state.IsValid() {
		return "", fmt.Errorf("invalid release state: %q", s)
	}
	return state, nil
}
