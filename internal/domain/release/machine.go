package release

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// LifecycleContext is the context passed to the state machine.
type LifecycleContext struct {
	Version string
	Tag     string
}

// Event names for the lifecycle state machine.
const (
	EventPrepare  statekit.EventType = "PREPARE"
	EventFinalize statekit.EventType = "FINALIZE"
	EventFail     statekit.EventType = "FAIL"
	EventRetry    statekit.EventType = "RETRY"
)

// State IDs for the lifecycle state machine.
var (
	StateIDDraft     = statekit.StateID(StateDraft)
	StateIDPrepared  = statekit.StateID(StatePrepared)
	StateIDFinalized = statekit.StateID(StateFinalized)
	StateIDFailed    = statekit.StateID(StateFailed)
)

// Lifecycle wraps the statekit machine for a single release lifecycle:
// draft -> prepared -> finalized, with a failed detour that allows a retry.
// Verification gating happens in the application layer before FINALIZE is
// sent; the machine only enforces ordering.
type Lifecycle struct {
	interpreter *statekit.Interpreter[LifecycleContext]
}

// NewLifecycle creates the release lifecycle state machine.
func NewLifecycle() (*Lifecycle, error) {
	machine, err := statekit.NewMachine[LifecycleContext]("release-lifecycle").
		WithInitial(StateIDDraft).
		State(StateIDDraft).
		On(EventPrepare).Target(StateIDPrepared).
		Done().
		State(StateIDPrepared).
		On(EventFinalize).Target(StateIDFinalized).
		On(EventFail).Target(StateIDFailed).
		Done().
		State(StateIDFinalized).
		Final().
		Done().
		State(StateIDFailed).
		On(EventRetry).Target(StateIDPrepared).
		Done().
		Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build release lifecycle: %w", err)
	}

	return &Lifecycle{interpreter: statekit.NewInterpreter(machine)}, nil
}

// Start starts the state machine interpreter.
func (l *Lifecycle) Start() {
	l.interpreter.Start()
}

// StartAt starts the interpreter and replays events to reach the given state.
// Used when the lifecycle position is recovered from repository facts (the
// release branch already exists, so the release is prepared).
func (l *Lifecycle) StartAt(state State) error {
	l.interpreter.Start()
	switch state {
	case StateDraft:
		return nil
	case StatePrepared:
		return l.Send(EventPrepare)
	case StateFailed:
		if err := l.Send(EventPrepare); err != nil {
			return err
		}
		return l.Send(EventFail)
	default:
		return fmt.Errorf("cannot start lifecycle at state %q", state)
	}
}

// Send sends an event to the interpreter and verifies it caused a transition.
// The machine has no self-transitions, so an unchanged state means the event
// was not valid where it was sent.
func (l *Lifecycle) Send(event statekit.EventType) error {
	before := l.interpreter.State().Value
	l.interpreter.Send(statekit.Event{Type: event})
	if l.interpreter.State().Value == before {
		return fmt.Errorf("event %s is not valid in state %s", event, before)
	}
	return nil
}

// CurrentState returns the current lifecycle state.
func (l *Lifecycle) CurrentState() State {
	return State(l.interpreter.State().Value)
}

// IsDone returns true if the machine reached a final state.
func (l *Lifecycle) IsDone() bool {
	return l.interpreter.Done()
}
