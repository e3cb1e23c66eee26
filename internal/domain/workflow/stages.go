// Package workflow provides the stage-gated release workflow model.
// A workflow is a strictly linear finite-state machine: stages advance
// forward exactly one step at a time, with no branching, skipping, or
// self-transitions.
package workflow

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for transition validation. Use errors.Is to classify
// a failed transition.
var (
	// ErrUnknownStage indicates an endpoint that is not in the stage list.
	ErrUnknownStage = errors.New("unknown stage")

	// ErrBackward indicates a transition to the same or an earlier stage.
	ErrBackward = errors.New("backward transition")

	// ErrSkippedStage indicates a transition that jumps over a stage.
	ErrSkippedStage = errors.New("skipped stage")
)

// DefaultStages is the stage order used when none is configured.
var DefaultStages = []string{"development", "testing", "staging", "production"}

// TransitionError describes why a stage transition was rejected.
type TransitionError struct {
	From string
	To   string
	Err  error
}

// Error implements the error interface.
func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid transition %q -> %q: %v", e.From, e.To, e.Err)
}

// Unwrap returns the sentinel classification error.
func (e *TransitionError) Unwrap() error {
	return e.Err
}

// Stages is an ordered, unique sequence of stage names.
type Stages []string

// IndexOf returns the position of a stage, or -1 if absent.
// Stage names are compared case-insensitively.
func (s Stages) IndexOf(name string) int {
	for i, stage := range s {
		if strings.EqualFold(stage, name) {
			return i
		}
	}
	return -1
}

// Contains returns true if the stage is part of the workflow.
func (s Stages) Contains(name string) bool {
	return s.IndexOf(name) >= 0
}

// Next returns the stage following the given one, if any.
func (s Stages) Next(name string) (string, bool) {
	i := s.IndexOf(name)
	if i < 0 || i+1 >= len(s) {
		return "", false
	}
	return s[i+1], true
}

// Validate checks that the stage list is non-empty and free of duplicates.
func (s Stages) Validate() error {
	if len(s) == 0 {
		return errors.New("workflow requires at least one stage")
	}
	seen := make(map[string]struct{}, len(s))
	for _, stage := range s {
		key := strings.ToLower(strings.TrimSpace(stage))
		if key == "" {
			return errors.New("workflow stage names must not be empty")
		}
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate workflow stage: %q", stage)
		}
		seen[key] = struct{}{}
	}
	return nil
}

// ValidateTransition checks that moving from one stage to another is a legal
// single forward step through the ordered stage list.
func (s Stages) ValidateTransition(from, to string) error {
	fromIdx := s.IndexOf(from)
	if fromIdx < 0 {
		return &TransitionError{From: from, To: to, Err: fmt.Errorf("%w: %q", ErrUnknownStage, from)}
	}

	toIdx := s.IndexOf(to)
	if toIdx < 0 {
		return &TransitionError{From: from, To: to, Err: fmt.Errorf("%w: %q", ErrUnknownStage, to)}
	}

	if toIdx <= fromIdx {
		return &TransitionError{From: from, To: to, Err: ErrBackward}
	}

	if toIdx > fromIdx+1 {
		return &TransitionError{From: from, To: to, Err: ErrSkippedStage}
	}

	return nil
}
