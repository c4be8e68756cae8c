// Package workflow drives the creation of a work branch as an explicit state
// machine with best-effort rollback.
package workflow

import (
	"github.com/google/uuid"

	"github.com/aezell/branchkit/internal/safety"
)

// State is a step of the branch creation workflow.
type State int

const (
	StateInit State = iota
	StateSafetyChecked
	StateTrunkSynced
	StateBranchCreated
	StateInitialPushDone
	StateComplete
	StateError
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateSafetyChecked:
		return "safety-checked"
	case StateTrunkSynced:
		return "trunk-synced"
	case StateBranchCreated:
		return "branch-created"
	case StateInitialPushDone:
		return "initial-push-done"
	case StateComplete:
		return "complete"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition is possible.
func (s State) Terminal() bool {
	return s == StateComplete || s == StateError
}

// RecoveryOutcome reports what rollback did after a failure.
type RecoveryOutcome struct {
	Attempted         bool
	Succeeded         bool
	ManualInstruction string
}

// Session is the state of one orchestrator run. Transitions take a Session
// and return the next one; nothing outlives the run.
type Session struct {
	ID            string
	InitialBranch string
	Target        BranchSpec
	State         State
	Completed     []State

	Assessment     safety.Assessment
	BranchCreated  bool
	PartialSuccess bool
	// PushInstruction tells the operator how to finish a failed push.
	PushInstruction string

	// FailedStep is the state the session was leaving when it failed.
	FailedStep State
	Err        error
	Recovery   RecoveryOutcome
}

// NewSession starts a session for target.
func NewSession(target BranchSpec) Session {
	return Session{
		ID:     uuid.NewString(),
		Target: target,
		State:  StateInit,
	}
}

// advance moves to next, recording the state being left.
func (s Session) advance(next State) Session {
	s.Completed = append(append([]State(nil), s.Completed...), s.State)
	s.State = next
	return s
}

// fail moves to StateError with err.
func (s Session) fail(err error) Session {
	s.FailedStep = s.State
	s.State = StateError
	s.Err = err
	return s
}
