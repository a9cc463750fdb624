package views

import "fmt"

// State is the phase of one asynchronous console action.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Action is the state machine every view owns per asynchronous action:
// idle moves to loading on Start, then loading ends in succeeded or
// failed. A terminal phase is only left through Start again, which is how
// the user's retry is expressed; nothing retries on its own.
type Action struct {
	state   State
	message string
}

// State returns the current phase
func (a *Action) State() State {
	return a.state
}

// Message returns the human-readable failure message stored by Fail
func (a *Action) Message() string {
	return a.message
}

// Start moves the action to loading. Starting is allowed from idle and
// from both terminal phases, but not while a load is already in flight.
func (a *Action) Start() error {
	if a.state == StateLoading {
		return fmt.Errorf("action is already loading")
	}
	a.state = StateLoading
	a.message = ""
	return nil
}

// Succeed completes the action. Only a loading action can succeed.
func (a *Action) Succeed() error {
	if a.state != StateLoading {
		return fmt.Errorf("cannot succeed from %s", a.state)
	}
	a.state = StateSucceeded
	return nil
}

// Fail completes the action with a human-readable message. Only a loading
// action can fail.
func (a *Action) Fail(message string) error {
	if a.state != StateLoading {
		return fmt.Errorf("cannot fail from %s", a.state)
	}
	a.state = StateFailed
	a.message = message
	return nil
}
