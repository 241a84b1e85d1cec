package fsm

import "fmt"

// InvalidTransitionError is reported when ChangeState is asked for a target
// that is not in the current state's legal set. The machine stays put.
type InvalidTransitionError struct {
	Owner string
	From  State
	To    State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("fsm: %s: invalid transition from %s to %s", e.Owner, e.From, e.To)
}

// ReentrantTransitionError is reported when an Exit or Entry hook tries to
// change state on the machine it is currently running on. Further transitions
// must wait for a later Update tick.
type ReentrantTransitionError struct {
	Owner string
	From  State
	To    State
}

func (e *ReentrantTransitionError) Error() string {
	return fmt.Sprintf("fsm: %s: transition to %s requested from inside a lifecycle hook of %s", e.Owner, e.To, e.From)
}
