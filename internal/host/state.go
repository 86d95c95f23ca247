// Package host ties the terminity runtime together: the game lifecycle
// manager, the input dispatcher, and the single cooperative event loop
// that owns the screen buffers and the layout tree.
package host

import "fmt"

// State is a game's position in the lifecycle graph:
//
//	Registered -> Initializing -> Running <-> Paused -> Terminated
//
// with a direct edge to Terminated from every non-terminal state on
// fatal failure. StateError marks a game that died from a failure; it
// behaves like Terminated and both are absorbing.
type State int

// Lifecycle states.
const (
	StateRegistered State = iota
	StateInitializing
	StateRunning
	StatePaused
	StateTerminated
	StateError
)

func (s State) String() string {
	switch s {
	case StateRegistered:
		return "registered"
	case StateInitializing:
		return "initializing"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateTerminated:
		return "terminated"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal reports whether the state is absorbing.
func (s State) Terminal() bool {
	return s == StateTerminated || s == StateError
}

var transitions = map[State][]State{
	StateRegistered:   {StateInitializing, StateTerminated, StateError},
	StateInitializing: {StateRunning, StateTerminated, StateError},
	StateRunning:      {StatePaused, StateTerminated, StateError},
	StatePaused:       {StateRunning, StateTerminated, StateError},
	StateTerminated:   {},
	StateError:        {},
}

// CanTransition reports whether the lifecycle graph allows s -> to.
func (s State) CanTransition(to State) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionError reports an attempt to move a game along an edge the
// lifecycle graph does not have, such as resuming a terminated game.
type TransitionError struct {
	From State
	To   State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("invalid lifecycle transition %s -> %s", e.From, e.To)
}
