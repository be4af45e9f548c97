package machine

import (
	"errors"
	"fmt"
)

// State is any string-typed enum used as a machine state.
type State interface {
	~string
}

var ErrInvalidTransition = errors.New("invalid state transition")

// Transition declares the states reachable from a single origin state.
type Transition[S State] struct {
	from S
	to   []S
}

// From begins declaring a transition out of a state.
func From[S State](from S) Transition[S] {
	return Transition[S]{from: from}
}

// To completes a transition declaration with its allowed destinations.
func (t Transition[S]) To(to ...S) Transition[S] {
	t.to = to
	return t
}

// StateMachine validates state changes of a context against a declared set of
// allowed edges.
type StateMachine[S State] struct {
	current     S
	transitions []Transition[S]
}

func New[S State](current S, transitions ...Transition[S]) *StateMachine[S] {
	return &StateMachine[S]{current: current, transitions: transitions}
}

// ToState reports whether the machine may move from its current state to s.
// Staying in the current state is not a transition.
func (m *StateMachine[S]) ToState(s S) error {
	if s == m.current {
		return fmt.Errorf("%w: already %q", ErrInvalidTransition, string(s))
	}

	for _, t := range m.transitions {
		if t.from != m.current {
			continue
		}

		for _, dest := range t.to {
			if dest == s {
				return nil
			}
		}
	}

	return fmt.Errorf("%w: %q -> %q", ErrInvalidTransition, string(m.current), string(s))
}
