// Package fsm provides a small generic finite state machine with a single
// active state and enter/exit/update/render lifecycle hooks.
package fsm

import (
	"errors"
	"fmt"
)

// ErrUnknownState is matched by every UnknownStateError via errors.Is.
var ErrUnknownState = errors.New("fsm: unknown state")

// UnknownStateError reports a Change to an id that was never registered.
type UnknownStateError struct {
	ID any
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("fsm: unknown state %v", e.ID)
}

// Is lets errors.Is(err, ErrUnknownState) match.
func (e *UnknownStateError) Is(target error) bool {
	return target == ErrUnknownState
}

// State is one behaviour of an owner. R is the render target handed to
// Render (entities use a plain view struct, never a graphics context).
type State[R any] interface {
	Enter(params any)
	Exit()
	Update(dt float64)
	Render(r R)
}

// Machine holds registered states keyed by K. At most one state is active.
type Machine[K comparable, R any] struct {
	states  map[K]State[R]
	current K
	hasAny  bool
	entered bool // true once Change has run Enter on current

	transitions int
}

// New returns an empty machine.
func New[K comparable, R any]() *Machine[K, R] {
	return &Machine[K, R]{states: make(map[K]State[R])}
}

// Add registers s under id. The first registered state becomes current
// without its Enter being called; call Change to enter it properly.
func (m *Machine[K, R]) Add(id K, s State[R]) {
	m.states[id] = s
	if !m.hasAny {
		m.current = id
		m.hasAny = true
	}
}

// Has reports whether id is registered.
func (m *Machine[K, R]) Has(id K) bool {
	_, ok := m.states[id]
	return ok
}

// Change exits the active state and enters id. An unknown id fails before
// anything is exited, leaving the machine as it was.
func (m *Machine[K, R]) Change(id K, params any) error {
	next, ok := m.states[id]
	if !ok {
		return &UnknownStateError{ID: id}
	}
	if m.entered {
		m.states[m.current].Exit()
	}
	m.current = id
	m.entered = true
	m.transitions++
	next.Enter(params)
	return nil
}

// MustChange is Change for ids known at compile time. It panics on an
// unknown id since that can only be a programming error.
func (m *Machine[K, R]) MustChange(id K, params any) {
	if err := m.Change(id, params); err != nil {
		panic(err)
	}
}

// Update advances the active state. Before the first Change it does nothing.
//
// The state may call Change on this machine from inside Update. The machine
// looks nothing up afterwards, so the exited state receives no further calls
// this tick.
func (m *Machine[K, R]) Update(dt float64) {
	if !m.entered {
		return
	}
	m.states[m.current].Update(dt)
}

// Render hands r to the active state. Before the first Change it does nothing.
func (m *Machine[K, R]) Render(r R) {
	if !m.entered {
		return
	}
	m.states[m.current].Render(r)
}

// Current returns the current state id. ok is false for an empty machine.
func (m *Machine[K, R]) Current() (id K, ok bool) {
	return m.current, m.hasAny
}

// Is reports whether id is the entered, active state.
func (m *Machine[K, R]) Is(id K) bool {
	return m.entered && m.current == id
}

// Entered reports whether Change has run at least once.
func (m *Machine[K, R]) Entered() bool { return m.entered }

// Transitions counts successful Change calls.
func (m *Machine[K, R]) Transitions() int { return m.transitions }
