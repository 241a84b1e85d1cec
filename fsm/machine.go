// Package fsm implements the table-driven state machine that drives every
// entity in the game. Each entity owns one Machine; the machine owns a fixed
// table of per-state descriptors (event handler, Entry/Update/Exit hooks, and
// the set of states that are legal to enter from there). Player and NPC are
// different configurations of the same machine, not different machines.
package fsm

import (
	"fmt"
	"log"
	"strings"
)

// EventHandler reacts to a domain event while its state is current. The
// handler decides per (state, event) pair whether to request a transition or
// ignore the event.
type EventHandler[T any] func(owner T, ev Event)

// Hook is a lifecycle callback: Entry on entering a state, Update once per
// tick while in it, Exit on leaving it.
type Hook[T any] func(owner T)

// StateConfig describes one state of a machine. A zero-value StateConfig is
// an inert dead end: no handler, no hooks, no way out. Entering one is still
// legal if some other state lists it as a target.
type StateConfig[T any] struct {
	Name    string
	OnEvent EventHandler[T]
	Entry   Hook[T]
	Update  Hook[T]
	Exit    Hook[T]

	next []State
}

// Allow sets the legal transition targets for this state.
func (c *StateConfig[T]) Allow(targets ...State) {
	c.next = append(c.next[:0], targets...)
}

// Targets returns the legal transition targets.
func (c *StateConfig[T]) Targets() []State {
	return c.next
}

// Machine holds an entity's current and previous state plus its descriptor
// table, and enforces that only declared-legal transitions occur.
type Machine[T any] struct {
	owner    T
	name     string
	current  State
	previous State
	configs  [StateCount]StateConfig[T]

	// set while Exit/Entry hooks run; ChangeState is rejected during that
	// window to keep transitions from chaining inside a single call
	inHook bool
}

// logf is the diagnostic sink for rejected transitions. Swappable in tests.
var logf = log.Printf

// NewMachine creates a machine for owner starting in initial. The previous
// state starts as StateCount so the first Entry hook always sees a change.
func NewMachine[T any](owner T, name string, initial State) *Machine[T] {
	return &Machine[T]{
		owner:    owner,
		name:     name,
		current:  initial,
		previous: StateCount,
	}
}

// Configure installs the descriptor for s. Call once per wired state at
// entity construction.
func (m *Machine[T]) Configure(s State, cfg StateConfig[T]) *StateConfig[T] {
	if !s.Valid() {
		return nil
	}
	m.configs[s] = cfg
	return &m.configs[s]
}

// Config returns the descriptor for s, for inspection.
func (m *Machine[T]) Config(s State) *StateConfig[T] {
	if !s.Valid() {
		return nil
	}
	return &m.configs[s]
}

// Current returns the current state.
func (m *Machine[T]) Current() State { return m.current }

// Previous returns the state the machine was in before the last committed
// transition.
func (m *Machine[T]) Previous() State { return m.previous }

// SyncPrevious sets previous = current. Handlers call this on EventNone so
// Entry hooks can tell a fresh arrival from a quiet tick and skip redundant
// animation resets.
func (m *Machine[T]) SyncPrevious() { m.previous = m.current }

// HandleEvent dispatches ev to the current state's handler. A state with no
// handler ignores all events; that is not an error.
func (m *Machine[T]) HandleEvent(ev Event) {
	cfg := &m.configs[m.current]
	if cfg.OnEvent != nil {
		cfg.OnEvent(m.owner, ev)
	}
}

// UpdateState runs the current state's Update hook. This is the one place a
// state is expected to transition out of itself (timers, finished
// animations).
func (m *Machine[T]) UpdateState() {
	cfg := &m.configs[m.current]
	if cfg.Update != nil {
		cfg.Update(m.owner)
	}
}

// CanEnter reports whether target is a legal transition from the current
// state. Pure query.
func (m *Machine[T]) CanEnter(target State) bool {
	for _, s := range m.configs[m.current].next {
		if s == target {
			return true
		}
	}
	return false
}

// ChangeState transitions to target if the current state allows it. On
// success the current Exit hook runs, previous/current are updated, then the
// new Entry hook runs. Rejected transitions are reported and leave the
// machine untouched.
func (m *Machine[T]) ChangeState(target State) bool {
	if m.inHook {
		logf("%v", &ReentrantTransitionError{Owner: m.name, From: m.current, To: target})
		return false
	}
	if !target.Valid() || !m.CanEnter(target) {
		logf("%v", &InvalidTransitionError{Owner: m.name, From: m.current, To: target})
		return false
	}

	if exit := m.configs[m.current].Exit; exit != nil {
		m.inHook = true
		exit(m.owner)
		m.inHook = false
	}

	m.previous = m.current
	m.current = target

	if entry := m.configs[m.current].Entry; entry != nil {
		m.inHook = true
		entry(m.owner)
		m.inHook = false
	}
	return true
}

// DumpConfig returns a one-line-per-state summary of the wired descriptors,
// for the debug overlay.
func (m *Machine[T]) DumpConfig() string {
	var b strings.Builder
	for s := State(0); s < StateCount; s++ {
		cfg := &m.configs[s]
		if cfg.Name == "" {
			continue
		}
		targets := make([]string, 0, len(cfg.next))
		for _, t := range cfg.next {
			targets = append(targets, t.String())
		}
		fmt.Fprintf(&b, "%s -> [%s]\n", cfg.Name, strings.Join(targets, ", "))
	}
	return b.String()
}
