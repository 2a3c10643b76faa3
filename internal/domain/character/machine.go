package character

import (
	"github.com/charmbracelet/log"

	"github.com/younwookim/platformcore/internal/domain/event"
)

// behavior is the dispatch entry for one state. Any hook may be nil.
type behavior struct {
	enter   func(c *Character, s, prev *State)
	update  func(c *Character, s *State)
	physics func(c *Character, s *State, dt float64)
	exit    func(c *Character, s, next *State)
}

type deferredKind uint8

const (
	deferNone deferredKind = iota
	// deferAnimation swaps to anim once the transition clip has played.
	deferAnimation
	// deferStandUp leaves the crouch family through the idle funnel.
	deferStandUp
)

// deferred is a continuation resumed by the machine once at has passed.
type deferred struct {
	kind deferredKind
	at   float64
	anim string
}

// Machine owns a character's states and mediates every transition.
type Machine struct {
	c       *Character
	states  [stateCount]*State
	current *State
	logger  *log.Logger

	crouching  bool
	invincible bool

	pending  deferred
	switches uint64
}

func newMachine(c *Character, states [stateCount]*State, logger *log.Logger) *Machine {
	return &Machine{c: c, states: states, current: states[StateNone], logger: logger}
}

// Current returns the active state.
func (m *Machine) Current() *State { return m.current }

// State returns the state instance for id.
func (m *Machine) State(id StateID) *State { return m.states[id] }

// IsCrouching reports the crouch tag of the current state.
func (m *Machine) IsCrouching() bool { return m.crouching }

// IsInvincible reports the invincible tag of the current state.
func (m *Machine) IsInvincible() bool { return m.invincible }

// SwitchState exits the current state and enters id. Any pending deferred
// action is dropped. Death is never left.
func (m *Machine) SwitchState(id StateID) bool {
	prev := m.current
	if prev.ID == StateDeath {
		m.logger.Debug("switch rejected", "state", prev.ID, "to", id, "id", m.c.id)
		return false
	}
	next := m.states[id]

	m.pending = deferred{}
	if fn := behaviors[prev.ID].exit; fn != nil {
		fn(m.c, prev, next)
	}

	m.current = next
	m.crouching = next.Is(CapCrouch)
	m.invincible = next.Is(CapInvincible)
	next.enteredAt = m.c.now
	m.switches++

	m.c.body.SetCollider(next.Collider)
	m.logger.Debug("state", "from", prev.ID, "to", next.ID, "id", m.c.id)
	m.c.events.Emit(event.Event{
		Kind:   event.KindStateChanged,
		Source: m.c.id,
		From:   prev.ID.String(),
		To:     next.ID.String(),
		Time:   m.c.now,
	})

	if fn := behaviors[id].enter; fn != nil {
		fn(m.c, next, prev)
	}
	return true
}

// schedule parks a continuation delay seconds from now, replacing any
// pending one.
func (m *Machine) schedule(kind deferredKind, delay float64, anim string) {
	m.pending = deferred{kind: kind, at: m.c.now + delay, anim: anim}
}

// Update resumes a due continuation, then runs the current state's update
// unless the continuation switched state.
func (m *Machine) Update() {
	if m.pending.kind != deferNone && m.c.now >= m.pending.at {
		d := m.pending
		m.pending = deferred{}
		before := m.switches
		m.resume(d)
		if m.switches != before {
			return
		}
	}
	if fn := behaviors[m.current.ID].update; fn != nil {
		fn(m.c, m.current)
	}
}

// FixedUpdate runs the current state's physics hook.
func (m *Machine) FixedUpdate(dt float64) {
	if fn := behaviors[m.current.ID].physics; fn != nil {
		fn(m.c, m.current, dt)
	}
}

func (m *Machine) resume(d deferred) {
	switch d.kind {
	case deferAnimation:
		m.c.play(d.anim, false)
	case deferStandUp:
		m.c.standingUp = false
		m.c.enterIdleState()
	}
}

// Pending reports whether a deferred continuation is waiting.
func (m *Machine) Pending() bool { return m.pending.kind != deferNone }
