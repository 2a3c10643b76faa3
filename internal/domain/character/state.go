package character

import "github.com/younwookim/platformcore/internal/domain/entity"

// StateID identifies a concrete state.
type StateID uint8

const (
	StateNone StateID = iota
	StateIdle
	StateRun
	StateJump
	StateFall
	StateCrouchIdle
	StateCrouchWalk
	StateRoll
	StateSlide
	StateWallSlide
	StateWallJump
	StateAttackOne
	StateAttackTwo
	StateCrouchAttack
	StateHurt
	StateDeath
	StateFakeWalk
	stateCount
)

var stateNames = [stateCount]string{
	StateNone:         "None",
	StateIdle:         "Idle",
	StateRun:          "Run",
	StateJump:         "Jump",
	StateFall:         "Fall",
	StateCrouchIdle:   "CrouchIdle",
	StateCrouchWalk:   "CrouchWalk",
	StateRoll:         "Roll",
	StateSlide:        "Slide",
	StateWallSlide:    "WallSlide",
	StateWallJump:     "WallJump",
	StateAttackOne:    "AttackOne",
	StateAttackTwo:    "AttackTwo",
	StateCrouchAttack: "CrouchAttack",
	StateHurt:         "Hurt",
	StateDeath:        "Death",
	StateFakeWalk:     "FakeWalk",
}

func (id StateID) String() string {
	if id >= stateCount {
		return "Unknown"
	}
	return stateNames[id]
}

// Capability tags a state for guards that care about a family of states.
type Capability uint8

const (
	CapCrouch Capability = 1 << iota
	CapInvincible
	CapAttack
)

// State is one concrete state of a character. All states are built once per
// character; only the machine's current pointer changes.
type State struct {
	ID       StateID
	Caps     Capability
	Anim     string
	Collider entity.Rect

	// Timed states.
	Duration float64
	Speed    float64
	Curve    Curve

	// Attack states. Next is the combo follow-up, StateNone ends the chain.
	Attack *AttackParams
	Next   StateID

	enteredAt float64
	triggered bool
	dir       float64
}

// Is reports whether the state carries every capability in c.
func (s *State) Is(c Capability) bool { return s.Caps&c == c }

// Elapsed returns the time spent in the state.
func (s *State) Elapsed(now float64) float64 { return now - s.enteredAt }

// Progress returns elapsed/duration clamped to [0,1].
func (s *State) Progress(now float64) float64 {
	if s.Duration <= 0 {
		return 1
	}
	return max(0, min(1, s.Elapsed(now)/s.Duration))
}

func newStates(p Params) [stateCount]*State {
	stand, crouch := p.StandCollider, p.CrouchCollider
	attack := func(id StateID, a AttackParams, caps Capability, collider entity.Rect, next StateID) *State {
		anim := a.Anim
		if anim == "" {
			anim = id.String()
		}
		return &State{ID: id, Caps: CapAttack | caps, Anim: anim, Collider: collider,
			Duration: a.Duration, Attack: &a, Next: next}
	}

	var s [stateCount]*State
	s[StateNone] = &State{ID: StateNone, Collider: stand}
	s[StateIdle] = &State{ID: StateIdle, Anim: "idle", Collider: stand}
	s[StateRun] = &State{ID: StateRun, Anim: "run", Collider: stand, Speed: p.RunSpeed}
	s[StateJump] = &State{ID: StateJump, Anim: "jump", Collider: stand, Speed: p.AirSpeed}
	s[StateFall] = &State{ID: StateFall, Anim: "fall", Collider: stand, Speed: p.AirSpeed}
	s[StateCrouchIdle] = &State{ID: StateCrouchIdle, Caps: CapCrouch, Anim: "crouch_idle", Collider: crouch}
	s[StateCrouchWalk] = &State{ID: StateCrouchWalk, Caps: CapCrouch, Anim: "crouch_walk", Collider: crouch,
		Speed: p.CrouchWalkSpeed}
	s[StateRoll] = &State{ID: StateRoll, Caps: CapInvincible, Anim: "roll", Collider: crouch,
		Duration: p.Roll.Duration, Speed: p.Roll.Speed, Curve: p.Roll.Curve}
	s[StateSlide] = &State{ID: StateSlide, Caps: CapCrouch, Anim: "slide", Collider: crouch,
		Duration: p.Slide.Duration, Speed: p.Slide.Speed, Curve: p.Slide.Curve}
	s[StateWallSlide] = &State{ID: StateWallSlide, Anim: "wall_slide", Collider: stand, Speed: p.WallSlideSpeed}
	s[StateWallJump] = &State{ID: StateWallJump, Anim: "wall_jump", Collider: stand,
		Duration: p.WallJump.Duration, Speed: p.WallJump.Speed, Curve: p.WallJump.Curve}
	s[StateAttackOne] = attack(StateAttackOne, p.AttackOne, 0, stand, StateAttackTwo)
	s[StateAttackTwo] = attack(StateAttackTwo, p.AttackTwo, 0, stand, StateAttackOne)
	s[StateCrouchAttack] = attack(StateCrouchAttack, p.CrouchAttack, CapCrouch, crouch, StateNone)
	s[StateHurt] = &State{ID: StateHurt, Caps: CapInvincible, Anim: "hurt", Collider: stand, Duration: p.HurtDuration}
	s[StateDeath] = &State{ID: StateDeath, Anim: "death", Collider: stand}
	s[StateFakeWalk] = &State{ID: StateFakeWalk, Anim: "run", Collider: stand, Speed: p.FakeWalkSpeed,
		Curve: p.FakeWalkCurve}
	return s
}
