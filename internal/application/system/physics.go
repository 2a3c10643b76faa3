package system

import (
	"math"

	"github.com/younwookim/platformcore/internal/domain/character"
	"github.com/younwookim/platformcore/internal/infrastructure/config"
)

// Mover is anything the physics pass integrates.
type Mover interface {
	Body() character.Body
	IsDead() bool
	// FixedUpdate runs the state's physics hook.
	FixedUpdate(dt float64)
}

// Contacts records which axes were blocked during a step.
type Contacts struct {
	Ground  bool
	Ceiling bool
	WallL   bool
	WallR   bool
}

// PhysicsSystem integrates gravity and moves bodies against the world
type PhysicsSystem struct {
	config *config.PhysicsConfig
}

// NewPhysicsSystem creates a new physics system
func NewPhysicsSystem(cfg *config.PhysicsConfig) *PhysicsSystem {
	return &PhysicsSystem{config: cfg}
}

// blockEpsilon is how much shorter than requested a move may be before the
// axis counts as blocked.
const blockEpsilon = 1e-6

// Step runs one fixed step for m: gravity, the state's physics hook, fall
// speed clamp, then the swept move. Dead movers only run their hook.
func (s *PhysicsSystem) Step(m Mover, dt float64) Contacts {
	if m.IsDead() {
		m.FixedUpdate(dt)
		return Contacts{}
	}

	body := m.Body()
	v := body.Velocity()
	v.Y += s.gravity(v.Y) * dt
	body.SetVelocity(v)

	m.FixedUpdate(dt)

	v = body.Velocity()
	if v.Y > s.config.Physics.MaxFallSpeed {
		v.Y = s.config.Physics.MaxFallSpeed
	}

	want := v.Scale(dt)
	moved := body.SweptMove(want)

	var c Contacts
	if math.Abs(moved.X) < math.Abs(want.X)-blockEpsilon {
		c.WallL = want.X < 0
		c.WallR = want.X > 0
		v.X = 0
	}
	if math.Abs(moved.Y) < math.Abs(want.Y)-blockEpsilon {
		c.Ground = want.Y > 0
		c.Ceiling = want.Y < 0
		v.Y = 0
	}
	body.SetVelocity(v)
	return c
}

// gravity returns the downward acceleration for vertical velocity vy
func (s *PhysicsSystem) gravity(vy float64) float64 {
	gravity := s.config.Physics.Gravity

	// Apply apex modifier (reduced gravity at jump peak)
	if apex := s.config.Jump.ApexModifier; apex.Enabled && math.Abs(vy) < apex.Threshold {
		gravity *= apex.GravityMultiplier
	}

	// Apply fall multiplier (faster falling)
	if vy > 0 {
		gravity *= s.config.Jump.FallMultiplier
	}
	return gravity
}

// Integrate runs one step for every mover.
func (s *PhysicsSystem) Integrate(movers []Mover, dt float64) {
	for _, m := range movers {
		s.Step(m, dt)
	}
}

