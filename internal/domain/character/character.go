// Package character implements the per-character state machine that drives
// locomotion and combat of players and enemies.
package character

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/event"
)

// ErrMissingCollaborator is returned by New when a dependency is nil.
var ErrMissingCollaborator = errors.New("missing collaborator")

// hitBufferSize caps the targets one attack query can report.
const hitBufferSize = 8

// sensorSkin is the thickness of the ground and wall sensor boxes.
const sensorSkin = 1.0

// Deps are the collaborators a character talks to.
type Deps struct {
	Input    Input
	Probe    Probe
	Body     Body
	Animator Animator
	Events   EventSink
}

// Senses is the collision snapshot taken at the start of each logic tick.
type Senses struct {
	Grounded  bool
	WallLeft  bool
	WallRight bool
	CanStand  bool
}

// Character is a player or enemy driven by a state machine.
type Character struct {
	id     uuid.UUID
	params Params
	logger *log.Logger

	input  Input
	probe  Probe
	body   Body
	anim   Animator
	events EventSink

	machine *Machine
	now     float64
	life    int
	facing  float64
	senses  Senses

	lastAnim      string
	jumpPressedAt float64
	atkPressedAt  float64
	jumpCut       bool
	wallDir       float64
	standingUp    bool

	rollReadyAt     float64
	slideReadyAt    float64
	invincibleUntil float64
	knockback       entity.Vec2

	hitBuf [hitBufferSize]Hittable
}

// Option configures a Character.
type Option func(*Character)

// WithLogger sets the logger for transition diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(c *Character) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithID sets the character identity. A random one is used otherwise.
func WithID(id uuid.UUID) Option {
	return func(c *Character) { c.id = id }
}

// WithFacing sets the initial facing, +1 right or -1 left.
func WithFacing(dir float64) Option {
	return func(c *Character) {
		if dir < 0 {
			c.facing = -1
		} else {
			c.facing = 1
		}
	}
}

// New validates params and dependencies, builds every state and activates
// the character through the idle funnel.
func New(p Params, d Deps, opts ...Option) (*Character, error) {
	switch {
	case d.Input == nil:
		return nil, fmt.Errorf("%w: input", ErrMissingCollaborator)
	case d.Probe == nil:
		return nil, fmt.Errorf("%w: probe", ErrMissingCollaborator)
	case d.Body == nil:
		return nil, fmt.Errorf("%w: body", ErrMissingCollaborator)
	case d.Animator == nil:
		return nil, fmt.Errorf("%w: animator", ErrMissingCollaborator)
	case d.Events == nil:
		return nil, fmt.Errorf("%w: events", ErrMissingCollaborator)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	c := &Character{
		id:            uuid.New(),
		params:        p,
		logger:        log.New(io.Discard),
		input:         d.Input,
		probe:         d.Probe,
		body:          d.Body,
		anim:          d.Animator,
		events:        d.Events,
		life:          p.MaxLife,
		facing:        1,
		jumpPressedAt: math.Inf(-1),
		atkPressedAt:  math.Inf(-1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.machine = newMachine(c, newStates(p), c.logger)

	c.body.SetCollider(p.StandCollider)
	c.sense()
	c.enterIdleState()
	return c, nil
}

// ID returns the character identity.
func (c *Character) ID() uuid.UUID { return c.id }

// Name returns the configured archetype name.
func (c *Character) Name() string { return c.params.Name }

// Params returns the static configuration.
func (c *Character) Params() Params { return c.params }

// Body returns the driven rigid body.
func (c *Character) Body() Body { return c.body }

// Position returns the body position.
func (c *Character) Position() entity.Vec2 { return c.body.Position() }

// Life returns remaining life.
func (c *Character) Life() int { return c.life }

// Facing returns +1 for right, -1 for left.
func (c *Character) Facing() float64 { return c.facing }

// State returns the current state id.
func (c *Character) State() StateID { return c.machine.current.ID }

// Machine exposes the state machine.
func (c *Character) Machine() *Machine { return c.machine }

// Senses returns the last collision snapshot.
func (c *Character) Senses() Senses { return c.senses }

// Now returns the character clock in seconds.
func (c *Character) Now() float64 { return c.now }

// IsCrouching reports whether the current state is a crouch state.
func (c *Character) IsCrouching() bool { return c.machine.crouching }

// IsInvincible reports whether hits are currently ignored.
func (c *Character) IsInvincible() bool {
	return c.machine.invincible || c.now < c.invincibleUntil
}

// IsDead reports whether the character is in Death.
func (c *Character) IsDead() bool { return c.machine.current.ID == StateDeath }

// Hitbox returns the current collider in world space.
func (c *Character) Hitbox() entity.Rect {
	return c.machine.current.Collider.Translate(c.body.Position())
}

// Update runs one logic tick: sense, latch buffered presses, then let the
// current state evaluate its guards.
func (c *Character) Update(dt float64) {
	c.now += dt
	c.sense()
	if c.input.Pressed(ActionJump) {
		c.jumpPressedAt = c.now
	}
	if c.input.Pressed(ActionAttack) {
		c.atkPressedAt = c.now
	}
	c.machine.Update()
}

// FixedUpdate runs the physics phase: only velocity writes happen here.
func (c *Character) FixedUpdate(dt float64) {
	c.machine.FixedUpdate(dt)
}

// TakeHit applies damage unless the character is invincible or dead.
func (c *Character) TakeHit(h Hit) bool {
	if c.IsDead() || c.IsInvincible() {
		return false
	}

	c.life -= h.Damage
	c.events.Emit(event.Event{
		Kind:   event.KindTookHit,
		Source: h.Attacker,
		Target: c.id,
		Damage: h.Damage,
		Life:   c.life,
		Time:   c.now,
	})

	if c.life <= 0 {
		c.machine.SwitchState(StateDeath)
		return true
	}

	c.invincibleUntil = c.now + c.params.Invincibility
	c.knockback = h.Knockback
	c.machine.SwitchState(StateHurt)
	return true
}

// FakeWalk walks in dir for duration seconds regardless of input.
func (c *Character) FakeWalk(dir, duration float64) bool {
	if c.IsDead() || duration <= 0 || dir == 0 {
		return false
	}
	s := c.machine.states[StateFakeWalk]
	s.Duration = duration
	s.dir = math.Copysign(1, dir)
	return c.machine.SwitchState(StateFakeWalk)
}

// sense refreshes ground, wall and headroom checks around the current collider.
func (c *Character) sense() {
	pos := c.body.Position()
	box := c.machine.current.Collider.Translate(pos)
	const inset = 0.5

	c.senses.Grounded = c.probe.OverlapBox(entity.Rect{
		X: box.X + inset, Y: box.Bottom(), W: box.W - 2*inset, H: sensorSkin,
	}, LayerSolid)
	c.senses.WallLeft = c.probe.OverlapBox(entity.Rect{
		X: box.X - sensorSkin, Y: box.Y + inset, W: sensorSkin, H: box.H - 2*inset,
	}, LayerSolid)
	c.senses.WallRight = c.probe.OverlapBox(entity.Rect{
		X: box.Right(), Y: box.Y + inset, W: sensorSkin, H: box.H - 2*inset,
	}, LayerSolid)
	c.senses.CanStand = !c.probe.OverlapBox(c.params.StandCollider.Translate(pos), LayerSolid)
}

// play requests an animation, skipping a repeat of the last request unless
// restart is set.
func (c *Character) play(key string, restart bool) {
	if key == c.lastAnim && !restart {
		return
	}
	c.lastAnim = key
	c.anim.Play(key, restart)
}

func (c *Character) faceAxis() {
	if x := c.input.Axis(); x != 0 {
		c.facing = math.Copysign(1, x)
	}
}

func (c *Character) setVelocityX(vx float64) {
	v := c.body.Velocity()
	v.X = vx
	c.body.SetVelocity(v)
}
