package character

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/event"
)

// tick is a power of two so timers land exactly on configured durations.
const tick = 0.0625

var floor = entity.Rect{X: -1000, Y: 0, W: 2000, H: 50}

type fakeTarget struct {
	box entity.Rect
	h   Hittable
}

type fakeWorld struct {
	solids  []entity.Rect
	targets []fakeTarget
}

func (w *fakeWorld) OverlapBox(box entity.Rect, layers Layer) bool {
	if layers&LayerSolid == 0 {
		return false
	}
	for _, s := range w.solids {
		if box.Overlaps(s) {
			return true
		}
	}
	return false
}

func (w *fakeWorld) OverlapHittables(box entity.Rect, layers Layer, out []Hittable) int {
	if layers&LayerHittable == 0 {
		return 0
	}
	n := 0
	for _, t := range w.targets {
		if n == len(out) {
			break
		}
		if box.Overlaps(t.box) {
			out[n] = t.h
			n++
		}
	}
	return n
}

func (w *fakeWorld) Raycast(_, _ entity.Vec2, _ Layer) bool { return false }

type fakeBody struct {
	world    *fakeWorld
	pos, vel entity.Vec2
	collider entity.Rect
}

func (b *fakeBody) Position() entity.Vec2 { return b.pos }
func (b *fakeBody) Velocity() entity.Vec2 { return b.vel }
func (b *fakeBody) SetVelocity(v entity.Vec2) { b.vel = v }
func (b *fakeBody) AddImpulse(j entity.Vec2) { b.vel = b.vel.Add(j) }
func (b *fakeBody) SetCollider(r entity.Rect) { b.collider = r }
func (b *fakeBody) blocked(p entity.Vec2) bool { return b.world.OverlapBox(b.collider.Translate(p), LayerSolid) }

// SweptMove moves each axis fully or not at all.
func (b *fakeBody) SweptMove(d entity.Vec2) entity.Vec2 {
	var moved entity.Vec2
	if next := (entity.Vec2{X: b.pos.X + d.X, Y: b.pos.Y}); !b.blocked(next) {
		b.pos = next
		moved.X = d.X
	}
	if next := (entity.Vec2{X: b.pos.X, Y: b.pos.Y + d.Y}); !b.blocked(next) {
		b.pos = next
		moved.Y = d.Y
	}
	return moved
}

type animCall struct {
	key     string
	restart bool
}

type recordingAnimator struct {
	calls []animCall
}

func (a *recordingAnimator) Play(key string, restart bool) {
	a.calls = append(a.calls, animCall{key, restart})
}

func (a *recordingAnimator) last() string {
	if len(a.calls) == 0 {
		return ""
	}
	return a.calls[len(a.calls)-1].key
}

type dummy struct {
	id     uuid.UUID
	accept bool
	hits   []Hit
}

func newDummy() *dummy { return &dummy{id: uuid.New(), accept: true} }

func (d *dummy) TakeHit(h Hit) bool {
	d.hits = append(d.hits, h)
	return d.accept
}

func (d *dummy) ID() uuid.UUID { return d.id }

func testParams() Params {
	return Params{
		Name:           "tester",
		MaxLife:        3,
		StandCollider:  entity.Rect{X: -6, Y: -28, W: 12, H: 28},
		CrouchCollider: entity.Rect{X: -6, Y: -14, W: 12, H: 14},

		RunSpeed:        100,
		AirSpeed:        80,
		CrouchWalkSpeed: 40,
		WallSlideSpeed:  30,
		FakeWalkSpeed:   50,

		JumpSpeed:              300,
		JumpBuffer:             0.125,
		VariableJumpMultiplier: 0.5,

		CrouchEnterDuration: 0.125,
		StandUpDuration:     0.125,

		Roll:     DashParams{Duration: 0.25, Cooldown: 0.5, Speed: 200, Curve: Curve{{T: 0, V: 1}, {T: 1, V: 0.5}}},
		Slide:    DashParams{Duration: 0.25, Cooldown: 0.5, Speed: 150},
		WallJump: WallJumpParams{Duration: 0.25, Speed: 120, Vertical: 250},

		AttackOne: AttackParams{Duration: 0.5, EndOffset: 0.25, TriggerTime: 0.125, Lunge: 4,
			Box: entity.Rect{X: 4, Y: -24, W: 20, H: 16}, Damage: 1, Knockback: entity.Vec2{X: 60, Y: -40}},
		AttackTwo: AttackParams{Duration: 0.5, EndOffset: 0.25, TriggerTime: 0.125,
			Box: entity.Rect{X: 4, Y: -24, W: 20, H: 16}, Damage: 2, Knockback: entity.Vec2{X: 80, Y: -40}},
		CrouchAttack: AttackParams{Duration: 0.375, EndOffset: 0.125, TriggerTime: 0.125,
			Box: entity.Rect{X: 4, Y: -12, W: 18, H: 10}, Damage: 1},

		HurtDuration:  0.25,
		Invincibility: 0.5,
	}
}

type harness struct {
	c      *Character
	in     *InputFrame
	world  *fakeWorld
	body   *fakeBody
	anim   *recordingAnimator
	events []event.Event
}

type harnessOpt func(*harness)

func at(pos entity.Vec2) harnessOpt { return func(h *harness) { h.body.pos = pos } }

func withSolids(r ...entity.Rect) harnessOpt {
	return func(h *harness) { h.world.solids = append(h.world.solids, r...) }
}

func newHarness(t *testing.T, opts []harnessOpt, charOpts ...Option) *harness {
	t.Helper()
	world := &fakeWorld{solids: []entity.Rect{floor}}
	h := &harness{
		in:    &InputFrame{},
		world: world,
		body:  &fakeBody{world: world},
		anim:  &recordingAnimator{},
	}
	for _, opt := range opts {
		opt(h)
	}

	bus := event.NewBus()
	bus.SubscribeAll(func(e event.Event) { h.events = append(h.events, e) })

	c, err := New(testParams(), Deps{Input: h.in, Probe: world, Body: h.body, Animator: h.anim, Events: bus}, charOpts...)
	require.NoError(t, err)
	h.c = c
	return h
}

// step runs one logic tick and then clears the input edges.
func (h *harness) step() {
	h.c.Update(tick)
	for _, a := range Actions() {
		h.in.Set(a, h.in.Hold[a])
	}
}

func (h *harness) steps(n int) {
	for i := 0; i < n; i++ {
		h.step()
	}
}

// press makes a fresh edge for a, letting go first if it is still held.
func (h *harness) press(a Action) {
	h.in.Set(a, false)
	h.in.Set(a, true)
}

func (h *harness) release(a Action) { h.in.Set(a, false) }

func (h *harness) airborne() { h.body.pos.Y = -100 }
func (h *harness) land() { h.body.pos.Y = 0 }

func (h *harness) count(kind event.Kind) int {
	n := 0
	for _, e := range h.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}
