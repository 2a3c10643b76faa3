package character

import (
	"github.com/google/uuid"

	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/event"
)

// Action is a discrete input signal.
type Action uint8

const (
	ActionJump Action = iota
	ActionCrouch
	ActionDash
	ActionAttack
	actionCount
)

func (a Action) String() string {
	switch a {
	case ActionJump:
		return "jump"
	case ActionCrouch:
		return "crouch"
	case ActionDash:
		return "dash"
	case ActionAttack:
		return "attack"
	default:
		return "unknown"
	}
}

// Input is polled once per logic tick.
type Input interface {
	// Axis is the horizontal input in [-1, 1].
	Axis() float64
	Held(a Action) bool
	// Pressed and Released are edges for the current tick.
	Pressed(a Action) bool
	Released(a Action) bool
}

// Layer is a collision layer bitmask.
type Layer uint32

const (
	LayerSolid Layer = 1 << iota
	LayerHittable
)

// Probe answers collision queries against the world.
type Probe interface {
	// OverlapBox reports whether box overlaps any shape on layers.
	// Touching edges do not count.
	OverlapBox(box entity.Rect, layers Layer) bool
	// OverlapHittables fills out with hittables overlapping box and
	// returns how many were written. Results beyond len(out) are dropped.
	OverlapHittables(box entity.Rect, layers Layer, out []Hittable) int
	// Raycast reports whether the segment from..to hits anything on layers.
	Raycast(from, to entity.Vec2, layers Layer) bool
}

// Body is the rigid body a character drives.
type Body interface {
	Position() entity.Vec2
	Velocity() entity.Vec2
	SetVelocity(v entity.Vec2)
	// AddImpulse changes velocity by j (unit mass).
	AddImpulse(j entity.Vec2)
	// SweptMove moves by delta, stopping at solid geometry, and returns
	// the displacement actually applied.
	SweptMove(delta entity.Vec2) entity.Vec2
	// SetCollider replaces the body-local collision box.
	SetCollider(local entity.Rect)
}

// Animator plays animations by opaque key.
type Animator interface {
	Play(key string, restart bool)
}

// Hit is a damage request delivered to a Hittable.
type Hit struct {
	Damage    int
	Knockback entity.Vec2
	Attacker  uuid.UUID
}

// Hittable accepts hits. TakeHit reports whether the hit was applied.
type Hittable interface {
	TakeHit(hit Hit) bool
}

// Identified is implemented by hittables that carry an identity.
type Identified interface {
	ID() uuid.UUID
}

// EventSink receives gameplay notifications.
type EventSink interface {
	Emit(e event.Event)
}
