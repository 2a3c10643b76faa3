package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/younwookim/platformcore/internal/domain/character"
	"github.com/younwookim/platformcore/internal/domain/entity"
)

// Body is a kinematic Chipmunk body that implements character.Body.
type Body struct {
	world    *World
	body     *cp.Body
	shape    *cp.Shape
	collider entity.Rect
	owner    character.Hittable
	seq      int
}

// NewBody adds a kinematic body at pos with a body-local collider. A
// non-nil owner makes the body answer hittable queries.
func (w *World) NewBody(pos entity.Vec2, collider entity.Rect, owner character.Hittable) *Body {
	body := cp.NewKinematicBody()
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})
	w.space.AddBody(body)

	b := &Body{world: w, body: body, owner: owner, seq: w.nextID}
	w.nextID++
	b.SetCollider(collider)
	return b
}

// SetOwner sets the hittable answering for this body.
func (b *Body) SetOwner(owner character.Hittable) {
	b.owner = owner
	b.refresh()
}

// Position returns the body origin.
func (b *Body) Position() entity.Vec2 {
	p := b.body.Position()
	return entity.Vec2{X: p.X, Y: p.Y}
}

// SetPosition teleports the body.
func (b *Body) SetPosition(p entity.Vec2) {
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
	b.refresh()
}

// Velocity returns the stored velocity.
func (b *Body) Velocity() entity.Vec2 {
	v := b.body.Velocity()
	return entity.Vec2{X: v.X, Y: v.Y}
}

// SetVelocity stores v.
func (b *Body) SetVelocity(v entity.Vec2) {
	b.body.SetVelocity(v.X, v.Y)
}

// AddImpulse adds j to the velocity (unit mass).
func (b *Body) AddImpulse(j entity.Vec2) {
	b.SetVelocity(b.Velocity().Add(j))
}

// Collider returns the body-local collision box.
func (b *Body) Collider() entity.Rect { return b.collider }

// Bounds returns the collider in world space.
func (b *Body) Bounds() entity.Rect { return b.collider.Translate(b.Position()) }

// SetCollider replaces the collision shape.
func (b *Body) SetCollider(local entity.Rect) {
	b.collider = local
	b.refresh()
}

// refresh rebuilds the shape so the spatial index sees the current position
// and collider. The space is never stepped, so nothing else updates it.
func (b *Body) refresh() {
	if b.shape != nil {
		b.world.space.RemoveShape(b.shape)
		delete(b.world.owners, b.shape)
	}
	shape := cp.NewBox2(b.body, toBB(b.collider), 0)
	category := character.Layer(0)
	if b.owner != nil {
		category = character.LayerHittable
	}
	shape.SetFilter(filterFor(category))
	b.shape = b.world.space.AddShape(shape)
	b.world.owners[b.shape] = b
}

// SweptMove moves along X then Y, stopping each axis at solid geometry.
func (b *Body) SweptMove(delta entity.Vec2) entity.Vec2 {
	blocked := func(r entity.Rect) bool {
		return b.world.overlapExcept(r, character.LayerSolid, b.shape)
	}

	box := b.Bounds()
	dx := sweepAxis(box, delta.X, true, blocked)
	box.X += dx
	dy := sweepAxis(box, delta.Y, false, blocked)

	if dx != 0 || dy != 0 {
		p := b.Position()
		b.SetPosition(entity.Vec2{X: p.X + dx, Y: p.Y + dy})
	}
	return entity.Vec2{X: dx, Y: dy}
}

// Remove takes the body out of the world.
func (b *Body) Remove() {
	if b.shape != nil {
		b.world.space.RemoveShape(b.shape)
		delete(b.world.owners, b.shape)
		b.shape = nil
	}
	b.world.space.RemoveBody(b.body)
}
