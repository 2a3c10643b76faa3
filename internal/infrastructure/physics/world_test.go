package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformcore/internal/domain/character"
	"github.com/younwookim/platformcore/internal/domain/entity"
)

var collider = entity.Rect{X: -6, Y: -28, W: 12, H: 28}

type target struct{ hits int }

func (t *target) TakeHit(character.Hit) bool {
	t.hits++
	return true
}

func newFloorWorld() *World {
	w := NewWorld()
	w.AddSolid(entity.Rect{X: -100, Y: 0, W: 200, H: 20})
	return w
}

func TestWorld_OverlapBoxIsStrict(t *testing.T) {
	w := newFloorWorld()

	assert.True(t, w.OverlapBox(entity.Rect{X: 0, Y: -1, W: 4, H: 2}, character.LayerSolid))
	assert.False(t, w.OverlapBox(entity.Rect{X: 0, Y: -4, W: 4, H: 4}, character.LayerSolid), "touching edge")
	assert.False(t, w.OverlapBox(entity.Rect{X: 0, Y: -1, W: 4, H: 2}, character.LayerHittable), "wrong layer")
}

func TestWorld_OverlapHittables(t *testing.T) {
	w := newFloorWorld()
	a, b, c := &target{}, &target{}, &target{}
	w.NewBody(entity.Vec2{X: 10, Y: 0}, collider, a)
	w.NewBody(entity.Vec2{X: 20, Y: 0}, collider, b)
	w.NewBody(entity.Vec2{X: 90, Y: 0}, collider, c)
	w.NewBody(entity.Vec2{X: 15, Y: 0}, collider, nil)

	out := make([]character.Hittable, 8)
	n := w.OverlapHittables(entity.Rect{X: 0, Y: -20, W: 30, H: 10}, character.LayerHittable, out)
	require.Equal(t, 2, n)
	assert.Same(t, a, out[0].(*target))
	assert.Same(t, b, out[1].(*target))

	small := make([]character.Hittable, 1)
	assert.Equal(t, 1, w.OverlapHittables(entity.Rect{X: 0, Y: -20, W: 30, H: 10}, character.LayerHittable, small))

	assert.False(t, w.OverlapBox(entity.Rect{X: 0, Y: -20, W: 30, H: 10}, character.LayerSolid),
		"bodies are not solid")
}

func TestBody_SweptMoveStopsAtSolids(t *testing.T) {
	w := newFloorWorld()
	w.AddSolid(entity.Rect{X: 40, Y: -100, W: 10, H: 100})
	b := w.NewBody(entity.Vec2{X: 0, Y: -10}, collider, nil)

	moved := b.SweptMove(entity.Vec2{X: 5, Y: 30})
	assert.Equal(t, 5.0, moved.X)
	assert.InDelta(t, 10, moved.Y, 0.01, "lands on the floor")
	assert.LessOrEqual(t, b.Position().Y, 0.0)

	moved = b.SweptMove(entity.Vec2{X: 100})
	assert.InDelta(t, 29, moved.X, 0.01, "stops at the wall")
	assert.False(t, w.OverlapBox(b.Bounds(), character.LayerSolid))
}

func TestBody_MovesInIndex(t *testing.T) {
	w := newFloorWorld()
	tg := &target{}
	b := w.NewBody(entity.Vec2{X: 0, Y: 0}, collider, tg)

	probe := entity.Rect{X: 50, Y: -20, W: 10, H: 10}
	out := make([]character.Hittable, 1)
	assert.Equal(t, 0, w.OverlapHittables(probe, character.LayerHittable, out))

	b.SweptMove(entity.Vec2{X: 55})
	assert.Equal(t, 1, w.OverlapHittables(probe, character.LayerHittable, out))

	b.SetCollider(entity.Rect{X: -6, Y: -5, W: 12, H: 5})
	assert.Equal(t, 0, w.OverlapHittables(probe, character.LayerHittable, out), "crouched under the probe")
}

func TestBody_VelocityAndImpulse(t *testing.T) {
	w := NewWorld()
	b := w.NewBody(entity.Vec2{}, collider, nil)

	b.SetVelocity(entity.Vec2{X: 1, Y: 2})
	b.AddImpulse(entity.Vec2{X: 3, Y: -4})
	assert.Equal(t, entity.Vec2{X: 4, Y: -2}, b.Velocity())
}

func TestWorld_Raycast(t *testing.T) {
	w := newFloorWorld()
	w.AddSolid(entity.Rect{X: 40, Y: -100, W: 10, H: 100})

	assert.True(t, w.Raycast(entity.Vec2{X: 0, Y: -50}, entity.Vec2{X: 80, Y: -50}, character.LayerSolid))
	assert.False(t, w.Raycast(entity.Vec2{X: 0, Y: -50}, entity.Vec2{X: 30, Y: -50}, character.LayerSolid))
}

func TestWorld_StageAndBreakables(t *testing.T) {
	stage := &entity.Stage{
		Width: 3, Height: 2, TileSize: 10,
		Tiles: [][]entity.Tile{
			{{}, {Type: entity.TileBreakable, Solid: true}, {}},
			{{Type: entity.TileWall, Solid: true}, {Type: entity.TileWall, Solid: true}, {Type: entity.TileWall, Solid: true}},
		},
	}
	w := NewWorld()
	w.AddStage(stage)

	assert.True(t, w.OverlapBox(entity.Rect{X: 12, Y: 2, W: 2, H: 2}, character.LayerSolid))
	assert.True(t, w.OverlapBox(entity.Rect{X: 25, Y: 12, W: 2, H: 2}, character.LayerSolid))

	assert.True(t, w.RemoveTile(1, 0))
	assert.False(t, w.RemoveTile(1, 0))
	assert.False(t, w.RemoveTile(0, 1), "fixed tiles stay")
	assert.False(t, w.OverlapBox(entity.Rect{X: 12, Y: 2, W: 2, H: 2}, character.LayerSolid))
}

func TestSweepAxis(t *testing.T) {
	wall := entity.Rect{X: 10, Y: 0, W: 5, H: 5}
	blocked := func(r entity.Rect) bool { return r.Overlaps(wall) }
	box := entity.Rect{X: 0, Y: 0, W: 4, H: 4}

	assert.Equal(t, 0.0, sweepAxis(box, 0, true, blocked))
	assert.InDelta(t, 6, sweepAxis(box, 20, true, blocked), 1.0/256)
	assert.Equal(t, -3.0, sweepAxis(box, -3, true, blocked))
	assert.InDelta(t, 2.5, sweepAxis(box, 2.5, false, blocked), 1e-9)
}
