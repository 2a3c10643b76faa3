package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/platformcore/internal/domain/entity"
)

func TestPathPool_ReuseAfterRelease(t *testing.T) {
	pool := NewPathPool()

	a := pool.Get()
	a.setup([]entity.Vec2{{X: 1}, {X: 2}}, 10)
	a.Release()

	b := pool.Get()
	assert.Same(t, a, b, "released path is reused")
	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 1, pool.Allocated())
}

func TestPathPool_LivePathUntouchedByGet(t *testing.T) {
	pool := NewPathPool()

	live := pool.Get()
	live.setup([]entity.Vec2{{X: 1, Y: 1}, {X: 2, Y: 2}}, 14)

	other := pool.Get()
	other.setup([]entity.Vec2{{X: 9, Y: 9}}, 0)

	assert.NotSame(t, live, other)
	assert.Equal(t, []entity.Vec2{{X: 1, Y: 1}, {X: 2, Y: 2}}, live.Points())
	assert.Equal(t, 14, live.Cost())
}

func TestPathPool_PointsIsACopy(t *testing.T) {
	pool := NewPathPool()
	p := pool.Get()
	p.setup([]entity.Vec2{{X: 1}}, 0)

	pts := p.Points()
	pts[0].X = 42

	assert.Equal(t, 1.0, p.At(0).X)
}

func TestPathPool_Misuse(t *testing.T) {
	pool := NewPathPool()

	p := pool.Get()
	p.Release()
	assert.Panics(t, func() { p.Release() }, "double release")
	assert.Panics(t, func() { p.Len() }, "use after release")
	assert.Panics(t, func() { p.Points() }, "use after release")

	foreign := NewPathPool().Get()
	assert.Panics(t, func() { pool.Release(foreign) }, "foreign pool")

	assert.NotPanics(t, func() { pool.Release(nil) })
	assert.Equal(t, 1, pool.Idle())
}
