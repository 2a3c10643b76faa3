package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformcore/internal/domain/character"
	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/navigation"
)

const tick = 0.0625

type fakeAgent struct {
	pos      entity.Vec2
	facing   float64
	dead     bool
	grounded bool
}

func (a *fakeAgent) Position() entity.Vec2 { return a.pos }
func (a *fakeAgent) Facing() float64       { return a.facing }
func (a *fakeAgent) IsDead() bool          { return a.dead }
func (a *fakeAgent) Senses() character.Senses {
	return character.Senses{Grounded: a.grounded, CanStand: true}
}

// wallProbe only answers raycasts: a segment crossing x == wallX is blocked.
type wallProbe struct {
	wallX float64
	on    bool
}

func (w *wallProbe) OverlapBox(entity.Rect, character.Layer) bool { return false }
func (w *wallProbe) OverlapHittables(entity.Rect, character.Layer, []character.Hittable) int {
	return 0
}
func (w *wallProbe) Raycast(from, to entity.Vec2, _ character.Layer) bool {
	return w.on && (from.X-w.wallX)*(to.X-w.wallX) < 0
}

type fixture struct {
	p      *Pursuer
	self   *fakeAgent
	target *fakeAgent
	probe  *wallProbe
	pool   *navigation.PathPool
	grid   *navigation.Grid
}

// newFixture builds a 12x6 grid of 16 unit cells. Feet rest on y=80, the
// bottom edge of row 4.
func newFixture(t *testing.T, cfg Config, blockers ...navigation.Blocker) *fixture {
	t.Helper()
	grid, err := navigation.NewGrid(navigation.GridConfig{Width: 12, Height: 6, CellSize: 16}, blockers...)
	require.NoError(t, err)
	pool := navigation.NewPathPool()
	probe := &wallProbe{}
	f := &fixture{
		self:   &fakeAgent{pos: entity.Vec2{X: 24, Y: 80}, facing: 1, grounded: true},
		target: &fakeAgent{pos: entity.Vec2{X: 168, Y: 80}, facing: -1, grounded: true},
		probe:  probe,
		pool:   pool,
		grid:   grid,
	}
	f.p = NewPursuer(cfg, navigation.NewPathfinder(grid, pool), probe)
	f.p.Bind(f.self, f.target)
	t.Cleanup(f.p.Close)
	return f
}

func defaultConfig() Config {
	return Config{RepathInterval: 0.5, AttackRange: 20, ArriveRadius: 4}
}

func TestPursuer_FollowsPath(t *testing.T) {
	f := newFixture(t, defaultConfig())

	f.p.Update(tick)

	require.NotNil(t, f.p.Path())
	assert.Greater(t, f.p.Path().Len(), 1)
	assert.Equal(t, 1.0, f.p.Input().Axis())
	assert.False(t, f.p.Input().Held(character.ActionAttack))
	assert.False(t, f.p.Input().Held(character.ActionJump))
}

func TestPursuer_FollowsLeft(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.self.pos, f.target.pos = f.target.pos, f.self.pos

	f.p.Update(tick)
	assert.Equal(t, -1.0, f.p.Input().Axis())
}

func TestPursuer_AttackPressesEveryOtherTick(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.target.pos = entity.Vec2{X: 40, Y: 80}

	var presses []bool
	for i := 0; i < 4; i++ {
		f.p.Update(tick)
		presses = append(presses, f.p.Input().Pressed(character.ActionAttack))
		assert.Zero(t, f.p.Input().Axis())
	}
	assert.Equal(t, []bool{true, false, true, false}, presses)
}

func TestPursuer_TurnsBeforeAttacking(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.target.pos = entity.Vec2{X: 10, Y: 80}

	f.p.Update(tick)
	assert.Equal(t, -1.0, f.p.Input().Axis())
	assert.False(t, f.p.Input().Held(character.ActionAttack))
}

func TestPursuer_NoAttackThroughWalls(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.target.pos = entity.Vec2{X: 40, Y: 80}
	f.probe.wallX, f.probe.on = 32, true

	f.p.Update(tick)
	assert.False(t, f.p.Input().Held(character.ActionAttack))
}

func TestPursuer_JumpsTowardHigherWaypoint(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.target.pos = entity.Vec2{X: 72, Y: 32}

	f.p.Update(tick)
	assert.True(t, f.p.Input().Pressed(character.ActionJump))

	f.self.grounded = false
	f.p.Update(tick)
	assert.True(t, f.p.Input().Held(character.ActionJump), "held while airborne")

	f.self.grounded = true
	f.p.Update(tick)
	assert.False(t, f.p.Input().Held(character.ActionJump), "let go on landing")

	f.p.Update(tick)
	assert.True(t, f.p.Input().Pressed(character.ActionJump), "fresh press")
}

func TestPursuer_IdleWhenEitherIsDead(t *testing.T) {
	tests := []struct {
		name string
		kill func(f *fixture)
	}{
		{"self", func(f *fixture) { f.self.dead = true }},
		{"target", func(f *fixture) { f.target.dead = true }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, defaultConfig())
			tt.kill(f)

			f.p.Update(tick)
			assert.Zero(t, f.p.Input().Axis())
			assert.Nil(t, f.p.Path())
		})
	}
}

func TestPursuer_RepathReleasesOldPath(t *testing.T) {
	f := newFixture(t, defaultConfig())

	f.p.Update(tick)
	first := f.p.Path()
	require.NotNil(t, first)

	f.p.Update(tick)
	assert.Same(t, first, f.p.Path(), "no repath before the interval")

	for i := 0; i < 8; i++ {
		f.p.Update(tick)
	}
	assert.Equal(t, 2, f.pool.Allocated())
	assert.Equal(t, 1, f.pool.Idle())
}

func TestPursuer_ChasesWithoutRoute(t *testing.T) {
	// A wall column splits the grid, so there is no route, but the target
	// is still visible.
	f := newFixture(t, defaultConfig(), navigation.RectBlocker(entity.Rect{X: 96, Y: 0, W: 16, H: 96}))

	f.p.Update(tick)
	assert.Nil(t, f.p.Path())
	assert.Equal(t, 1.0, f.p.Input().Axis())

	f.probe.wallX, f.probe.on = 104, true
	f.p.Update(tick)
	assert.Zero(t, f.p.Input().Axis(), "nothing to do without a route or sight")
}

func TestPursuer_SightRange(t *testing.T) {
	cfg := defaultConfig()
	cfg.SightRange = 50
	f := newFixture(t, cfg, navigation.RectBlocker(entity.Rect{X: 96, Y: 0, W: 16, H: 96}))

	f.p.Update(tick)
	assert.Zero(t, f.p.Input().Axis())
}

func TestPursuer_Async(t *testing.T) {
	cfg := defaultConfig()
	cfg.Async = true
	f := newFixture(t, cfg)

	f.p.Update(tick)
	assert.Nil(t, f.p.Path(), "result lands on a later tick")

	require.Eventually(t, func() bool {
		f.p.Update(tick / 16)
		return f.p.Path() != nil
	}, time.Second, time.Millisecond)
	assert.Equal(t, 1.0, f.p.Input().Axis())
}

func TestPursuer_CloseDrainsPending(t *testing.T) {
	cfg := defaultConfig()
	cfg.Async = true
	f := newFixture(t, cfg)

	f.p.Update(tick)
	f.p.Close()

	assert.Nil(t, f.p.Path())
	assert.Equal(t, f.pool.Allocated(), f.pool.Idle(), "every path is back in the pool")
}

func TestPursuer_InvalidateRepathsNextTick(t *testing.T) {
	f := newFixture(t, defaultConfig())

	f.p.Update(tick)
	first := f.p.Path()
	require.NotNil(t, first)

	f.p.Invalidate()
	f.p.Update(tick)
	assert.Equal(t, 2, f.pool.Allocated(), "a second search ran")
	assert.Equal(t, 1, f.pool.Idle(), "the first path went back to the pool")
}
