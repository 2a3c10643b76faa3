// Package sim owns one running level: characters, their brains, the
// collision world and the fixed-step physics pass.
package sim

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/younwookim/platformcore/internal/application/ai"
	"github.com/younwookim/platformcore/internal/application/system"
	"github.com/younwookim/platformcore/internal/domain/character"
	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/event"
	"github.com/younwookim/platformcore/internal/domain/navigation"
	"github.com/younwookim/platformcore/internal/infrastructure/config"
	"github.com/younwookim/platformcore/internal/infrastructure/physics"
)

// ErrUnknownArchetype is returned when a level spawns a character that
// characters.yaml does not define.
var ErrUnknownArchetype = errors.New("unknown archetype")

// Options tunes a World.
type Options struct {
	Logger *log.Logger
	// AsyncPaths runs pursuer searches on goroutines. Replays need it off.
	AsyncPaths bool
}

// Actor is a character together with the pieces the world keeps for it.
type Actor struct {
	*character.Character
	Archetype string
	Anim      *Animation
	Brain     *ai.Pursuer

	body *physics.Body
}

// Bounds returns the world-space collider.
func (a *Actor) Bounds() entity.Rect { return a.body.Bounds() }

// World is one running level.
type World struct {
	cfg    *config.GameConfig
	level  *config.LevelConfig
	logger *log.Logger

	stage   *entity.Stage
	bus     *event.Bus
	space   *physics.World
	grid    *navigation.Grid
	pool    *navigation.PathPool
	finder  *navigation.Pathfinder
	physics *system.PhysicsSystem

	input      character.InputFrame
	player     *Actor
	enemies    []*Actor
	breakables map[[2]int]*Breakable

	frame     int
	frameTime float64
	fixedStep float64
	substeps  int
}

// New builds the level and spawns the player and every enemy.
func New(cfg *config.GameConfig, level *config.LevelConfig, opts Options) (*World, error) {
	if err := config.Validate(cfg, level); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	w := &World{
		cfg:        cfg,
		level:      level,
		logger:     logger,
		stage:      system.LoadStage(level),
		bus:        event.NewBus(),
		space:      physics.NewWorld(),
		pool:       navigation.NewPathPool(),
		physics:    system.NewPhysicsSystem(cfg.Physics),
		breakables: make(map[[2]int]*Breakable),
		frameTime:  cfg.Physics.FrameTime(),
		fixedStep:  cfg.Physics.FixedStep(),
		substeps:   cfg.Physics.Physics.Substeps,
	}

	grid, err := system.LoadGrid(level, w.stage)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", level.ID, err)
	}
	w.grid = grid
	w.finder = navigation.NewPathfinder(grid, w.pool, navigation.WithLogger(logger.WithPrefix("path")))

	w.space.AddStage(w.stage)
	for _, t := range w.stage.Breakables() {
		w.addBreakable(t[0], t[1])
	}

	w.player, err = w.spawn("player", entity.Spawn{Archetype: "player", Pos: w.stage.Spawn, FacingRight: true}, &w.input)
	if err != nil {
		return nil, err
	}

	for _, s := range w.stage.Enemies {
		arch := cfg.Characters[s.Archetype]
		brain := ai.NewPursuer(pursuerConfig(arch.AI, opts.AsyncPaths), w.finder, w.space,
			ai.WithLogger(logger.WithPrefix(s.Archetype)))
		enemy, err := w.spawn(s.Archetype, s, brain.Input())
		if err != nil {
			brain.Close()
			w.Close()
			return nil, err
		}
		brain.Bind(enemy, w.player)
		enemy.Brain = brain
		w.enemies = append(w.enemies, enemy)
	}

	grid.OnCellChanged(func(x, y int, walkable bool) {
		logger.Debug("cell changed", "x", x, "y", y, "walkable", walkable)
		for _, e := range w.enemies {
			e.Brain.Invalidate()
		}
	})
	w.bus.Subscribe(event.KindDied, func(e event.Event) {
		logger.Info("character died", "id", e.Source)
	})
	return w, nil
}

func pursuerConfig(c *config.AIConfig, async bool) ai.Config {
	cfg := ai.Config{RepathInterval: 0.5, AttackRange: 24, ArriveRadius: 4, Async: async}
	if c != nil {
		cfg.RepathInterval = c.RepathInterval
		cfg.AttackRange = c.AttackRange
		cfg.ArriveRadius = c.ArriveRadius
		cfg.SightRange = c.SightRange
	}
	return cfg
}

func (w *World) spawn(archetype string, s entity.Spawn, in character.Input) (*Actor, error) {
	arch, ok := w.cfg.Characters[archetype]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownArchetype, archetype)
	}
	params := arch.Params()

	body := w.space.NewBody(s.Pos, params.StandCollider, nil)
	anim := &Animation{clock: &w.frame}
	facing := 1.0
	if !s.FacingRight {
		facing = -1
	}

	c, err := character.New(params, character.Deps{
		Input:    in,
		Probe:    w.space,
		Body:     body,
		Animator: anim,
		Events:   w.bus,
	}, character.WithLogger(w.logger.WithPrefix(archetype)), character.WithFacing(facing))
	if err != nil {
		body.Remove()
		return nil, fmt.Errorf("spawn %s: %w", archetype, err)
	}
	body.SetOwner(c)
	return &Actor{Character: c, Archetype: archetype, Anim: anim, body: body}, nil
}

func (w *World) addBreakable(tx, ty int) {
	r := w.stage.TileRect(tx, ty)
	b := &Breakable{world: w, tx: tx, ty: ty}
	feet := entity.Vec2{X: r.X + r.W/2, Y: r.Bottom()}
	b.body = w.space.NewBody(feet, r.Translate(entity.Vec2{X: -feet.X, Y: -feet.Y}), b)
	w.breakables[[2]int{tx, ty}] = b
}

// breakTile clears a breakable from the stage, the collision world and the
// navigation grid.
func (w *World) breakTile(b *Breakable) {
	w.stage.SetSolid(b.tx, b.ty, false)
	w.space.RemoveTile(b.tx, b.ty)
	b.body.Remove()

	r := w.stage.TileRect(b.tx, b.ty)
	x0, y0 := w.grid.WorldToCell(entity.Vec2{X: r.X, Y: r.Y})
	x1, y1 := w.grid.WorldToCell(entity.Vec2{X: r.Right() - 1e-9, Y: r.Bottom() - 1e-9})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if w.grid.InBounds(x, y) {
				w.grid.SetWalkable(x, y, !w.stage.IsSolidAt(w.grid.CellToWorld(x, y)))
			}
		}
	}
	w.logger.Debug("tile broken", "tx", b.tx, "ty", b.ty)
}

// Step advances one logic frame with the player's input for that frame,
// then runs the fixed physics substeps.
func (w *World) Step(in character.InputFrame) {
	w.input = in

	for _, e := range w.enemies {
		e.Brain.Update(w.frameTime)
	}
	w.player.Update(w.frameTime)
	for _, e := range w.enemies {
		e.Update(w.frameTime)
	}

	for i := 0; i < w.substeps; i++ {
		w.physics.Step(w.player, w.fixedStep)
		for _, e := range w.enemies {
			w.physics.Step(e, w.fixedStep)
		}
	}
	w.frame++
}

// Close cancels pursuer searches and returns their paths to the pool.
func (w *World) Close() {
	for _, e := range w.enemies {
		e.Brain.Close()
	}
}

// Frame returns how many frames have been stepped.
func (w *World) Frame() int { return w.frame }

// FrameTime returns the logic frame duration in seconds.
func (w *World) FrameTime() float64 { return w.frameTime }

// Player returns the player actor.
func (w *World) Player() *Actor { return w.player }

// Enemies returns the enemy actors in spawn order.
func (w *World) Enemies() []*Actor { return w.enemies }

// Stage returns the tile map.
func (w *World) Stage() *entity.Stage { return w.stage }

// Grid returns the navigation grid.
func (w *World) Grid() *navigation.Grid { return w.grid }

// Pathfinder returns the shared pathfinder.
func (w *World) Pathfinder() *navigation.Pathfinder { return w.finder }

// Bus returns the event bus.
func (w *World) Bus() *event.Bus { return w.bus }

// Level returns the level config the world was built from.
func (w *World) Level() *config.LevelConfig { return w.level }

// Breakable returns the breakable at a tile, if any.
func (w *World) Breakable(tx, ty int) (*Breakable, bool) {
	b, ok := w.breakables[[2]int{tx, ty}]
	return b, ok
}
