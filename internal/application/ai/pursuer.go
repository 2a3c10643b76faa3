// Package ai drives enemy characters through the same input port the
// player uses.
package ai

import (
	"context"
	"io"
	"math"

	"github.com/charmbracelet/log"
	bt "github.com/joeycumines/go-behaviortree"

	"github.com/younwookim/platformcore/internal/domain/character"
	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/navigation"
)

// Config tunes a pursuer.
type Config struct {
	// RepathInterval is the time between path requests in seconds.
	RepathInterval float64
	// AttackRange is the horizontal distance at which the pursuer swings.
	AttackRange float64
	// ArriveRadius is how close a waypoint must be to count as reached.
	ArriveRadius float64
	// SightRange limits line-of-sight checks. Zero means unlimited.
	SightRange float64
	// Async runs searches on a goroutine. Results then land on a later
	// tick, which breaks replay determinism.
	Async bool
}

// Agent is the character a pursuer drives.
type Agent interface {
	Position() entity.Vec2
	Facing() float64
	IsDead() bool
	Senses() character.Senses
}

// Target is what a pursuer chases.
type Target interface {
	Position() entity.Vec2
	IsDead() bool
}

// eyeHeight lifts sight lines off the floor.
const eyeHeight = 16

// reachHeight is the vertical band in which an attack can connect.
const reachHeight = 24

// Pursuer chases a target along pathfinder routes and attacks in range.
// The decision logic is a behavior tree ticked once per logic tick:
//
//	Sequence(alive, repath, Selector(attack, follow, chase))
type Pursuer struct {
	cfg    Config
	self   Agent
	target Target
	finder *navigation.Pathfinder
	probe  character.Probe
	logger *log.Logger

	frame character.InputFrame
	tree  bt.Node

	ctx     context.Context
	cancel  context.CancelFunc
	pending <-chan *navigation.Path

	now        float64
	nextRepath float64
	path       *navigation.Path
	waypoint   int

	// per-tick intent
	axis       float64
	jump       bool
	attack     bool
	attackHeld bool
}

// Option configures a Pursuer.
type Option func(*Pursuer)

// WithLogger sets the pursuer's logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Pursuer) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPursuer creates a pursuer. Call Close to cancel in-flight searches.
func NewPursuer(cfg Config, finder *navigation.Pathfinder, probe character.Probe, opts ...Option) *Pursuer {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Pursuer{
		cfg:    cfg,
		finder: finder,
		probe:  probe,
		logger: log.New(io.Discard),
		ctx:    ctx,
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.tree = bt.New(
		bt.Sequence,
		bt.New(p.alive),
		bt.New(p.repath),
		bt.New(
			bt.Selector,
			bt.New(p.tryAttack),
			bt.New(p.follow),
			bt.New(p.chase),
		),
	)
	return p
}

// Bind attaches the driven character and the target. The character is
// usually created with Input() as its input source, so binding happens
// after construction.
func (p *Pursuer) Bind(self Agent, target Target) {
	p.self = self
	p.target = target
	p.nextRepath = p.now
}

// Invalidate forces a new search on the next tick, e.g. after the grid
// changed under the current route.
func (p *Pursuer) Invalidate() { p.nextRepath = p.now }

// Input returns the frame the driven character should read.
func (p *Pursuer) Input() *character.InputFrame { return &p.frame }

// Path returns the current route, which may be nil.
func (p *Pursuer) Path() *navigation.Path { return p.path }

// Waypoint returns the index of the waypoint being steered to.
func (p *Pursuer) Waypoint() int { return p.waypoint }

// Update ticks the behavior tree and writes the resulting input frame.
// Call it before the driven character's Update.
func (p *Pursuer) Update(dt float64) {
	p.now += dt
	p.axis, p.jump, p.attack = 0, false, false

	if p.self != nil && p.target != nil {
		if _, err := p.tree.Tick(); err != nil {
			p.logger.Warn("pursuer tick failed", "err", err)
		}
	}

	if !p.attack {
		p.attackHeld = false
	}
	p.frame.SetAxis(p.axis)
	p.frame.Set(character.ActionJump, p.jump)
	p.frame.Set(character.ActionAttack, p.attack)
	p.frame.Set(character.ActionCrouch, false)
	p.frame.Set(character.ActionDash, false)
}

// Close cancels any in-flight search and releases held paths.
func (p *Pursuer) Close() {
	p.cancel()
	if p.pending != nil {
		if path := <-p.pending; path != nil {
			path.Release()
		}
		p.pending = nil
	}
	p.setPath(nil)
}

func (p *Pursuer) alive([]bt.Node) (bt.Status, error) {
	if p.self.IsDead() || p.target.IsDead() {
		return bt.Failure, nil
	}
	return bt.Success, nil
}

// repath collects finished searches and starts a new one when due. It never
// fails: a missing path only changes which branch steers.
func (p *Pursuer) repath([]bt.Node) (bt.Status, error) {
	if p.pending != nil {
		select {
		case path := <-p.pending:
			p.pending = nil
			p.setPath(path)
		default:
			return bt.Success, nil
		}
	}
	if p.now < p.nextRepath {
		return bt.Success, nil
	}
	p.nextRepath = p.now + p.cfg.RepathInterval

	start, end := footCell(p.self.Position()), footCell(p.target.Position())
	if p.cfg.Async {
		p.pending = p.finder.FindPathAsync(p.ctx, start, end)
		return bt.Success, nil
	}
	p.setPath(p.finder.FindPath(start, end))
	return bt.Success, nil
}

// footCell nudges a feet position into the cell the body stands in.
func footCell(pos entity.Vec2) entity.Vec2 { return entity.Vec2{X: pos.X, Y: pos.Y - 1} }

func (p *Pursuer) setPath(path *navigation.Path) {
	if p.path != nil {
		p.path.Release()
	}
	p.path = path
	p.waypoint = 0
	if path != nil && path.Len() > 1 {
		p.waypoint = 1
	}
}

func (p *Pursuer) tryAttack([]bt.Node) (bt.Status, error) {
	pos, target := p.self.Position(), p.target.Position()
	dx := target.X - pos.X
	if math.Abs(dx) > p.cfg.AttackRange || math.Abs(target.Y-pos.Y) > reachHeight || !p.canSee() {
		return bt.Failure, nil
	}
	if dx*p.self.Facing() < 0 {
		p.axis = sign(dx)
		return bt.Success, nil
	}
	// alternate so every other tick is a fresh press
	p.attackHeld = !p.attackHeld
	p.attack = p.attackHeld
	return bt.Success, nil
}

func (p *Pursuer) follow([]bt.Node) (bt.Status, error) {
	if p.path == nil {
		return bt.Failure, nil
	}
	pos := footCell(p.self.Position())
	for p.waypoint < p.path.Len()-1 && math.Abs(p.path.At(p.waypoint).X-pos.X) <= p.cfg.ArriveRadius {
		p.waypoint++
	}
	wp := p.path.At(p.waypoint)
	dx := wp.X - pos.X
	if p.waypoint == p.path.Len()-1 && math.Abs(dx) <= p.cfg.ArriveRadius {
		return bt.Failure, nil
	}

	p.axis = sign(dx)
	cell := p.finder.Grid().CellSize()
	if wp.Y < pos.Y-cell/2 {
		// a held jump has to be let go on the ground before it can press again
		p.jump = !(p.self.Senses().Grounded && p.frame.Held(character.ActionJump))
	}
	return bt.Success, nil
}

// chase walks straight at a visible target when there is no route.
func (p *Pursuer) chase([]bt.Node) (bt.Status, error) {
	if !p.canSee() {
		return bt.Failure, nil
	}
	p.axis = sign(p.target.Position().X - p.self.Position().X)
	return bt.Success, nil
}

func (p *Pursuer) canSee() bool {
	from := p.self.Position().Add(entity.Vec2{Y: -eyeHeight})
	to := p.target.Position().Add(entity.Vec2{Y: -eyeHeight})
	if p.cfg.SightRange > 0 && from.Dist(to) > p.cfg.SightRange {
		return false
	}
	return !p.probe.Raycast(from, to, character.LayerSolid)
}

func sign(x float64) float64 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
