package navigation

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/younwookim/platformcore/internal/domain/entity"
)

// Pathfinder runs A* searches over one grid, one search at a time.
type Pathfinder struct {
	grid   *Grid
	pool   *PathPool
	logger *log.Logger

	scratch scratch
	trail   []int
	points  []entity.Vec2
}

// Option configures a Pathfinder.
type Option func(*Pathfinder)

// WithLogger sets the logger used for search diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(p *Pathfinder) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPathfinder creates a pathfinder. Paths are taken from pool.
func NewPathfinder(grid *Grid, pool *PathPool, opts ...Option) *Pathfinder {
	p := &Pathfinder{
		grid:   grid,
		pool:   pool,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grid returns the grid searched by p.
func (p *Pathfinder) Grid() *Grid { return p.grid }

// Pool returns the pool paths are borrowed from.
func (p *Pathfinder) Pool() *PathPool { return p.pool }

// FindPath returns a path from start to end, or nil when there is none.
// The caller owns the returned path and must release it.
func (p *Pathfinder) FindPath(start, end entity.Vec2) *Path {
	return p.find(context.Background(), start, end)
}

// FindPathAsync runs the search on its own goroutine. The channel yields
// exactly one value: the path, or nil when there is no path or ctx ends
// before the search does.
func (p *Pathfinder) FindPathAsync(ctx context.Context, start, end entity.Vec2) <-chan *Path {
	ch := make(chan *Path, 1)
	go func() {
		ch <- p.find(ctx, start, end)
	}()
	return ch
}

func (p *Pathfinder) find(ctx context.Context, start, end entity.Vec2) *Path {
	g := p.grid
	sx, sy := g.WorldToCell(start)
	ex, ey := g.WorldToCell(end)

	if sx == ex && sy == ey {
		path := p.pool.Get()
		path.setup([]entity.Vec2{start}, 0)
		return path
	}

	if !g.InBounds(sx, sy) || !g.InBounds(ex, ey) {
		p.logger.Debug("path endpoint out of bounds", "from", start, "to", end)
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	startIdx, endIdx := g.index(sx, sy), g.index(ex, ey)
	if !g.cells[endIdx].Walkable {
		p.logger.Debug("path end blocked", "cell", [2]int{ex, ey})
		return nil
	}

	if !g.search(ctx, &p.scratch, startIdx, endIdx) {
		if err := ctx.Err(); err != nil {
			p.logger.Debug("path search cancelled", "err", err)
		} else {
			p.logger.Debug("no path", "from", [2]int{sx, sy}, "to", [2]int{ex, ey})
		}
		return nil
	}

	p.trail = g.trace(startIdx, endIdx, p.trail)
	p.points = p.points[:0]
	for _, idx := range p.trail {
		p.points = append(p.points, g.cells[idx].World)
	}
	p.points[0] = start
	p.points[len(p.points)-1] = end

	path := p.pool.Get()
	path.setup(p.points, g.cells[endIdx].G)
	return path
}
