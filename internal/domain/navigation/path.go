package navigation

import (
	"sync"

	"github.com/younwookim/platformcore/internal/domain/entity"
)

// Path is an ordered, non-empty list of waypoints borrowed from a PathPool.
// The holder must Release it; accessors panic once it has been released.
type Path struct {
	points []entity.Vec2
	cost   int
	pool   *PathPool
	live   bool
}

func (p *Path) mustLive() {
	if !p.live {
		panic("navigation: use of released path")
	}
}

// Len returns the number of waypoints.
func (p *Path) Len() int {
	p.mustLive()
	return len(p.points)
}

// At returns waypoint i.
func (p *Path) At(i int) entity.Vec2 {
	p.mustLive()
	return p.points[i]
}

// First returns the start waypoint.
func (p *Path) First() entity.Vec2 { return p.At(0) }

// Last returns the end waypoint.
func (p *Path) Last() entity.Vec2 { return p.At(p.Len() - 1) }

// Points returns a copy of the waypoints.
func (p *Path) Points() []entity.Vec2 {
	p.mustLive()
	out := make([]entity.Vec2, len(p.points))
	copy(out, p.points)
	return out
}

// Cost returns the search cost of the path in octile units (10 per
// straight step, 14 per diagonal).
func (p *Path) Cost() int {
	p.mustLive()
	return p.cost
}

// Release hands the path back to its pool.
func (p *Path) Release() {
	p.pool.Release(p)
}

// PathPool recycles Path objects. Safe for concurrent use.
type PathPool struct {
	mu   sync.Mutex
	free []*Path
	made int
}

// NewPathPool creates an empty pool.
func NewPathPool() *PathPool {
	return &PathPool{}
}

// Get returns a live, empty path that no other holder references.
func (pp *PathPool) Get() *Path {
	pp.mu.Lock()
	defer pp.mu.Unlock()

	var p *Path
	if n := len(pp.free); n > 0 {
		p = pp.free[n-1]
		pp.free[n-1] = nil
		pp.free = pp.free[:n-1]
	} else {
		p = &Path{pool: pp}
		pp.made++
	}
	p.live = true
	p.points = p.points[:0]
	p.cost = 0
	return p
}

// Release returns p to the pool. Releasing twice, or releasing a path that
// came from another pool, panics.
func (pp *PathPool) Release(p *Path) {
	if p == nil {
		return
	}
	if p.pool != pp {
		panic("navigation: path released to a foreign pool")
	}
	pp.mu.Lock()
	defer pp.mu.Unlock()
	if !p.live {
		panic("navigation: path released twice")
	}
	p.live = false
	pp.free = append(pp.free, p)
}

// Allocated returns how many paths the pool has ever created.
func (pp *PathPool) Allocated() int {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	return pp.made
}

// Idle returns how many released paths wait for reuse.
func (pp *PathPool) Idle() int {
	pp.mu.Lock()
	defer pp.mu.Unlock()
	return len(pp.free)
}

func (p *Path) setup(points []entity.Vec2, cost int) {
	p.points = append(p.points[:0], points...)
	p.cost = cost
}
