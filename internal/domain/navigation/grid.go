// Package navigation implements the walkability grid and the A* pathfinder
// used by pursuing enemies.
package navigation

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/younwookim/platformcore/internal/domain/entity"
)

// ErrInvalidGrid is returned when a grid is built with non-positive dimensions.
var ErrInvalidGrid = errors.New("invalid grid")

// Cell is one grid unit. G, H and CameFrom are search scratch and are only
// meaningful while the grid lock is held by a search.
type Cell struct {
	X, Y     int
	World    entity.Vec2
	Walkable bool

	G        int
	H        int
	CameFrom int
}

// F returns the total estimated cost through this cell.
func (c *Cell) F() int { return c.G + c.H }

// GridConfig describes grid geometry.
type GridConfig struct {
	Width    int
	Height   int
	CellSize float64
	Offset   entity.Vec2
}

// Blocker reports whether the world position is blocked.
type Blocker func(pos entity.Vec2) bool

// BlockersFromStage returns a blocker matching the solid tiles of a stage.
func BlockersFromStage(stage *entity.Stage) Blocker {
	return func(pos entity.Vec2) bool {
		return stage.IsSolidAt(pos)
	}
}

// RectBlocker blocks every position inside r.
func RectBlocker(r entity.Rect) Blocker {
	return func(pos entity.Vec2) bool {
		return r.Contains(pos)
	}
}

// CellChangedFunc is notified when a cell's walkability flips.
type CellChangedFunc func(x, y int, walkable bool)

// Grid is a flat row-major array of cells (index = x + y*width).
type Grid struct {
	mu        sync.Mutex
	width     int
	height    int
	cellSize  float64
	offset    entity.Vec2
	cells     []Cell
	listeners []CellChangedFunc
}

// NewGrid builds the grid and rasterizes blockers over cell centers.
func NewGrid(cfg GridConfig, blockers ...Blocker) (*Grid, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.CellSize <= 0 {
		return nil, fmt.Errorf("%w: %dx%d cells of size %v", ErrInvalidGrid, cfg.Width, cfg.Height, cfg.CellSize)
	}

	g := &Grid{
		width:    cfg.Width,
		height:   cfg.Height,
		cellSize: cfg.CellSize,
		offset:   cfg.Offset,
		cells:    make([]Cell, cfg.Width*cfg.Height),
	}

	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			world := g.CellToWorld(x, y)
			walkable := true
			for _, blocked := range blockers {
				if blocked(world) {
					walkable = false
					break
				}
			}
			g.cells[g.index(x, y)] = Cell{X: x, Y: y, World: world, Walkable: walkable, CameFrom: -1}
		}
	}
	return g, nil
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// CellSize returns the side of one cell in world units.
func (g *Grid) CellSize() float64 { return g.cellSize }

func (g *Grid) index(x, y int) int { return x + y*g.width }

// InBounds reports whether x,y addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// WorldToCell maps a world position to cell coordinates. The result may be
// out of bounds.
func (g *Grid) WorldToCell(pos entity.Vec2) (x, y int) {
	x = int(math.Floor((pos.X - g.offset.X) / g.cellSize))
	y = int(math.Floor((pos.Y - g.offset.Y) / g.cellSize))
	return x, y
}

// CellToWorld returns the world position of a cell's center.
func (g *Grid) CellToWorld(x, y int) entity.Vec2 {
	return entity.Vec2{
		X: float64(x)*g.cellSize + g.offset.X + g.cellSize/2,
		Y: float64(y)*g.cellSize + g.offset.Y + g.cellSize/2,
	}
}

// Walkable reports the walkability of a cell. Out of bounds is not walkable.
func (g *Grid) Walkable(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cells[g.index(x, y)].Walkable
}

// SetWalkable changes a cell's flag and notifies listeners if it changed.
// It waits for an in-flight search to finish.
func (g *Grid) SetWalkable(x, y int, walkable bool) bool {
	if !g.InBounds(x, y) {
		return false
	}
	g.mu.Lock()
	c := &g.cells[g.index(x, y)]
	if c.Walkable == walkable {
		g.mu.Unlock()
		return false
	}
	c.Walkable = walkable
	listeners := g.listeners
	g.mu.Unlock()

	for _, fn := range listeners {
		fn(x, y, walkable)
	}
	return true
}

// OnCellChanged registers a listener for walkability changes.
func (g *Grid) OnCellChanged(fn CellChangedFunc) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.listeners = append(g.listeners, fn)
}
