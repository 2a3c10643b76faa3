// Package physics backs the character collision ports with a Chipmunk space.
// The space is used as a spatial index only; it is never stepped. Motion is
// integrated by the application physics system through Body.SweptMove.
package physics

import (
	"cmp"
	"math"
	"slices"

	"github.com/jakecoffman/cp"

	"github.com/younwookim/platformcore/internal/domain/character"
	"github.com/younwookim/platformcore/internal/domain/entity"
)

// queryEpsilon shrinks query boxes so that touching edges do not count as
// overlap; Chipmunk bounding boxes intersect inclusively.
const queryEpsilon = 1e-6

// World owns the Chipmunk space and maps shapes back to their owners.
type World struct {
	space  *cp.Space
	owners map[*cp.Shape]*Body
	solids map[[2]int]*cp.Shape
	nextID int
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{
		space:  cp.NewSpace(),
		owners: make(map[*cp.Shape]*Body),
		solids: make(map[[2]int]*cp.Shape),
	}
}

// Space returns the underlying Chipmunk space.
func (w *World) Space() *cp.Space { return w.space }

func toBB(r entity.Rect) cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.W, T: r.Y + r.H}
}

func fromBB(bb cp.BB) entity.Rect {
	return entity.Rect{X: bb.L, Y: bb.B, W: bb.R - bb.L, H: bb.T - bb.B}
}

func filterFor(category character.Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, uint(category), cp.ALL_CATEGORIES)
}

func queryFilter(layers character.Layer) cp.ShapeFilter {
	return cp.NewShapeFilter(cp.NO_GROUP, cp.ALL_CATEGORIES, uint(layers))
}

// AddSolid adds a static solid box.
func (w *World) AddSolid(r entity.Rect) *cp.Shape {
	shape := cp.NewBox2(w.space.StaticBody, toBB(r), 0)
	shape.SetFilter(filterFor(character.LayerSolid))
	return w.space.AddShape(shape)
}

// AddStage adds one static box per merged run of fixed solid tiles and one
// box per breakable tile.
func (w *World) AddStage(stage *entity.Stage) {
	for _, r := range stage.SolidRects() {
		w.AddSolid(r)
	}
	for _, t := range stage.Breakables() {
		w.solids[t] = w.AddSolid(stage.TileRect(t[0], t[1]))
	}
}

// RemoveTile removes a breakable tile added by AddStage.
func (w *World) RemoveTile(tx, ty int) bool {
	key := [2]int{tx, ty}
	shape, ok := w.solids[key]
	if !ok {
		return false
	}
	w.space.RemoveShape(shape)
	delete(w.solids, key)
	return true
}

// OverlapBox reports whether box strictly overlaps any shape on layers.
func (w *World) OverlapBox(box entity.Rect, layers character.Layer) bool {
	return w.overlapExcept(box, layers, nil)
}

func (w *World) overlapExcept(box entity.Rect, layers character.Layer, self *cp.Shape) bool {
	found := false
	w.space.BBQuery(toBB(box.Inset(queryEpsilon)), queryFilter(layers), func(shape *cp.Shape, _ interface{}) {
		if shape != self {
			found = true
		}
	}, nil)
	return found
}

// OverlapHittables writes the owners of bodies overlapping box into out,
// in body creation order, and returns the count.
func (w *World) OverlapHittables(box entity.Rect, layers character.Layer, out []character.Hittable) int {
	var bodies []*Body
	w.space.BBQuery(toBB(box.Inset(queryEpsilon)), queryFilter(layers), func(shape *cp.Shape, _ interface{}) {
		if b, ok := w.owners[shape]; ok && b.owner != nil {
			bodies = append(bodies, b)
		}
	}, nil)
	slices.SortFunc(bodies, func(a, b *Body) int { return cmp.Compare(a.seq, b.seq) })

	n := 0
	for _, b := range bodies {
		if n == len(out) {
			break
		}
		out[n] = b.owner
		n++
	}
	return n
}

// Raycast reports whether the segment hits a shape on layers.
func (w *World) Raycast(from, to entity.Vec2, layers character.Layer) bool {
	info := w.space.SegmentQueryFirst(cp.Vector{X: from.X, Y: from.Y}, cp.Vector{X: to.X, Y: to.Y}, 0, queryFilter(layers))
	return info.Shape != nil
}

// maxSweepStep bounds how far one sweep iteration moves.
const maxSweepStep = 1.0

// bisectIterations refines the contact point inside a blocked step.
const bisectIterations = 8

// sweepAxis moves box along one axis by d and returns the distance travelled
// before blocked reports contact.
func sweepAxis(box entity.Rect, d float64, horizontal bool, blocked func(entity.Rect) bool) float64 {
	if d == 0 {
		return 0
	}
	shift := func(dist float64) entity.Rect {
		if horizontal {
			return entity.Rect{X: box.X + dist, Y: box.Y, W: box.W, H: box.H}
		}
		return entity.Rect{X: box.X, Y: box.Y + dist, W: box.W, H: box.H}
	}

	steps := int(math.Ceil(math.Abs(d) / maxSweepStep))
	step := d / float64(steps)
	travelled := 0.0
	for i := 0; i < steps; i++ {
		next := travelled + step
		if !blocked(shift(next)) {
			travelled = next
			continue
		}
		lo, hi := travelled, next
		for j := 0; j < bisectIterations; j++ {
			mid := (lo + hi) / 2
			if blocked(shift(mid)) {
				hi = mid
			} else {
				lo = mid
			}
		}
		return lo
	}
	return travelled
}
