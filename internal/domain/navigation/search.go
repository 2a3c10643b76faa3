package navigation

import (
	"context"
	"math"
)

const (
	moveStraightCost = 10
	moveDiagonalCost = 14
)

var neighborOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {1, -1}, {-1, 1}, {1, 1},
}

// octile is the 8-way distance between two cells, scaled by ten.
func octile(ax, ay, bx, by int) int {
	dx := abs(ax - bx)
	dy := abs(ay - by)
	return min(dx, dy)*moveDiagonalCost + abs(dx-dy)*moveStraightCost
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// scratch holds the per-search open and closed sets. It is reused between
// searches and must only be touched with the grid lock held.
type scratch struct {
	open   []int
	inOpen []bool
	closed []bool
}

func (s *scratch) reset(n int) {
	s.open = s.open[:0]
	if cap(s.inOpen) < n {
		s.inOpen = make([]bool, n)
		s.closed = make([]bool, n)
		return
	}
	s.inOpen = s.inOpen[:n]
	s.closed = s.closed[:n]
	clear(s.inOpen)
	clear(s.closed)
}

// search runs A* from start to end (flat indices). The caller holds g.mu.
// It returns false when the end is unreachable or ctx is done.
func (g *Grid) search(ctx context.Context, s *scratch, start, end int) bool {
	for i := range g.cells {
		c := &g.cells[i]
		c.G = math.MaxInt
		c.H = 0
		c.CameFrom = -1
	}
	s.reset(len(g.cells))

	endCell := &g.cells[end]
	startCell := &g.cells[start]
	startCell.G = 0
	startCell.H = octile(startCell.X, startCell.Y, endCell.X, endCell.Y)
	s.open = append(s.open, start)
	s.inOpen[start] = true

	for len(s.open) > 0 {
		if ctx.Err() != nil {
			return false
		}

		best := 0
		for i := 1; i < len(s.open); i++ {
			if g.cells[s.open[i]].F() < g.cells[s.open[best]].F() {
				best = i
			}
		}
		current := s.open[best]
		s.open = append(s.open[:best], s.open[best+1:]...)
		s.inOpen[current] = false

		if current == end {
			return true
		}
		s.closed[current] = true

		cur := &g.cells[current]
		for _, off := range neighborOffsets {
			nx, ny := cur.X+off[0], cur.Y+off[1]
			if !g.InBounds(nx, ny) {
				continue
			}
			ni := g.index(nx, ny)
			if s.closed[ni] {
				continue
			}
			n := &g.cells[ni]
			if !n.Walkable {
				continue
			}

			tentative := cur.G + octile(cur.X, cur.Y, nx, ny)
			if tentative < n.G {
				n.CameFrom = current
				n.G = tentative
				n.H = octile(nx, ny, endCell.X, endCell.Y)
				if !s.inOpen[ni] {
					s.open = append(s.open, ni)
					s.inOpen[ni] = true
				}
			}
		}
	}
	return false
}

// trace walks CameFrom links from end back to start and returns the cell
// indices in travel order.
func (g *Grid) trace(start, end int, buf []int) []int {
	buf = buf[:0]
	for i := end; i != -1; i = g.cells[i].CameFrom {
		buf = append(buf, i)
		if i == start {
			break
		}
	}
	for l, r := 0, len(buf)-1; l < r; l, r = l+1, r-1 {
		buf[l], buf[r] = buf[r], buf[l]
	}
	return buf
}
