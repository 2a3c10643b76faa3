package entity

import "math"

// TileType represents the type of a tile
type TileType int

const (
	TileEmpty TileType = iota
	TileWall
	TileBreakable
)

// Tile represents a single tile in the stage
type Tile struct {
	Type  TileType
	Solid bool
}

// Spawn places a character archetype in the stage.
type Spawn struct {
	Archetype   string
	Pos         Vec2
	FacingRight bool
}

// Stage represents the current level's tile data
type Stage struct {
	Width    int
	Height   int
	TileSize int
	Tiles    [][]Tile
	Spawn    Vec2
	Enemies  []Spawn
}

// PixelWidth returns the stage width in world units.
func (s *Stage) PixelWidth() float64 { return float64(s.Width * s.TileSize) }

// PixelHeight returns the stage height in world units.
func (s *Stage) PixelHeight() float64 { return float64(s.Height * s.TileSize) }

// GetTile returns the tile at the given tile coordinates.
// Anything outside the stage reads as a solid wall.
func (s *Stage) GetTile(tx, ty int) Tile {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return Tile{Type: TileWall, Solid: true}
	}
	return s.Tiles[ty][tx]
}

// GetTileAt returns the tile under a world position.
func (s *Stage) GetTileAt(p Vec2) Tile {
	size := float64(s.TileSize)
	return s.GetTile(int(math.Floor(p.X/size)), int(math.Floor(p.Y/size)))
}

// IsSolidAt checks if the tile under a world position is solid
func (s *Stage) IsSolidAt(p Vec2) bool {
	return s.GetTileAt(p).Solid
}

// SetSolid changes a tile's solidity in place. Used by breakable tiles.
func (s *Stage) SetSolid(tx, ty int, solid bool) bool {
	if tx < 0 || tx >= s.Width || ty < 0 || ty >= s.Height {
		return false
	}
	t := &s.Tiles[ty][tx]
	if t.Solid == solid {
		return false
	}
	t.Solid = solid
	if !solid {
		t.Type = TileEmpty
	}
	return true
}

// solidFixed reports a solid tile that can never be removed.
func (s *Stage) solidFixed(x, y int) bool {
	t := s.Tiles[y][x]
	return t.Solid && t.Type != TileBreakable
}

// Breakables returns the tile coordinates of solid breakable tiles.
func (s *Stage) Breakables() [][2]int {
	var out [][2]int
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			if t := s.Tiles[y][x]; t.Solid && t.Type == TileBreakable {
				out = append(out, [2]int{x, y})
			}
		}
	}
	return out
}

// TileRect returns the world box of a tile.
func (s *Stage) TileRect(tx, ty int) Rect {
	size := float64(s.TileSize)
	return Rect{X: float64(tx) * size, Y: float64(ty) * size, W: size, H: size}
}

// SolidRects merges fixed solid tiles into few rectangles: horizontal runs
// first, then runs of equal span are stacked vertically. Breakable tiles are
// left out so they can be removed one by one.
func (s *Stage) SolidRects() []Rect {
	type run struct{ x0, x1, y0, y1 int }
	var open []run
	var done []run

	for y := 0; y < s.Height; y++ {
		var rowRuns []run
		for x := 0; x < s.Width; {
			if !s.solidFixed(x, y) {
				x++
				continue
			}
			start := x
			for x < s.Width && s.solidFixed(x, y) {
				x++
			}
			rowRuns = append(rowRuns, run{x0: start, x1: x, y0: y, y1: y + 1})
		}

		var next []run
		for _, r := range rowRuns {
			merged := false
			for i, o := range open {
				if o.x0 == r.x0 && o.x1 == r.x1 && o.y1 == y {
					open[i].y1 = y + 1
					next = append(next, open[i])
					open[i].x1 = -1
					merged = true
					break
				}
			}
			if !merged {
				next = append(next, r)
			}
		}
		for _, o := range open {
			if o.x1 >= 0 {
				done = append(done, o)
			}
		}
		open = next
	}
	done = append(done, open...)

	size := float64(s.TileSize)
	rects := make([]Rect, 0, len(done))
	for _, r := range done {
		rects = append(rects, Rect{
			X: float64(r.x0) * size,
			Y: float64(r.y0) * size,
			W: float64(r.x1-r.x0) * size,
			H: float64(r.y1-r.y0) * size,
		})
	}
	return rects
}
