package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformcore/internal/domain/entity"
)

func newTestGrid(t *testing.T, w, h int, blockers ...Blocker) *Grid {
	t.Helper()
	g, err := NewGrid(GridConfig{Width: w, Height: h, CellSize: 10}, blockers...)
	require.NoError(t, err)
	return g
}

func TestNewGrid_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  GridConfig
	}{
		{"zero width", GridConfig{Width: 0, Height: 4, CellSize: 1}},
		{"negative height", GridConfig{Width: 4, Height: -1, CellSize: 1}},
		{"zero cell size", GridConfig{Width: 4, Height: 4, CellSize: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGrid(tt.cfg)
			assert.ErrorIs(t, err, ErrInvalidGrid)
		})
	}
}

func TestGrid_CoordinateMapping(t *testing.T) {
	g, err := NewGrid(GridConfig{Width: 8, Height: 6, CellSize: 16, Offset: entity.Vec2{X: -32, Y: 8}})
	require.NoError(t, err)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			cx, cy := g.WorldToCell(g.CellToWorld(x, y))
			assert.Equal(t, x, cx)
			assert.Equal(t, y, cy)
		}
	}

	x, y := g.WorldToCell(entity.Vec2{X: -32, Y: 8})
	assert.Equal(t, [2]int{0, 0}, [2]int{x, y})

	x, y = g.WorldToCell(entity.Vec2{X: -33, Y: 7})
	assert.Equal(t, [2]int{-1, -1}, [2]int{x, y}, "floor, not truncation")
	assert.False(t, g.InBounds(x, y))

	assert.Equal(t, entity.Vec2{X: -24, Y: 16}, g.CellToWorld(0, 0))
}

func TestGrid_Blockers(t *testing.T) {
	wall := RectBlocker(entity.Rect{X: 20, Y: 0, W: 10, H: 30})
	g := newTestGrid(t, 5, 3, wall)

	for y := 0; y < 3; y++ {
		assert.False(t, g.Walkable(2, y))
		assert.True(t, g.Walkable(1, y))
		assert.True(t, g.Walkable(3, y))
	}
	assert.False(t, g.Walkable(-1, 0), "out of bounds")
}

func TestGrid_BlockersFromStage(t *testing.T) {
	stage := &entity.Stage{
		Width: 2, Height: 1, TileSize: 10,
		Tiles: [][]entity.Tile{{{Type: entity.TileEmpty}, {Type: entity.TileWall, Solid: true}}},
	}
	g := newTestGrid(t, 2, 1, BlockersFromStage(stage))

	assert.True(t, g.Walkable(0, 0))
	assert.False(t, g.Walkable(1, 0))
}

func TestGrid_SetWalkableNotifies(t *testing.T) {
	g := newTestGrid(t, 3, 3)

	var changes [][3]int
	g.OnCellChanged(func(x, y int, walkable bool) {
		w := 0
		if walkable {
			w = 1
		}
		changes = append(changes, [3]int{x, y, w})
	})

	assert.True(t, g.SetWalkable(1, 1, false))
	assert.False(t, g.SetWalkable(1, 1, false), "unchanged flag does not notify")
	assert.True(t, g.SetWalkable(1, 1, true))
	assert.False(t, g.SetWalkable(9, 9, false))

	assert.Equal(t, [][3]int{{1, 1, 0}, {1, 1, 1}}, changes)
}
