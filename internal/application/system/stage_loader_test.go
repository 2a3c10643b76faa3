package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/navigation"
	"github.com/younwookim/platformcore/internal/infrastructure/config"
)

func createTestLevel(rows ...string) *config.LevelConfig {
	return &config.LevelConfig{
		ID:          "test",
		Size:        config.LevelSizeConfig{Width: 16 * len(rows[0]), Height: 16 * len(rows), TileSize: 16},
		Grid:        config.GridConfig{CellSize: 16},
		PlayerSpawn: config.PositionConfig{X: 24, Y: 32},
		Layers:      config.LayersConfig{Collision: rows},
		TileMapping: map[string]config.TileMappingConfig{
			"#": {Type: "wall", Solid: true},
			"=": {Type: "breakable", Solid: true},
			".": {Type: "empty", Solid: false},
		},
	}
}

func TestLoadStage(t *testing.T) {
	t.Run("loads basic stage", func(t *testing.T) {
		cfg := createTestLevel(
			"###",
			"#.#",
			"###",
		)
		cfg.Enemies = []config.EnemySpawnConfig{{Type: "knight", X: 40, Y: 32, FacingRight: true}}

		stage := LoadStage(cfg)

		require.NotNil(t, stage)
		assert.Equal(t, 3, stage.Width)
		assert.Equal(t, 3, stage.Height)
		assert.Equal(t, 16, stage.TileSize)
		assert.Equal(t, entity.Vec2{X: 24, Y: 32}, stage.Spawn)
		require.Len(t, stage.Enemies, 1)
		assert.Equal(t, entity.Spawn{Archetype: "knight", Pos: entity.Vec2{X: 40, Y: 32}, FacingRight: true}, stage.Enemies[0])
	})

	t.Run("maps tile types", func(t *testing.T) {
		stage := LoadStage(createTestLevel("#=.?"))

		tests := []struct {
			x     int
			typ   entity.TileType
			solid bool
		}{
			{0, entity.TileWall, true},
			{1, entity.TileBreakable, true},
			{2, entity.TileEmpty, false},
			{3, entity.TileEmpty, false},
		}
		for _, tt := range tests {
			tile := stage.GetTile(tt.x, 0)
			assert.Equal(t, tt.typ, tile.Type, "x=%d", tt.x)
			assert.Equal(t, tt.solid, tile.Solid, "x=%d", tt.x)
		}
	})

	t.Run("handles row longer than width", func(t *testing.T) {
		cfg := createTestLevel("####")
		cfg.Size.Width = 32

		stage := LoadStage(cfg)

		assert.Equal(t, 2, stage.Width)
		assert.Equal(t, 1, stage.Height)
	})

	t.Run("short rows pad with empty tiles", func(t *testing.T) {
		cfg := createTestLevel("###", "#")
		stage := LoadStage(cfg)

		assert.True(t, stage.GetTile(0, 1).Solid)
		assert.False(t, stage.GetTile(2, 1).Solid)
	})
}

func TestLoadGrid(t *testing.T) {
	cfg := createTestLevel(
		"#####",
		"#...#",
		"#####",
	)
	stage := LoadStage(cfg)

	grid, err := LoadGrid(cfg, stage)
	require.NoError(t, err)
	assert.Equal(t, 5, grid.Width())
	assert.Equal(t, 3, grid.Height())
	assert.False(t, grid.Walkable(0, 0))
	assert.True(t, grid.Walkable(2, 1))

	cfg.Grid.CellSize = 8
	fine, err := LoadGrid(cfg, stage)
	require.NoError(t, err)
	assert.Equal(t, 10, fine.Width())
	assert.Equal(t, 6, fine.Height())

	cfg.Grid.CellSize = 0
	_, err = LoadGrid(cfg, stage)
	assert.ErrorIs(t, err, navigation.ErrInvalidGrid)
}

func TestLoadDemoLevel(t *testing.T) {
	loader := config.NewLoader("../../../cmd/game/configs")
	cfg, err := loader.LoadLevel("demo")
	require.NoError(t, err)

	stage := LoadStage(cfg)
	assert.Equal(t, 40, stage.Width)
	assert.Equal(t, 15, stage.Height)
	assert.NotEmpty(t, stage.Breakables())
	assert.False(t, stage.IsSolidAt(stage.Spawn.Add(entity.Vec2{Y: -1})), "spawn stands in open space")
	assert.True(t, stage.IsSolidAt(stage.Spawn.Add(entity.Vec2{Y: 1})), "spawn stands on ground")

	grid, err := LoadGrid(cfg, stage)
	require.NoError(t, err)
	assert.Equal(t, 40, grid.Width())
}
