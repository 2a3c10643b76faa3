package system

import (
	"math"

	"github.com/younwookim/platformcore/internal/domain/entity"
	"github.com/younwookim/platformcore/internal/domain/navigation"
	"github.com/younwookim/platformcore/internal/infrastructure/config"
)

// LoadStage converts a LevelConfig into a Stage entity
func LoadStage(cfg *config.LevelConfig) *entity.Stage {
	tileWidth := cfg.Size.Width / cfg.Size.TileSize
	tileHeight := len(cfg.Layers.Collision)

	tiles := make([][]entity.Tile, tileHeight)
	for y, row := range cfg.Layers.Collision {
		tiles[y] = make([]entity.Tile, tileWidth)
		x := 0
		for _, char := range row {
			if x >= tileWidth {
				break
			}
			mapping, ok := cfg.TileMapping[string(char)]
			if ok {
				tiles[y][x] = entity.Tile{Type: tileType(mapping.Type), Solid: mapping.Solid}
			}
			x++
		}
	}

	enemies := make([]entity.Spawn, len(cfg.Enemies))
	for i, e := range cfg.Enemies {
		enemies[i] = entity.Spawn{
			Archetype:   e.Type,
			Pos:         entity.Vec2{X: e.X, Y: e.Y},
			FacingRight: e.FacingRight,
		}
	}

	return &entity.Stage{
		Width:    tileWidth,
		Height:   tileHeight,
		TileSize: cfg.Size.TileSize,
		Tiles:    tiles,
		Spawn:    entity.Vec2{X: cfg.PlayerSpawn.X, Y: cfg.PlayerSpawn.Y},
		Enemies:  enemies,
	}
}

func tileType(name string) entity.TileType {
	switch name {
	case "wall":
		return entity.TileWall
	case "breakable":
		return entity.TileBreakable
	default:
		return entity.TileEmpty
	}
}

// LoadGrid builds the navigation grid for a level. A zero grid size covers
// the whole stage.
func LoadGrid(cfg *config.LevelConfig, stage *entity.Stage) (*navigation.Grid, error) {
	size := cfg.Grid.CellSize
	width, height := cfg.Grid.Width, cfg.Grid.Height
	if width == 0 {
		width = int(math.Ceil((stage.PixelWidth() - cfg.Grid.Offset.X) / size))
	}
	if height == 0 {
		height = int(math.Ceil((stage.PixelHeight() - cfg.Grid.Offset.Y) / size))
	}
	return navigation.NewGrid(navigation.GridConfig{
		Width:    width,
		Height:   height,
		CellSize: size,
		Offset:   entity.Vec2{X: cfg.Grid.Offset.X, Y: cfg.Grid.Offset.Y},
	}, navigation.BlockersFromStage(stage))
}
