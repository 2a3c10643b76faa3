package config

// LevelConfig is the root config for levels/<name>.yaml
type LevelConfig struct {
	ID          string                       `yaml:"id"`
	Name        string                       `yaml:"name"`
	Size        LevelSizeConfig              `yaml:"size"`
	Grid        GridConfig                   `yaml:"grid"`
	PlayerSpawn PositionConfig               `yaml:"playerSpawn"`
	Layers      LayersConfig                 `yaml:"layers"`
	TileMapping map[string]TileMappingConfig `yaml:"tileMapping"`
	Enemies     []EnemySpawnConfig           `yaml:"enemies"`
}

// LevelSizeConfig is measured in world units.
type LevelSizeConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	TileSize int `yaml:"tileSize"`
}

// GridConfig places the navigation grid over the level. Zero width or
// height means the grid covers the whole level.
type GridConfig struct {
	CellSize float64        `yaml:"cellSize"`
	Offset   PositionConfig `yaml:"offset"`
	Width    int            `yaml:"width"`
	Height   int            `yaml:"height"`
}

type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type LayersConfig struct {
	Collision []string `yaml:"collision"`
}

type TileMappingConfig struct {
	Type  string `yaml:"type"`
	Solid bool   `yaml:"solid"`
}

type EnemySpawnConfig struct {
	Type        string  `yaml:"type"`
	X           float64 `yaml:"x"`
	Y           float64 `yaml:"y"`
	FacingRight bool    `yaml:"facingRight"`
}
