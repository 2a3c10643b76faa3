package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

func invalid(what string, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, what, errors.Join(errs...))
}

// Validate checks the physics settings.
func (p *PhysicsConfig) Validate() error {
	var errs []error
	if p.Display.Framerate <= 0 {
		errs = append(errs, fmt.Errorf("framerate must be positive, got %d", p.Display.Framerate))
	}
	if p.Physics.Substeps <= 0 {
		errs = append(errs, fmt.Errorf("substeps must be positive, got %d", p.Physics.Substeps))
	}
	if p.Physics.MaxFallSpeed <= 0 {
		errs = append(errs, errors.New("maxFallSpeed must be positive"))
	}
	if p.Jump.FallMultiplier < 1 {
		errs = append(errs, fmt.Errorf("fallMultiplier must be at least 1, got %v", p.Jump.FallMultiplier))
	}
	return invalid("physics", errs)
}

// Validate checks every archetype's parameters.
func (c CharactersConfig) Validate() error {
	var errs []error
	if _, ok := c["player"]; !ok {
		errs = append(errs, errors.New("missing player archetype"))
	}
	for _, id := range slices.Sorted(maps.Keys(c)) {
		if err := c[id].Params().Validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", id, err))
		}
	}
	return invalid("characters", errs)
}

// Validate checks the level layout and spawns.
func (l *LevelConfig) Validate() error {
	var errs []error
	if l.Size.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("tileSize must be positive, got %d", l.Size.TileSize))
	} else if l.Size.Width < l.Size.TileSize {
		errs = append(errs, fmt.Errorf("width %d is narrower than one tile", l.Size.Width))
	}
	if len(l.Layers.Collision) == 0 {
		errs = append(errs, errors.New("collision layer is empty"))
	}
	if l.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid cellSize must be positive, got %v", l.Grid.CellSize))
	}
	for _, key := range slices.Sorted(maps.Keys(l.TileMapping)) {
		if len([]rune(key)) != 1 {
			errs = append(errs, fmt.Errorf("tile mapping key %q is not a single character", key))
		}
	}
	for i, e := range l.Enemies {
		if strings.TrimSpace(e.Type) == "" {
			errs = append(errs, fmt.Errorf("enemy %d has no type", i))
		}
	}
	return invalid("level "+l.ID, errs)
}

// Validate checks that every enemy archetype a level spawns exists.
func Validate(game *GameConfig, level *LevelConfig) error {
	var errs []error
	for i, e := range level.Enemies {
		if _, ok := game.Characters[e.Type]; !ok {
			errs = append(errs, fmt.Errorf("enemy %d: unknown archetype %q", i, e.Type))
		}
	}
	return invalid("level "+level.ID, errs)
}
