package sim

import (
	"github.com/younwookim/platformcore/internal/domain/character"
	"github.com/younwookim/platformcore/internal/infrastructure/physics"
)

// Breakable is a solid tile that any landed attack removes.
type Breakable struct {
	world  *World
	tx, ty int
	body   *physics.Body
	broken bool
}

// TakeHit breaks the tile on the first hit.
func (b *Breakable) TakeHit(character.Hit) bool {
	if b.broken {
		return false
	}
	b.broken = true
	b.world.breakTile(b)
	return true
}

// Broken reports whether the tile is gone.
func (b *Breakable) Broken() bool { return b.broken }

// Tile returns the tile coordinates.
func (b *Breakable) Tile() (tx, ty int) { return b.tx, b.ty }
