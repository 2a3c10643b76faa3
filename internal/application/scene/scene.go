// Package scene holds the contract between the ebiten host and what it shows.
package scene

import "github.com/hajimehoshi/ebiten/v2"

// Scene is driven by game.Game once per tick and once per frame.
type Scene interface {
	// Update steps the scene. A non-nil next replaces it after OnExit;
	// ebiten.Termination shuts the host down.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter runs before the first Update.
	OnEnter()
	// OnExit flushes recordings and stops watchers.
	OnExit()
}
