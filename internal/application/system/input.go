package system

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/platformcore/internal/domain/character"
)

// KeyState reports whether a key is held.
type KeyState func(ebiten.Key) bool

// Bindings maps each action to the keys that trigger it.
type Bindings struct {
	Left    []ebiten.Key
	Right   []ebiten.Key
	Actions map[character.Action][]ebiten.Key
}

// DefaultBindings returns the keyboard layout used by the sandbox.
func DefaultBindings() Bindings {
	return Bindings{
		Left:  []ebiten.Key{ebiten.KeyA, ebiten.KeyArrowLeft},
		Right: []ebiten.Key{ebiten.KeyD, ebiten.KeyArrowRight},
		Actions: map[character.Action][]ebiten.Key{
			character.ActionJump:   {ebiten.KeyW, ebiten.KeySpace},
			character.ActionCrouch: {ebiten.KeyS, ebiten.KeyArrowDown},
			character.ActionDash:   {ebiten.KeyShiftLeft, ebiten.KeyK},
			character.ActionAttack: {ebiten.KeyJ},
		},
	}
}

// InputSystem handles player input
type InputSystem struct {
	bindings Bindings
	pressed  KeyState
	frame    character.InputFrame
}

// NewInputSystem creates an input system reading the ebiten keyboard.
func NewInputSystem(b Bindings) *InputSystem {
	return NewInputSystemWith(b, ebiten.IsKeyPressed)
}

// NewInputSystemWith reads keys through pressed.
func NewInputSystemWith(b Bindings, pressed KeyState) *InputSystem {
	return &InputSystem{bindings: b, pressed: pressed}
}

// Frame returns the frame the player character reads from.
func (s *InputSystem) Frame() *character.InputFrame { return &s.frame }

// Poll samples the keyboard into the frame. Call it once per logic tick.
func (s *InputSystem) Poll() character.InputFrame {
	axis := 0.0
	if s.any(s.bindings.Left) {
		axis--
	}
	if s.any(s.bindings.Right) {
		axis++
	}
	s.frame.SetAxis(axis)

	for _, a := range character.Actions() {
		s.frame.Set(a, s.any(s.bindings.Actions[a]))
	}
	return s.frame
}

func (s *InputSystem) any(keys []ebiten.Key) bool {
	for _, k := range keys {
		if s.pressed(k) {
			return true
		}
	}
	return false
}
