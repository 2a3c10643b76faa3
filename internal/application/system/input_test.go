package system

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"

	"github.com/younwookim/platformcore/internal/domain/character"
)

type keyboard map[ebiten.Key]bool

func (k keyboard) pressed(key ebiten.Key) bool { return k[key] }

func TestInputSystem_Axis(t *testing.T) {
	tests := []struct {
		name string
		keys keyboard
		want float64
	}{
		{"none", keyboard{}, 0},
		{"left", keyboard{ebiten.KeyA: true}, -1},
		{"right arrow", keyboard{ebiten.KeyArrowRight: true}, 1},
		{"both cancel", keyboard{ebiten.KeyA: true, ebiten.KeyD: true}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sys := NewInputSystemWith(DefaultBindings(), tt.keys.pressed)
			frame := sys.Poll()
			assert.Equal(t, tt.want, frame.Axis())
		})
	}
}

func TestInputSystem_Edges(t *testing.T) {
	keys := keyboard{}
	sys := NewInputSystemWith(DefaultBindings(), keys.pressed)
	frame := sys.Frame()

	keys[ebiten.KeySpace] = true
	sys.Poll()
	assert.True(t, frame.Pressed(character.ActionJump))
	assert.True(t, frame.Held(character.ActionJump))

	sys.Poll()
	assert.False(t, frame.Pressed(character.ActionJump), "press is a single-tick edge")
	assert.True(t, frame.Held(character.ActionJump))

	keys[ebiten.KeySpace] = false
	sys.Poll()
	assert.True(t, frame.Released(character.ActionJump))
	assert.False(t, frame.Held(character.ActionJump))
}

func TestInputSystem_AllActionsBound(t *testing.T) {
	b := DefaultBindings()
	for _, a := range character.Actions() {
		assert.NotEmpty(t, b.Actions[a], a.String())
	}
}
