package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRect_Overlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, W: 10, H: 10}

	tests := []struct {
		name string
		b    Rect
		want bool
	}{
		{"inside", Rect{2, 2, 2, 2}, true},
		{"partial", Rect{5, 5, 10, 10}, true},
		{"touching right edge", Rect{10, 0, 5, 5}, false},
		{"touching bottom edge", Rect{0, 10, 5, 5}, false},
		{"apart", Rect{20, 20, 1, 1}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(a))
		})
	}
}

func TestRect_Mirror(t *testing.T) {
	box := Rect{X: 4, Y: -20, W: 16, H: 12}

	assert.Equal(t, box, box.Mirror(1))
	assert.Equal(t, Rect{X: -20, Y: -20, W: 16, H: 12}, box.Mirror(-1))
}

func TestVec2_Arith(t *testing.T) {
	v := Vec2{3, 4}
	assert.Equal(t, 5.0, v.Len())
	assert.Equal(t, Vec2{6, 8}, v.Scale(2))
	assert.Equal(t, Vec2{4, 6}, v.Add(Vec2{1, 2}))
	assert.Equal(t, 5.0, Vec2{}.Dist(v))
}
