package system

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/younwookim/platformcore/internal/domain/event"
	"github.com/younwookim/platformcore/internal/infrastructure/config"
)

func createTestFeedbackConfig() *config.FeedbackConfig {
	return &config.FeedbackConfig{
		Hitstop:     config.HitstopConfig{Enabled: true, Frames: 3},
		ScreenShake: config.ScreenShakeConfig{Enabled: true, Intensity: 4, Decay: 0.5},
	}
}

func TestFeedbackSystem_Hitstop(t *testing.T) {
	bus := event.NewBus()
	sys := NewFeedbackSystem(createTestFeedbackConfig(), bus, uuid.New(), 1)

	assert.False(t, sys.Frozen())

	bus.Emit(event.Event{Kind: event.KindHitLanded})
	for i := 0; i < 3; i++ {
		assert.True(t, sys.Frozen(), "frame %d", i)
	}
	assert.False(t, sys.Frozen())
}

func TestFeedbackSystem_ShakeOnlyForPlayer(t *testing.T) {
	bus := event.NewBus()
	player := uuid.New()
	sys := NewFeedbackSystem(createTestFeedbackConfig(), bus, player, 1)

	bus.Emit(event.Event{Kind: event.KindTookHit, Target: uuid.New()})
	assert.Zero(t, sys.Shake())

	bus.Emit(event.Event{Kind: event.KindTookHit, Target: player})
	assert.Equal(t, 4.0, sys.Shake())

	x, y := sys.ShakeOffset()
	assert.LessOrEqual(t, x, 4.0)
	assert.GreaterOrEqual(t, y, -4.0)

	sys.Update()
	assert.Equal(t, 2.0, sys.Shake())
	for i := 0; i < 10; i++ {
		sys.Update()
	}
	assert.Zero(t, sys.Shake())
	x, y = sys.ShakeOffset()
	assert.Zero(t, x)
	assert.Zero(t, y)
}

func TestFeedbackSystem_Disabled(t *testing.T) {
	bus := event.NewBus()
	sys := NewFeedbackSystem(&config.FeedbackConfig{}, bus, uuid.New(), 1)

	bus.Emit(event.Event{Kind: event.KindHitLanded})
	bus.Emit(event.Event{Kind: event.KindDied})
	assert.False(t, sys.Frozen())
	assert.Zero(t, sys.Shake())
}
