package system

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/younwookim/platformcore/internal/domain/event"
	"github.com/younwookim/platformcore/internal/infrastructure/config"
)

// FeedbackSystem turns combat events into hitstop and screen shake.
type FeedbackSystem struct {
	config *config.FeedbackConfig
	player uuid.UUID
	rng    *rand.Rand

	hitstopFrames int
	shake         float64
}

// NewFeedbackSystem subscribes to bus. Hits taken by player shake the
// screen; hits landed by anyone freeze the simulation briefly.
func NewFeedbackSystem(cfg *config.FeedbackConfig, bus *event.Bus, player uuid.UUID, seed int64) *FeedbackSystem {
	s := &FeedbackSystem{
		config: cfg,
		player: player,
		rng:    rand.New(rand.NewSource(seed)),
	}
	bus.Subscribe(event.KindHitLanded, s.onHitLanded)
	bus.Subscribe(event.KindTookHit, s.onTookHit)
	bus.Subscribe(event.KindDied, s.onDied)
	return s
}

func (s *FeedbackSystem) onHitLanded(event.Event) {
	if s.config.Hitstop.Enabled {
		s.hitstopFrames = max(s.hitstopFrames, s.config.Hitstop.Frames)
	}
}

func (s *FeedbackSystem) onTookHit(e event.Event) {
	if e.Target == s.player {
		s.addShake(s.config.ScreenShake.Intensity)
	}
}

func (s *FeedbackSystem) onDied(event.Event) {
	s.addShake(2 * s.config.ScreenShake.Intensity)
}

func (s *FeedbackSystem) addShake(intensity float64) {
	if s.config.ScreenShake.Enabled {
		s.shake = max(s.shake, intensity)
	}
}

// Frozen reports whether the current frame is a hitstop frame and
// consumes it.
func (s *FeedbackSystem) Frozen() bool {
	if s.hitstopFrames > 0 {
		s.hitstopFrames--
		return true
	}
	return false
}

// Update decays the screen shake. Call once per rendered frame.
func (s *FeedbackSystem) Update() {
	s.shake *= s.config.ScreenShake.Decay
	if s.shake < 0.05 {
		s.shake = 0
	}
}

// ShakeOffset returns a random camera offset within the current intensity.
func (s *FeedbackSystem) ShakeOffset() (x, y float64) {
	if s.shake == 0 {
		return 0, 0
	}
	return s.shake * (2*s.rng.Float64() - 1), s.shake * (2*s.rng.Float64() - 1)
}

// Shake returns the current shake intensity.
func (s *FeedbackSystem) Shake() float64 { return s.shake }
