package sim

import "github.com/younwookim/platformcore/internal/domain/entity"

// ActorState is the comparable summary of one actor.
type ActorState struct {
	Archetype string      `json:"archetype"`
	State     string      `json:"state"`
	Position  entity.Vec2 `json:"position"`
	Velocity  entity.Vec2 `json:"velocity"`
	Life      int         `json:"life"`
	Facing    float64     `json:"facing"`
}

// Snapshot is the comparable summary of the whole world.
type Snapshot struct {
	Frame   int          `json:"frame"`
	Player  ActorState   `json:"player"`
	Enemies []ActorState `json:"enemies"`
	Broken  int          `json:"broken"`
}

func (a *Actor) state() ActorState {
	return ActorState{
		Archetype: a.Archetype,
		State:     a.State().String(),
		Position:  a.Position(),
		Velocity:  a.Body().Velocity(),
		Life:      a.Life(),
		Facing:    a.Facing(),
	}
}

// Snapshot captures the current state.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Frame:   w.frame,
		Player:  w.player.state(),
		Enemies: make([]ActorState, len(w.enemies)),
	}
	for i, e := range w.enemies {
		s.Enemies[i] = e.state()
	}
	for _, b := range w.breakables {
		if b.broken {
			s.Broken++
		}
	}
	return s
}
