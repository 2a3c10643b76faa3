package sim

// Animation tracks which clip a character is playing. Rendering reads it;
// the simulation only writes it.
type Animation struct {
	clock *int

	Key     string
	Started int
	Plays   int
}

// Play starts key unless it is already running and restart is false.
func (a *Animation) Play(key string, restart bool) {
	if key == a.Key && !restart {
		return
	}
	a.Key = key
	a.Started = *a.clock
	a.Plays++
}

// Frame returns how many simulation frames the clip has been running.
func (a *Animation) Frame() int { return *a.clock - a.Started }
