// Package state tracks where a sandbox session is between level loads.
package state

// Session is the sandbox session phase. The zero value is Live.
type Session uint8

const (
	Live Session = iota
	Paused
	Dead
)

var sessionNames = [...]string{Live: "live", Paused: "paused", Dead: "dead"}

func (s Session) String() string {
	if int(s) < len(sessionNames) {
		return sessionNames[s]
	}
	return "session(?)"
}

// Simulating reports whether world steps run.
func (s Session) Simulating() bool { return s == Live }

// TogglePause flips between Live and Paused. A dead session stays dead.
func (s Session) TogglePause() Session {
	switch s {
	case Live:
		return Paused
	case Paused:
		return Live
	}
	return s
}

// Restartable reports whether a restart key rebuilds the level.
func (s Session) Restartable() bool { return s == Dead }

// Caption is the overlay headline and key hint, empty while live.
func (s Session) Caption() (title, hint string) {
	switch s {
	case Paused:
		return "PAUSED", "Press ESC to resume"
	case Dead:
		return "GAME OVER", "Press Z to restart"
	}
	return "", ""
}
