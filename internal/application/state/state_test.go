package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Transitions(t *testing.T) {
	cases := []struct {
		from        Session
		toggled     Session
		simulating  bool
		restartable bool
	}{
		{Live, Paused, true, false},
		{Paused, Live, false, false},
		{Dead, Dead, false, true},
	}
	for _, c := range cases {
		t.Run(c.from.String(), func(t *testing.T) {
			assert.Equal(t, c.toggled, c.from.TogglePause())
			assert.Equal(t, c.simulating, c.from.Simulating())
			assert.Equal(t, c.restartable, c.from.Restartable())
		})
	}
}

func TestSession_Caption(t *testing.T) {
	title, hint := Live.Caption()
	assert.Empty(t, title)
	assert.Empty(t, hint)

	title, hint = Paused.Caption()
	assert.Equal(t, "PAUSED", title)
	assert.Contains(t, hint, "ESC")

	title, hint = Dead.Caption()
	assert.Equal(t, "GAME OVER", title)
	assert.Contains(t, hint, "Z")
}

func TestSession_StringOutOfRange(t *testing.T) {
	assert.Equal(t, "dead", Dead.String())
	assert.Equal(t, "session(?)", Session(7).String())
}
