package character

// InputFrame is a plain snapshot of one tick of input. Keyboard, AI and
// replay sources all produce frames.
type InputFrame struct {
	X       float64
	Hold    [actionCount]bool
	Press   [actionCount]bool
	Release [actionCount]bool
}

// Axis returns the horizontal input.
func (f *InputFrame) Axis() float64 { return f.X }

// Held reports whether a is down this tick.
func (f *InputFrame) Held(a Action) bool { return f.Hold[a] }

// Pressed reports whether a went down this tick.
func (f *InputFrame) Pressed(a Action) bool { return f.Press[a] }

// Released reports whether a went up this tick.
func (f *InputFrame) Released(a Action) bool { return f.Release[a] }

// Set records the held state for a and derives edges from the previous tick.
func (f *InputFrame) Set(a Action, held bool) {
	was := f.Hold[a]
	f.Hold[a] = held
	f.Press[a] = held && !was
	f.Release[a] = !held && was
}

// SetAxis clamps x to [-1, 1].
func (f *InputFrame) SetAxis(x float64) {
	f.X = max(-1, min(1, x))
}

// Actions lists every action in a stable order.
func Actions() []Action {
	return []Action{ActionJump, ActionCrouch, ActionDash, ActionAttack}
}
