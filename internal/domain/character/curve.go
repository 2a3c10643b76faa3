package character

// Keyframe is one point of a response curve.
type Keyframe struct {
	T float64
	V float64
}

// Curve maps normalized progress to a speed factor. Keys must be sorted by
// T. An empty curve evaluates to 1.
type Curve []Keyframe

// Eval interpolates linearly between keys and clamps outside them.
func (c Curve) Eval(t float64) float64 {
	switch {
	case len(c) == 0:
		return 1
	case t <= c[0].T:
		return c[0].V
	case t >= c[len(c)-1].T:
		return c[len(c)-1].V
	}
	for i := 1; i < len(c); i++ {
		a, b := c[i-1], c[i]
		if t > b.T {
			continue
		}
		span := b.T - a.T
		if span <= 0 {
			return b.V
		}
		return a.V + (b.V-a.V)*(t-a.T)/span
	}
	return c[len(c)-1].V
}

// Sorted reports whether keys are in ascending T order.
func (c Curve) Sorted() bool {
	for i := 1; i < len(c); i++ {
		if c[i].T < c[i-1].T {
			return false
		}
	}
	return true
}
