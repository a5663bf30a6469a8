package component

// MoveIntent is the per-step desired direction, each axis in [-1, 1].
type MoveIntent struct {
	X float64
	Y float64
}

func (m MoveIntent) Moving() bool {
	return m.X != 0 || m.Y != 0
}

var MoveIntentComponent = NewComponent[MoveIntent]()
