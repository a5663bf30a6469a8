package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Mover scales a MoveIntent into world units per second.
type Mover struct {
	Speed float64
}

var MoverComponent = NewComponent[Mover]()
