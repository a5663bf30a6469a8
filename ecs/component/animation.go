package component

const (
	AnimIdle = "idle"
	AnimRun  = "run"
)

type Animation struct {
	Current    string
	Frame      int
	FrameTimer int
	// FrameTicks is the number of updates each frame lasts.
	FrameTicks int
}

var AnimationComponent = NewComponent[Animation]()
