package common

// StepClock reports the elapsed time of the current simulation step.
// The owner sets it once per step before running systems.
type StepClock struct {
	dt float64
}

func NewStepClock(dt float64) *StepClock {
	return &StepClock{dt: dt}
}

func (c *StepClock) DeltaTime() float64 {
	if c == nil {
		return 0
	}
	return c.dt
}

func (c *StepClock) Set(dt float64) {
	if c == nil {
		return
	}
	c.dt = dt
}
