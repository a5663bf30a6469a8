package component

import "github.com/milk9111/overhead/controller"

// DebugRays holds the rays a controller cast during the current step.
// Rays are only recorded while Enabled is set.
type DebugRays struct {
	Enabled bool
	Rays    []controller.RayCast
}

var DebugRaysComponent = NewComponent[DebugRays]()
