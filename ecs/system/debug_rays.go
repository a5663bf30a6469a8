package system

import (
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
)

// DebugRaySystem starts each step with empty ray buffers and switches
// recording on or off for every character.
type DebugRaySystem struct {
	Enabled bool
}

func NewDebugRaySystem(enabled bool) *DebugRaySystem {
	return &DebugRaySystem{Enabled: enabled}
}

func (s *DebugRaySystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.DebugRaysComponent.Kind(), func(_ ecs.Entity, dr *component.DebugRays) {
		dr.Enabled = s.Enabled
		dr.Rays = dr.Rays[:0]
	})
}
