package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/controller"
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
)

// CharacterMoveSystem feeds each character's intent, scaled by its speed and
// the step time, into its controller. Idle characters are not moved, so their
// collision state and velocity keep the last move's values.
type CharacterMoveSystem struct {
	clock controller.Clock
}

func NewCharacterMoveSystem(clock controller.Clock) *CharacterMoveSystem {
	return &CharacterMoveSystem{clock: clock}
}

func (s *CharacterMoveSystem) Update(w *ecs.World) {
	if w == nil || s.clock == nil {
		return
	}
	dt := s.clock.DeltaTime()
	ecs.ForEach3(w,
		component.CharacterControllerComponent.Kind(),
		component.MoveIntentComponent.Kind(),
		component.MoverComponent.Kind(),
		func(_ ecs.Entity, cc *component.CharacterController, intent *component.MoveIntent, mover *component.Mover) {
			if cc.Controller == nil || !intent.Moving() {
				return
			}
			cc.Controller.Move(cp.Vector{
				X: intent.X * mover.Speed * dt,
				Y: intent.Y * mover.Speed * dt,
			})
		})
}
