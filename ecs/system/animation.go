package system

import (
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
)

const defaultFrameTicks = 8

// AnimationSystem picks "run" while an entity intends to move and "idle"
// otherwise, advances the frame counter, and faces the sprite along X while moving.
type AnimationSystem struct{}

func NewAnimationSystem() *AnimationSystem {
	return &AnimationSystem{}
}

func (s *AnimationSystem) Update(w *ecs.World) {
	ecs.ForEach2(w, component.AnimationComponent.Kind(), component.MoveIntentComponent.Kind(), func(e ecs.Entity, anim *component.Animation, intent *component.MoveIntent) {
		next := component.AnimIdle
		if intent.Moving() {
			next = component.AnimRun
		}
		if next != anim.Current {
			anim.Current = next
			anim.Frame = 0
			anim.FrameTimer = 0
		} else {
			ticks := anim.FrameTicks
			if ticks <= 0 {
				ticks = defaultFrameTicks
			}
			anim.FrameTimer++
			if anim.FrameTimer >= ticks {
				anim.FrameTimer = 0
				anim.Frame++
			}
		}

		// Facing only changes while moving; straight up or down counts as left.
		if sprite, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && intent.Moving() {
			sprite.FlipX = intent.X <= 0
		}
	})
}
