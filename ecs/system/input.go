package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
)

// KeySource reports whether a key is held.
type KeySource func(ebiten.Key) bool

// InputSystem turns WASD and the arrow keys into the player's MoveIntent.
// Up is +Y.
type InputSystem struct {
	keyPressed KeySource
}

// NewInputSystem reads keys from ebiten when keys is nil.
func NewInputSystem(keys KeySource) *InputSystem {
	if keys == nil {
		keys = ebiten.IsKeyPressed
	}
	return &InputSystem{keyPressed: keys}
}

func (i *InputSystem) anyPressed(keys ...ebiten.Key) bool {
	for _, k := range keys {
		if i.keyPressed(k) {
			return true
		}
	}
	return false
}

func (i *InputSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	moveX, moveY := 0.0, 0.0
	if i.anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if i.anyPressed(ebiten.KeyD, ebiten.KeyArrowRight) {
		moveX += 1
	}
	if i.anyPressed(ebiten.KeyW, ebiten.KeyArrowUp) {
		moveY += 1
	}
	if i.anyPressed(ebiten.KeyS, ebiten.KeyArrowDown) {
		moveY -= 1
	}

	ecs.ForEach2(w, component.PlayerTagComponent.Kind(), component.MoveIntentComponent.Kind(), func(_ ecs.Entity, _ *component.PlayerTag, intent *component.MoveIntent) {
		intent.X = moveX
		intent.Y = moveY
	})
}
