package ecs

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/ecs/component"
)

// EntityBody exposes an entity's Transform and BoxCollider as a controller.Body.
type EntityBody struct {
	world  *World
	entity Entity
}

func NewEntityBody(w *World, e Entity) *EntityBody {
	return &EntityBody{world: w, entity: e}
}

// Bounds returns the collider's world box, or an empty box at the origin when
// the entity lacks either component.
func (b *EntityBody) Bounds() cp.BB {
	t, ok := Get(b.world, b.entity, component.TransformComponent.Kind())
	if !ok {
		return cp.BB{}
	}
	c, ok := Get(b.world, b.entity, component.BoxColliderComponent.Kind())
	if !ok {
		return cp.BB{L: t.X, B: t.Y, R: t.X, T: t.Y}
	}
	return c.Bounds(*t)
}

func (b *EntityBody) Translate(delta cp.Vector) {
	t, ok := Get(b.world, b.entity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.X += delta.X
	t.Y += delta.Y
}
