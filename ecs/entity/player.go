package entity

import (
	"errors"
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/controller"
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
	"github.com/milk9111/overhead/prefabs"
)

var (
	ErrNilWorld        = errors.New("entity: world is nil")
	ErrNoPhysicsWorld  = errors.New("entity: world has no physics world")
	ErrInvalidCollider = errors.New("entity: collider must have a positive size")
	ErrNotACharacter   = errors.New("entity: entity has no character controller")
)

// CharacterOptions controls how NewCharacter wires the entity.
type CharacterOptions struct {
	Clock controller.Clock
	// Player tags the entity so InputSystem drives it.
	Player bool
	// DebugRays turns ray recording on from the first step.
	DebugRays bool
}

// NewPlayer builds the player character from a prefab at the level spawn, or
// at the origin when the physics world has no level.
func NewPlayer(w *ecs.World, prefab string, clock controller.Clock, debugRays bool) (ecs.Entity, error) {
	spec, err := prefabs.LoadCharacterSpec(prefab)
	if err != nil {
		return 0, fmt.Errorf("player: %w", err)
	}
	var spawn cp.Vector
	if pw := w.PhysicsWorld(); pw != nil && pw.Level() != nil {
		spawn = pw.Level().SpawnPosition()
	}
	return NewCharacter(w, spec, spawn, CharacterOptions{Clock: clock, Player: true, DebugRays: debugRays})
}

// NewCharacter creates a character entity centered at pos, builds its
// controller against the world's physics, binds its layer, and forwards the
// controller's callbacks into the world's event queue.
func NewCharacter(w *ecs.World, spec *prefabs.CharacterSpec, pos cp.Vector, opts CharacterOptions) (ecs.Entity, error) {
	if w == nil {
		return 0, ErrNilWorld
	}
	pw := w.PhysicsWorld()
	if pw == nil {
		return 0, ErrNoPhysicsWorld
	}
	cfg, err := validateSpec(spec)
	if err != nil {
		return 0, err
	}

	e := w.CreateEntity()
	fail := func(err error) (ecs.Entity, error) {
		w.DestroyEntity(e)
		return 0, fmt.Errorf("%s: %w", spec.Name, err)
	}

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      pos.X,
		Y:      pos.Y,
		ScaleX: spec.Collider.ScaleX,
		ScaleY: spec.Collider.ScaleY,
	}); err != nil {
		return fail(err)
	}
	if err := ecs.Add(w, e, component.BoxColliderComponent.Kind(), colliderFromSpec(spec)); err != nil {
		return fail(err)
	}

	ctrl, err := controller.New(ecs.NewEntityBody(w, e), pw, opts.Clock, cfg)
	if err != nil {
		return fail(err)
	}
	if err := ctrl.BindLayers(pw.Layers(), spec.Layer); err != nil {
		return fail(err)
	}
	forwardEvents(w, e, pw, ctrl)

	rest := []func() error{
		func() error {
			return ecs.Add(w, e, component.CharacterControllerComponent.Kind(), &component.CharacterController{Controller: ctrl, Layer: spec.Layer})
		},
		func() error { return ecs.Add(w, e, component.MoveIntentComponent.Kind(), &component.MoveIntent{}) },
		func() error {
			return ecs.Add(w, e, component.MoverComponent.Kind(), &component.Mover{Speed: spec.MoveSpeed})
		},
		func() error { return ecs.Add(w, e, component.SpriteComponent.Kind(), spriteFromSpec(spec)) },
		func() error {
			return ecs.Add(w, e, component.AnimationComponent.Kind(), &component.Animation{Current: component.AnimIdle})
		},
		func() error {
			return ecs.Add(w, e, component.TriggerContactsComponent.Kind(), &component.TriggerContacts{})
		},
	}
	if opts.Player {
		rest = append(rest, func() error {
			return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
		})
	}
	rays := &component.DebugRays{Enabled: opts.DebugRays}
	ctrl.OnRayCast(func(rc controller.RayCast) {
		if rays.Enabled {
			rays.Rays = append(rays.Rays, rc)
		}
	})
	rest = append(rest, func() error { return ecs.Add(w, e, component.DebugRaysComponent.Kind(), rays) })
	for _, add := range rest {
		if err := add(); err != nil {
			ctrl.UnbindLayers()
			return fail(err)
		}
	}

	log.Printf("Entity: built character %q as %s on layer %d at %v", spec.Name, e, spec.Layer, pos)
	return e, nil
}

func forwardEvents(w *ecs.World, e ecs.Entity, pw *ecs.PhysicsWorld, ctrl *controller.CharacterController2D) {
	ctrl.OnControllerCollided(func(hit controller.RaycastHit) {
		w.Events().PushCollision(ecs.CollisionEvent{Entity: e, Hit: hit})
	})
	trigger := func(phase ecs.TriggerPhase) func(*cp.Shape) {
		return func(shape *cp.Shape) {
			layer, _ := pw.LayerOf(shape)
			w.Events().PushTrigger(ecs.TriggerEvent{Entity: e, Phase: phase, Shape: shape, Layer: layer})
		}
	}
	ctrl.OnTriggerEnter(trigger(ecs.TriggerEnter))
	ctrl.OnTriggerStay(trigger(ecs.TriggerStay))
	ctrl.OnTriggerExit(trigger(ecs.TriggerExit))
}

func validateSpec(spec *prefabs.CharacterSpec) (controller.Config, error) {
	if spec.Collider.Width <= 0 || spec.Collider.Height <= 0 {
		return controller.Config{}, fmt.Errorf("%s: %w", spec.Name, ErrInvalidCollider)
	}
	if spec.Layer < 0 || spec.Layer >= controller.MaxLayers {
		return controller.Config{}, fmt.Errorf("%s: %w: %d", spec.Name, controller.ErrLayerOutOfRange, spec.Layer)
	}
	cfg, err := spec.Controller.Config()
	if err != nil {
		return controller.Config{}, fmt.Errorf("%s: %w", spec.Name, err)
	}
	return cfg, nil
}

func colliderFromSpec(spec *prefabs.CharacterSpec) *component.BoxCollider {
	return &component.BoxCollider{
		Width:   spec.Collider.Width,
		Height:  spec.Collider.Height,
		OffsetX: spec.Collider.OffsetX,
		OffsetY: spec.Collider.OffsetY,
	}
}

func spriteFromSpec(spec *prefabs.CharacterSpec) *component.Sprite {
	s := &component.Sprite{}
	if spec.Sprite.Color != nil {
		s.Color = spec.Sprite.Color.Color
	}
	return s
}

// ApplyCharacterSpec pushes a reloaded spec onto a live character. The
// controller config is validated first so a bad spec leaves the character
// untouched. A changed layer or trigger mask rebinds the layer matrix.
func ApplyCharacterSpec(w *ecs.World, e ecs.Entity, spec *prefabs.CharacterSpec) error {
	cc, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	if !ok || cc.Controller == nil {
		return ErrNotACharacter
	}
	cfg, err := validateSpec(spec)
	if err != nil {
		return err
	}

	ctrl := cc.Controller
	if err := ctrl.SetSkinWidth(cfg.SkinWidth); err != nil {
		return err
	}
	if err := ctrl.SetRayCounts(cfg.HorizontalRays, cfg.VerticalRays); err != nil {
		return err
	}
	ctrl.SetObstacleMask(cfg.ObstacleMask)

	if cfg.TriggerMask != ctrl.TriggerMask() || spec.Layer != cc.Layer {
		table := w.PhysicsWorld().Layers()
		ctrl.UnbindLayers()
		ctrl.SetTriggerMask(cfg.TriggerMask)
		if err := ctrl.BindLayers(table, spec.Layer); err != nil {
			return err
		}
		cc.Layer = spec.Layer
	}

	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		t.ScaleX = spec.Collider.ScaleX
		t.ScaleY = spec.Collider.ScaleY
	}
	if c, ok := ecs.Get(w, e, component.BoxColliderComponent.Kind()); ok {
		*c = *colliderFromSpec(spec)
	}
	if m, ok := ecs.Get(w, e, component.MoverComponent.Kind()); ok {
		m.Speed = spec.MoveSpeed
	}
	if s, ok := ecs.Get(w, e, component.SpriteComponent.Kind()); ok && spec.Sprite.Color != nil {
		s.Color = spec.Sprite.Color.Color
	}
	return nil
}

// DestroyCharacter releases the character's layer bindings and removes it.
func DestroyCharacter(w *ecs.World, e ecs.Entity) bool {
	if cc, ok := ecs.Get(w, e, component.CharacterControllerComponent.Kind()); ok && cc.Controller != nil {
		cc.Controller.UnbindLayers()
	}
	return w.DestroyEntity(e)
}
