package entity

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
	"github.com/milk9111/overhead/controller"
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
	"github.com/milk9111/overhead/prefabs"
)

func testSpec() *prefabs.CharacterSpec {
	return &prefabs.CharacterSpec{
		Name:      "tester",
		MoveSpeed: 100,
		Layer:     0,
		Collider:  prefabs.ColliderSpec{Width: 20, Height: 20},
		Controller: prefabs.ControllerSpec{
			ObstacleLayers: prefabs.LayerList{Mask: controller.MaskOf(1)},
			TriggerLayers:  prefabs.LayerList{Mask: controller.MaskOf(2)},
		},
	}
}

func testWorld(t *testing.T) *ecs.World {
	t.Helper()
	pw, err := ecs.NewPhysicsWorld(nil)
	if err != nil {
		t.Fatalf("NewPhysicsWorld: %v", err)
	}
	w := ecs.NewWorld()
	w.SetPhysicsWorld(pw)
	return w
}

func TestNewCharacterWiresComponentsAndLayers(t *testing.T) {
	w := testWorld(t)
	e, err := NewCharacter(w, testSpec(), cp.Vector{X: 5, Y: 7}, CharacterOptions{Clock: common.NewStepClock(1), Player: true, DebugRays: true})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}

	for name, has := range map[string]bool{
		"transform":  ecs.Has(w, e, component.TransformComponent.Kind()),
		"collider":   ecs.Has(w, e, component.BoxColliderComponent.Kind()),
		"controller": ecs.Has(w, e, component.CharacterControllerComponent.Kind()),
		"intent":     ecs.Has(w, e, component.MoveIntentComponent.Kind()),
		"mover":      ecs.Has(w, e, component.MoverComponent.Kind()),
		"sprite":     ecs.Has(w, e, component.SpriteComponent.Kind()),
		"animation":  ecs.Has(w, e, component.AnimationComponent.Kind()),
		"contacts":   ecs.Has(w, e, component.TriggerContactsComponent.Kind()),
		"player":     ecs.Has(w, e, component.PlayerTagComponent.Kind()),
		"rays":       ecs.Has(w, e, component.DebugRaysComponent.Kind()),
	} {
		if !has {
			t.Fatalf("missing %s component", name)
		}
	}

	layers := w.PhysicsWorld().Layers()
	if !layers.LayersCollide(0, 2) {
		t.Fatalf("trigger layer should stay enabled")
	}
	if layers.LayersCollide(0, 1) || layers.LayersCollide(0, 0) {
		t.Fatalf("layers outside the trigger mask should be ignored")
	}
	if !layers.LayersCollide(1, 3) {
		t.Fatalf("unrelated pairs must be untouched")
	}

	cc, _ := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	cc.Controller.Move(cp.Vector{X: 1})
	rays, _ := ecs.Get(w, e, component.DebugRaysComponent.Kind())
	if len(rays.Rays) != controller.DefaultHorizontalRays {
		t.Fatalf("expected %d recorded rays, got %d", controller.DefaultHorizontalRays, len(rays.Rays))
	}
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 6 || tr.Y != 7 {
		t.Fatalf("expected transform at (6, 7), got (%v, %v)", tr.X, tr.Y)
	}
}

func TestNewCharacterRecordsRaysOnlyWhenEnabled(t *testing.T) {
	w := testWorld(t)
	e, err := NewCharacter(w, testSpec(), cp.Vector{}, CharacterOptions{Clock: common.NewStepClock(1)})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	rays, ok := ecs.Get(w, e, component.DebugRaysComponent.Kind())
	if !ok || rays.Enabled {
		t.Fatalf("expected a disabled ray buffer, got %+v", rays)
	}

	cc, _ := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	for i := 0; i < 50; i++ {
		cc.Controller.Move(cp.Vector{X: 1})
	}
	if len(rays.Rays) != 0 {
		t.Fatalf("expected no rays while disabled, got %d", len(rays.Rays))
	}

	rays.Enabled = true
	cc.Controller.Move(cp.Vector{X: 1})
	if len(rays.Rays) != controller.DefaultHorizontalRays {
		t.Fatalf("expected %d rays once enabled, got %d", controller.DefaultHorizontalRays, len(rays.Rays))
	}
}

func TestNewCharacterRejectsBadSpecs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*prefabs.CharacterSpec)
		want   error
	}{
		{"zero_collider", func(s *prefabs.CharacterSpec) { s.Collider.Width = 0 }, ErrInvalidCollider},
		{"bad_layer", func(s *prefabs.CharacterSpec) { s.Layer = 40 }, controller.ErrLayerOutOfRange},
		{"bad_skin", func(s *prefabs.CharacterSpec) { s.Controller.SkinWidth = 1 }, controller.ErrSkinWidthOutOfRange},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := testWorld(t)
			spec := testSpec()
			tc.mutate(spec)
			if _, err := NewCharacter(w, spec, cp.Vector{}, CharacterOptions{}); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if n := len(w.Entities()); n != 0 {
				t.Fatalf("expected no entities after failure, got %d", n)
			}
		})
	}

	if _, err := NewCharacter(ecs.NewWorld(), testSpec(), cp.Vector{}, CharacterOptions{}); !errors.Is(err, ErrNoPhysicsWorld) {
		t.Fatalf("expected ErrNoPhysicsWorld, got %v", err)
	}
}

func TestCollisionsBecomeEvents(t *testing.T) {
	w := testWorld(t)
	wall, _ := w.PhysicsWorld().AddObstacle(cp.BB{L: 30, B: -50, R: 40, T: 50}, 1)
	e, err := NewCharacter(w, testSpec(), cp.Vector{}, CharacterOptions{Clock: common.NewStepClock(1)})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	cc, _ := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	cc.Controller.Move(cp.Vector{X: 50})

	events := w.Events().Drain()
	if len(events) != controller.DefaultHorizontalRays {
		t.Fatalf("expected one event per hitting ray, got %d", len(events))
	}
	for _, evt := range events {
		ce, ok := evt.Data.(ecs.CollisionEvent)
		if !ok || evt.Type != ecs.EventCollision {
			t.Fatalf("unexpected event %+v", evt)
		}
		if ce.Entity != e || ce.Hit.Shape != wall {
			t.Fatalf("unexpected collision payload %+v", ce)
		}
	}
}

func TestApplyCharacterSpec(t *testing.T) {
	w := testWorld(t)
	e, err := NewCharacter(w, testSpec(), cp.Vector{}, CharacterOptions{})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	cc, _ := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	layers := w.PhysicsWorld().Layers()

	bad := testSpec()
	bad.Controller.HorizontalRays = 1
	if err := ApplyCharacterSpec(w, e, bad); !errors.Is(err, controller.ErrRayCountOutOfRange) {
		t.Fatalf("expected ErrRayCountOutOfRange, got %v", err)
	}
	if h, _ := cc.Controller.RayCounts(); h != controller.DefaultHorizontalRays {
		t.Fatalf("bad spec changed ray count to %d", h)
	}

	next := testSpec()
	next.MoveSpeed = 50
	next.Collider.Width = 40
	next.Controller.SkinWidth = 0.05
	next.Controller.HorizontalRays = 5
	next.Controller.TriggerLayers = prefabs.LayerList{Mask: controller.MaskOf(3)}
	if err := ApplyCharacterSpec(w, e, next); err != nil {
		t.Fatalf("ApplyCharacterSpec: %v", err)
	}

	if cc.Controller.SkinWidth() != 0.05 {
		t.Fatalf("skin not applied: %v", cc.Controller.SkinWidth())
	}
	if h, v := cc.Controller.RayCounts(); h != 5 || v != controller.DefaultVerticalRays {
		t.Fatalf("rays not applied: %d/%d", h, v)
	}
	if layers.LayersCollide(0, 2) || !layers.LayersCollide(0, 3) {
		t.Fatalf("trigger mask change did not rebind layers")
	}
	if m, _ := ecs.Get(w, e, component.MoverComponent.Kind()); m.Speed != 50 {
		t.Fatalf("speed not applied: %v", m.Speed)
	}
	if got := ecs.NewEntityBody(w, e).Bounds(); got.R-got.L != 40 {
		t.Fatalf("collider not applied: %v", got)
	}

	if err := ApplyCharacterSpec(w, w.CreateEntity(), next); !errors.Is(err, ErrNotACharacter) {
		t.Fatalf("expected ErrNotACharacter, got %v", err)
	}
}

func TestDestroyCharacterReleasesLayers(t *testing.T) {
	w := testWorld(t)
	e, err := NewCharacter(w, testSpec(), cp.Vector{}, CharacterOptions{})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	if !DestroyCharacter(w, e) {
		t.Fatalf("expected destroy to succeed")
	}
	layers := w.PhysicsWorld().Layers()
	for i := 0; i < controller.MaxLayers; i++ {
		if !layers.LayersCollide(0, i) {
			t.Fatalf("layer pair (0, %d) still ignored after destroy", i)
		}
	}
	if DestroyCharacter(w, e) {
		t.Fatalf("second destroy should fail")
	}
}

func TestNewPlayerSpawnsFromPrefab(t *testing.T) {
	w := testWorld(t)
	e, err := NewPlayer(w, "player.yaml", common.NewStepClock(1), false)
	if err != nil {
		t.Fatalf("NewPlayer: %v", err)
	}
	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
		t.Fatalf("player tag missing")
	}
	if _, err := NewPlayer(w, "missing.yaml", nil, false); err == nil {
		t.Fatalf("expected error for a missing prefab")
	}
}
