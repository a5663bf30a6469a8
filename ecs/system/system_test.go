package system

import (
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
	"github.com/milk9111/overhead/controller"
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
	"github.com/milk9111/overhead/ecs/entity"
	"github.com/milk9111/overhead/prefabs"
)

func testSpec() *prefabs.CharacterSpec {
	return &prefabs.CharacterSpec{
		Name:      "tester",
		MoveSpeed: 10,
		Collider:  prefabs.ColliderSpec{Width: 20, Height: 20},
		Controller: prefabs.ControllerSpec{
			ObstacleLayers: prefabs.LayerList{Mask: controller.MaskOf(1)},
			TriggerLayers:  prefabs.LayerList{Mask: controller.MaskOf(2)},
		},
	}
}

func newCharacterWorld(t *testing.T, player bool) (*ecs.World, ecs.Entity) {
	t.Helper()
	pw, err := ecs.NewPhysicsWorld(nil)
	if err != nil {
		t.Fatalf("NewPhysicsWorld: %v", err)
	}
	w := ecs.NewWorld()
	w.SetPhysicsWorld(pw)
	e, err := entity.NewCharacter(w, testSpec(), cp.Vector{}, entity.CharacterOptions{Clock: common.NewStepClock(0.5), Player: player})
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}
	return w, e
}

func keys(pressed ...ebiten.Key) KeySource {
	return func(k ebiten.Key) bool {
		for _, p := range pressed {
			if p == k {
				return true
			}
		}
		return false
	}
}

func TestInputSystem(t *testing.T) {
	tests := []struct {
		name  string
		keys  []ebiten.Key
		wantX float64
		wantY float64
	}{
		{"none", nil, 0, 0},
		{"wasd_up_right", []ebiten.Key{ebiten.KeyW, ebiten.KeyD}, 1, 1},
		{"arrows_down_left", []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyArrowLeft}, -1, -1},
		{"opposites_cancel", []ebiten.Key{ebiten.KeyA, ebiten.KeyD}, 0, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w, e := newCharacterWorld(t, true)
			npc, _ := entity.NewCharacter(w, testSpec(), cp.Vector{X: 100}, entity.CharacterOptions{})

			NewInputSystem(keys(tc.keys...)).Update(w)

			intent, _ := ecs.Get(w, e, component.MoveIntentComponent.Kind())
			if intent.X != tc.wantX || intent.Y != tc.wantY {
				t.Fatalf("expected intent (%v, %v), got (%v, %v)", tc.wantX, tc.wantY, intent.X, intent.Y)
			}
			other, _ := ecs.Get(w, npc, component.MoveIntentComponent.Kind())
			if other.Moving() {
				t.Fatalf("non-player intent should be untouched")
			}
		})
	}
}

func TestCharacterMoveSystem(t *testing.T) {
	w, e := newCharacterWorld(t, true)
	sys := NewCharacterMoveSystem(common.NewStepClock(0.5))

	sys.Update(w)
	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X != 0 || tr.Y != 0 {
		t.Fatalf("idle character moved to (%v, %v)", tr.X, tr.Y)
	}

	intent, _ := ecs.Get(w, e, component.MoveIntentComponent.Kind())
	intent.X, intent.Y = 1, -1
	sys.Update(w)
	if tr.X != 5 || tr.Y != -5 {
		t.Fatalf("expected (5, -5), got (%v, %v)", tr.X, tr.Y)
	}

	cc, _ := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	if v := cc.Controller.Velocity(); v.X != 10 || v.Y != -10 {
		t.Fatalf("expected velocity (10, -10), got %v", v)
	}
}

func TestCharacterMoveSystemStopsAtWalls(t *testing.T) {
	w, e := newCharacterWorld(t, true)
	if _, err := w.PhysicsWorld().AddObstacle(cp.BB{L: 12, B: -50, R: 20, T: 50}, 1); err != nil {
		t.Fatalf("AddObstacle: %v", err)
	}
	intent, _ := ecs.Get(w, e, component.MoveIntentComponent.Kind())
	intent.X = 1

	sys := NewCharacterMoveSystem(common.NewStepClock(0.5))
	sys.Update(w)
	sys.Update(w)

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	if tr.X < 1.99 || tr.X > 2.0001 {
		t.Fatalf("expected to stop at the wall near x=2, got %v", tr.X)
	}
	cc, _ := ecs.Get(w, e, component.CharacterControllerComponent.Kind())
	if !cc.Controller.Collision().Right {
		t.Fatalf("expected right collision")
	}
}

func TestDebugRaysStayBoundedWithoutDraw(t *testing.T) {
	w, e := newCharacterWorld(t, true)
	intent, _ := ecs.Get(w, e, component.MoveIntentComponent.Kind())
	rays, ok := ecs.Get(w, e, component.DebugRaysComponent.Kind())
	if !ok {
		t.Fatalf("characters built without debug still need a ray buffer")
	}
	intent.X = 1

	toggle := NewDebugRaySystem(false)
	steps := ecs.NewScheduler(toggle, NewCharacterMoveSystem(common.NewStepClock(0.5)))
	for i := 0; i < 100; i++ {
		steps.Update(w)
	}
	if len(rays.Rays) != 0 {
		t.Fatalf("expected no recorded rays with debug off, got %d", len(rays.Rays))
	}

	toggle.Enabled = true
	for i := 0; i < 100; i++ {
		steps.Update(w)
		if len(rays.Rays) != controller.DefaultHorizontalRays {
			t.Fatalf("step %d: expected %d rays, got %d", i, controller.DefaultHorizontalRays, len(rays.Rays))
		}
	}

	toggle.Enabled = false
	steps.Update(w)
	if rays.Enabled || len(rays.Rays) != 0 {
		t.Fatalf("turning debug off should stop recording, got %d rays", len(rays.Rays))
	}
}

func TestTriggerSystemPhases(t *testing.T) {
	w, e := newCharacterWorld(t, false)
	pw := w.PhysicsWorld()
	zone, _ := pw.AddTrigger(cp.BB{L: 5, B: -5, R: 15, T: 5}, 2)
	if _, err := pw.AddTrigger(cp.BB{L: -15, B: -5, R: -5, T: 5}, 3); err != nil {
		t.Fatalf("AddTrigger: %v", err)
	}
	sys := NewTriggerSystem()

	phases := func() []ecs.TriggerPhase {
		var out []ecs.TriggerPhase
		for _, evt := range w.Events().Drain() {
			te, ok := evt.Data.(ecs.TriggerEvent)
			if !ok {
				t.Fatalf("unexpected event %+v", evt)
			}
			if te.Shape != zone || te.Layer != 2 || te.Entity != e {
				t.Fatalf("unexpected trigger payload %+v", te)
			}
			out = append(out, te.Phase)
		}
		return out
	}

	sys.Update(w)
	if got := phases(); len(got) != 1 || got[0] != ecs.TriggerEnter {
		t.Fatalf("expected enter, got %v", got)
	}
	sys.Update(w)
	if got := phases(); len(got) != 1 || got[0] != ecs.TriggerStay {
		t.Fatalf("expected stay, got %v", got)
	}

	tr, _ := ecs.Get(w, e, component.TransformComponent.Kind())
	tr.X = 100
	sys.Update(w)
	if got := phases(); len(got) != 1 || got[0] != ecs.TriggerExit {
		t.Fatalf("expected exit, got %v", got)
	}
	sys.Update(w)
	if got := phases(); len(got) != 0 {
		t.Fatalf("expected no events once clear, got %v", got)
	}
}

func TestAnimationSystem(t *testing.T) {
	w, e := newCharacterWorld(t, true)
	sys := NewAnimationSystem()
	intent, _ := ecs.Get(w, e, component.MoveIntentComponent.Kind())
	anim, _ := ecs.Get(w, e, component.AnimationComponent.Kind())
	sprite, _ := ecs.Get(w, e, component.SpriteComponent.Kind())

	steps := []struct {
		name     string
		x, y     float64
		wantAnim string
		wantFlip bool
	}{
		{"idle", 0, 0, component.AnimIdle, false},
		{"run_right", 1, 0, component.AnimRun, false},
		{"run_left", -1, 0, component.AnimRun, true},
		{"idle_keeps_facing", 0, 0, component.AnimIdle, true},
		{"run_right_again", 1, 1, component.AnimRun, false},
		{"straight_up_faces_left", 0, 1, component.AnimRun, true},
	}
	for _, step := range steps {
		intent.X, intent.Y = step.x, step.y
		sys.Update(w)
		if anim.Current != step.wantAnim || sprite.FlipX != step.wantFlip {
			t.Fatalf("%s: got anim %q flip %v", step.name, anim.Current, sprite.FlipX)
		}
	}

	intent.X = 1
	anim.FrameTicks = 2
	anim.Frame = 0
	anim.FrameTimer = 0
	for i := 0; i < 4; i++ {
		sys.Update(w)
	}
	if anim.Frame != 2 {
		t.Fatalf("expected frame 2 after 4 ticks at 2 ticks per frame, got %d", anim.Frame)
	}
}

func TestEventLogSystemKeepsRecent(t *testing.T) {
	w := ecs.NewWorld()
	sys := NewEventLogSystem(false)
	for i := 0; i < maxRecentEvents+3; i++ {
		w.Events().PushTrigger(ecs.TriggerEvent{Phase: ecs.TriggerEnter, Layer: i})
	}
	sys.Update(w)

	recent := sys.Recent()
	if len(recent) != maxRecentEvents {
		t.Fatalf("expected %d lines, got %d", maxRecentEvents, len(recent))
	}
	if !strings.Contains(recent[len(recent)-1], "layer 8") {
		t.Fatalf("expected newest line last, got %q", recent[len(recent)-1])
	}
	if w.Events().Len() != 0 {
		t.Fatalf("expected queue drained")
	}
}

func TestRenderHUD(t *testing.T) {
	w, _ := newCharacterWorld(t, true)
	events := NewEventLogSystem(false)
	w.Events().PushTrigger(ecs.TriggerEvent{Phase: ecs.TriggerExit, Layer: 2})
	events.Update(w)

	hud := NewRenderSystem(events).hud(w)
	for _, want := range []string{"[CollisionState]", "velocity:", "rays: 8/4", "trigger"} {
		if !strings.Contains(hud, want) {
			t.Fatalf("hud missing %q:\n%s", want, hud)
		}
	}
}
