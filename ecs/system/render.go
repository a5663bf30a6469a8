package system

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/ecs"
	"github.com/milk9111/overhead/ecs/component"
	"golang.org/x/image/colornames"
)

var (
	triggerFill = color.RGBA{R: 255, G: 215, A: 56}
	moveRay     = colornames.Red
	probeRay    = colornames.Deepskyblue
)

// RenderSystem draws level shapes, characters, and in debug mode the physics
// outlines, cast rays, and a HUD.
type RenderSystem struct {
	Debug  bool
	events *EventLogSystem
}

func NewRenderSystem(events *EventLogSystem) *RenderSystem {
	return &RenderSystem{events: events}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if w == nil || screen == nil {
		return
	}
	screenH := float64(screen.Bounds().Dy())
	screen.Fill(colornames.Midnightblue)

	if pw := w.PhysicsWorld(); pw != nil {
		for _, shape := range pw.Shapes() {
			clr := color.Color(colornames.Slategray)
			if shape.Sensor() {
				clr = triggerFill
			}
			fillBB(screen, shape.BB(), screenH, clr)
		}
	}

	ecs.ForEach3(w,
		component.TransformComponent.Kind(),
		component.BoxColliderComponent.Kind(),
		component.SpriteComponent.Kind(),
		func(e ecs.Entity, t *component.Transform, c *component.BoxCollider, s *component.Sprite) {
			bb := c.Bounds(*t)
			if anim, ok := ecs.Get(w, e, component.AnimationComponent.Kind()); ok && anim.Current == component.AnimRun && anim.Frame%2 == 1 {
				bb = bb.Offset(cp.Vector{Y: 1})
			}
			clr := s.Color
			if clr == nil {
				clr = colornames.Crimson
			}
			fillBB(screen, bb, screenH, clr)

			// A stripe on the leading edge shows facing.
			eye := cp.BB{L: bb.R - 4, B: bb.T - 8, R: bb.R - 2, T: bb.T - 4}
			if s.FlipX {
				eye = cp.BB{L: bb.L + 2, B: bb.T - 8, R: bb.L + 4, T: bb.T - 4}
			}
			fillBB(screen, eye, screenH, colornames.White)
		})

	if !r.Debug {
		return
	}
	if pw := w.PhysicsWorld(); pw != nil {
		DrawPhysicsDebug(pw.Space(), screen)
	}
	r.drawRays(w, screen, screenH)
	ebitenutil.DebugPrint(screen, r.hud(w))
}

func (r *RenderSystem) drawRays(w *ecs.World, screen *ebiten.Image, screenH float64) {
	ecs.ForEach(w, component.DebugRaysComponent.Kind(), func(_ ecs.Entity, dr *component.DebugRays) {
		for _, ray := range dr.Rays {
			clr := moveRay
			if ray.Probe {
				clr = probeRay
			}
			x1, y1 := worldToScreen(ray.Origin, screenH)
			x2, y2 := worldToScreen(ray.Origin.Add(ray.Direction.Mult(ray.Distance)), screenH)
			vector.StrokeLine(screen, x1, y1, x2, y2, 1, clr, false)
		}
	})
}

func (r *RenderSystem) hud(w *ecs.World) string {
	var b strings.Builder
	if player, ok := w.First(component.PlayerTagComponent.Kind()); ok {
		if cc, ok := ecs.Get(w, player, component.CharacterControllerComponent.Kind()); ok && cc.Controller != nil {
			ctrl := cc.Controller
			h, v := ctrl.RayCounts()
			fmt.Fprintf(&b, "%s\n", ctrl.Collision())
			fmt.Fprintf(&b, "velocity: %.1f, %.1f\n", ctrl.Velocity().X, ctrl.Velocity().Y)
			fmt.Fprintf(&b, "skin: %.3f rays: %d/%d\n", ctrl.SkinWidth(), h, v)
		}
	}
	if r.events != nil {
		for _, line := range r.events.Recent() {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func fillBB(screen *ebiten.Image, bb cp.BB, screenH float64, clr color.Color) {
	x, y := worldToScreen(cp.Vector{X: bb.L, Y: bb.T}, screenH)
	vector.FillRect(screen, x, y, float32(bb.R-bb.L), float32(bb.T-bb.B), clr, false)
}
