package controller

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
)

// Move attempts to translate the body by delta, stopping at any obstacle in the
// way, and returns the displacement actually applied. Horizontal movement is
// resolved before vertical movement.
func (c *CharacterController2D) Move(delta cp.Vector) cp.Vector {
	c.collision.Reset()
	c.hits = c.hits[:0]

	bounds := c.body.Bounds()
	c.refreshSpacing(bounds)
	c.origins = PrimeRaycastOrigins(bounds, c.cfg.SkinWidth)

	if delta.X != 0 {
		c.moveHorizontally(&delta)
	}
	if delta.Y != 0 {
		c.moveVertically(&delta)
	}

	c.body.Translate(delta)

	if dt := c.deltaTime(); dt > 0 {
		c.velocity = cp.Vector{X: delta.X / dt, Y: delta.Y / dt}
	}

	for _, hit := range c.hits {
		for _, fn := range c.collidedListeners {
			fn(hit)
		}
	}
	return delta
}

func (c *CharacterController2D) deltaTime() float64 {
	if c.clock == nil {
		return 0
	}
	return c.clock.DeltaTime()
}

func (c *CharacterController2D) moveHorizontally(delta *cp.Vector) {
	goingRight := delta.X > 0
	origin, dir := c.origins.BottomLeft, vecLeft
	if goingRight {
		origin, dir = c.origins.BottomRight, vecRight
	}
	step := cp.Vector{Y: c.verticalDistanceBetweenRays}

	d, hit := c.sweep(delta.X, origin, dir, step, c.cfg.HorizontalRays)
	delta.X = d
	if !hit {
		return
	}
	if goingRight {
		c.collision.Right = true
	} else {
		c.collision.Left = true
	}
}

func (c *CharacterController2D) moveVertically(delta *cp.Vector) {
	goingUp := delta.Y > 0
	origin, dir := c.origins.BottomLeft, vecDown
	if goingUp {
		origin, dir = c.origins.TopLeft, vecUp
	}
	// cast from where the horizontal pass leaves the box so corners cannot be cut
	origin.X += delta.X
	step := cp.Vector{X: c.horizontalDistanceBetweenRays}

	d, hit := c.sweep(delta.Y, origin, dir, step, c.cfg.VerticalRays)
	delta.Y = d
	if !hit {
		return
	}
	if goingUp {
		c.collision.Above = true
	} else {
		c.collision.Below = true
	}
}

// sweep casts count rays along dir from origin, origin+step, origin+2*step...
// and returns d clamped to the obstacles it finds. Each hit overwrites d and
// shortens the remaining rays, so the last ray to hit wins unless a hit lands
// within the skin, which ends the sweep.
//
// TODO: track the nearest hit explicitly instead of relying on the shortened
// ray length once callers no longer depend on hit ordering.
func (c *CharacterController2D) sweep(d float64, origin, dir, step cp.Vector, count int) (float64, bool) {
	skin := c.cfg.SkinWidth
	sign := common.Sign(dir.X + dir.Y)
	rayDistance := math.Abs(d) + skin
	axis := cp.Vector{X: math.Abs(dir.X), Y: math.Abs(dir.Y)}
	hitAny := false

	for i := 0; i < count; i++ {
		ray := origin.Add(step.Mult(float64(i)))
		c.emitRay(ray, dir, rayDistance, false)

		hit, ok := c.space.Raycast(ray, dir, rayDistance, c.cfg.ObstacleMask)
		if !ok {
			continue
		}
		hitAny = true

		d = hit.Point.Dot(axis) - ray.Dot(axis)
		rayDistance = math.Abs(d)
		d -= sign * skin
		c.hits = append(c.hits, hit)

		if rayDistance < skin+skinWidthFudge {
			break
		}
	}
	return d, hitAny
}
