package controller

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Probe reports whether moving by direction would hit an obstacle. It never
// moves the body, touches the collision state, or fires events.
func (c *CharacterController2D) Probe(direction cp.Vector) bool {
	_, ok := c.ProbeHit(direction)
	return ok
}

// ProbeHit is Probe returning the hit. Every ray on each non-zero axis is cast
// and the last hit found wins, with vertical rays cast after horizontal ones.
func (c *CharacterController2D) ProbeHit(direction cp.Vector) (RaycastHit, bool) {
	bounds := c.body.Bounds()
	c.refreshSpacing(bounds)
	origins := PrimeRaycastOrigins(bounds, c.cfg.SkinWidth)

	var hit RaycastHit
	found := false

	if direction.X != 0 {
		anchor, dir := origins.BottomLeft, vecLeft
		if direction.X > 0 {
			anchor, dir = origins.BottomRight, vecRight
		}
		step := cp.Vector{Y: c.verticalDistanceBetweenRays}
		distance := math.Abs(direction.X) + c.cfg.SkinWidth
		if h, ok := c.probeFan(anchor, dir, step, c.cfg.HorizontalRays, distance); ok {
			hit, found = h, true
		}
	}

	if direction.Y != 0 {
		anchor, dir := origins.BottomLeft, vecDown
		if direction.Y > 0 {
			anchor, dir = origins.TopLeft, vecUp
		}
		step := cp.Vector{X: c.horizontalDistanceBetweenRays}
		distance := math.Abs(direction.Y) + c.cfg.SkinWidth
		if h, ok := c.probeFan(anchor, dir, step, c.cfg.VerticalRays, distance); ok {
			hit, found = h, true
		}
	}

	return hit, found
}

func (c *CharacterController2D) probeFan(anchor, dir, step cp.Vector, count int, distance float64) (RaycastHit, bool) {
	var last RaycastHit
	found := false
	for i := 0; i < count; i++ {
		ray := anchor.Add(step.Mult(float64(i)))
		c.emitRay(ray, dir, distance, true)
		if h, ok := c.space.Raycast(ray, dir, distance, c.cfg.ObstacleMask); ok {
			last, found = h, true
		}
	}
	return last, found
}
