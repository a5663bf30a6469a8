package controller

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
)

type testBody struct {
	bb    cp.BB
	moves []cp.Vector
}

func (b *testBody) Bounds() cp.BB { return b.bb }

func (b *testBody) Translate(delta cp.Vector) {
	b.bb = b.bb.Offset(delta)
	b.moves = append(b.moves, delta)
}

type testClock struct{ dt float64 }

func (c *testClock) DeltaTime() float64 { return c.dt }

type obstacle struct {
	bb    cp.BB
	layer int
	shape *cp.Shape
}

// boxSpace is a brute force Raycaster over axis-aligned boxes.
type boxSpace struct {
	obstacles []obstacle
	casts     int
}

func (s *boxSpace) add(bb cp.BB, layer int) *cp.Shape {
	shape := cp.NewBox2(cp.NewStaticBody(), bb, 0)
	s.obstacles = append(s.obstacles, obstacle{bb: bb, layer: layer, shape: shape})
	return shape
}

func (s *boxSpace) Raycast(origin, direction cp.Vector, distance float64, mask LayerMask) (RaycastHit, bool) {
	s.casts++
	delta := direction.Mult(distance)
	best := math.Inf(1)
	var out RaycastHit
	for _, o := range s.obstacles {
		if !mask.Contains(o.layer) {
			continue
		}
		t, normal, ok := segmentBoxHit(origin, delta, o.bb)
		if !ok || t >= best {
			continue
		}
		best = t
		out = RaycastHit{
			Point:    origin.Add(delta.Mult(t)),
			Normal:   normal,
			Distance: distance * t,
			Fraction: t,
			Shape:    o.shape,
		}
	}
	return out, !math.IsInf(best, 1)
}

func segmentBoxHit(origin, delta cp.Vector, bb cp.BB) (float64, cp.Vector, bool) {
	tmin, tmax := 0.0, 1.0
	var normal cp.Vector

	if delta.X != 0 {
		t1 := (bb.L - origin.X) / delta.X
		t2 := (bb.R - origin.X) / delta.X
		n := cp.Vector{X: -1}
		if t1 > t2 {
			t1, t2 = t2, t1
			n = cp.Vector{X: 1}
		}
		if t1 > tmin {
			tmin = t1
			normal = n
		}
		tmax = math.Min(tmax, t2)
	} else if origin.X < bb.L || origin.X > bb.R {
		return 0, cp.Vector{}, false
	}

	if delta.Y != 0 {
		t1 := (bb.B - origin.Y) / delta.Y
		t2 := (bb.T - origin.Y) / delta.Y
		n := cp.Vector{Y: -1}
		if t1 > t2 {
			t1, t2 = t2, t1
			n = cp.Vector{Y: 1}
		}
		if t1 > tmin {
			tmin = t1
			normal = n
		}
		tmax = math.Min(tmax, t2)
	} else if origin.Y < bb.B || origin.Y > bb.T {
		return 0, cp.Vector{}, false
	}

	if tmax < tmin {
		return 0, cp.Vector{}, false
	}
	return tmin, normal, true
}

func approx(a, b float64) bool {
	return common.Approx(a, b, 1e-9)
}
