package common

import "github.com/jakecoffman/cp"

// Width returns the horizontal extent of bb.
func Width(bb cp.BB) float64 {
	return bb.R - bb.L
}

// Height returns the vertical extent of bb.
func Height(bb cp.BB) float64 {
	return bb.T - bb.B
}

// Inset moves every edge of bb inward by d. A negative d grows the box. An
// axis narrower than 2*d collapses onto its center line.
func Inset(bb cp.BB, d float64) cp.BB {
	out := cp.BB{L: bb.L + d, B: bb.B + d, R: bb.R - d, T: bb.T - d}
	if out.L > out.R {
		out.L = (bb.L + bb.R) / 2
		out.R = out.L
	}
	if out.B > out.T {
		out.B = (bb.B + bb.T) / 2
		out.T = out.B
	}
	return out
}

// BoxAt returns the box of size w x h centered on (x, y).
func BoxAt(x, y, w, h float64) cp.BB {
	return cp.NewBBForExtents(cp.Vector{X: x, Y: y}, w/2, h/2)
}

// Overlaps reports whether a and b share interior area. Touching edges do not count.
func Overlaps(a, b cp.BB) bool {
	return a.L < b.R &&
		a.R > b.L &&
		a.B < b.T &&
		a.T > b.B
}
