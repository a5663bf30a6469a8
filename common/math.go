package common

import "math"

// TileSize is the edge length of one level tile in world units.
const TileSize = 32

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// Approx reports whether a and b differ by at most eps.
func Approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}
