package controller

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
)

// RaycastOrigins are the inset corners rays are fired from.
type RaycastOrigins struct {
	TopLeft     cp.Vector
	BottomRight cp.Vector
	BottomLeft  cp.Vector
}

// PrimeRaycastOrigins shrinks bounds by 2*skinWidth per axis, skinWidth on each
// edge, and returns the corners. Casting from exactly on the collider surface
// produces zero-distance hits with unusable normals.
func PrimeRaycastOrigins(bounds cp.BB, skinWidth float64) RaycastOrigins {
	inset := common.Inset(bounds, skinWidth)
	return RaycastOrigins{
		TopLeft:     cp.Vector{X: inset.L, Y: inset.T},
		BottomRight: cp.Vector{X: inset.R, Y: inset.B},
		BottomLeft:  cp.Vector{X: inset.L, Y: inset.B},
	}
}
