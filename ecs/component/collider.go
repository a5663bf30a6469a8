package component

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
)

// BoxCollider is an axis-aligned box relative to the Transform. Its world size
// is Width/Height times the absolute transform scale.
type BoxCollider struct {
	Width   float64
	Height  float64
	OffsetX float64
	OffsetY float64
}

var BoxColliderComponent = NewComponent[BoxCollider]()

func scale(s float64) float64 {
	if s == 0 {
		return 1
	}
	return math.Abs(s)
}

// Bounds returns the collider's world box for t.
func (c BoxCollider) Bounds(t Transform) cp.BB {
	sx, sy := scale(t.ScaleX), scale(t.ScaleY)
	return common.BoxAt(t.X+c.OffsetX*sx, t.Y+c.OffsetY*sy, c.Width*sx, c.Height*sy)
}
