package component

// Transform is the center of an entity in world space (Y up). A zero scale
// reads as 1.
type Transform struct {
	X      float64
	Y      float64
	ScaleX float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
