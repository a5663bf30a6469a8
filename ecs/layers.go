package ecs

import "github.com/milk9111/overhead/controller"

// LayerMatrix is the symmetric table of which layer pairs interact.
// The zero value is not usable; call NewLayerMatrix.
type LayerMatrix struct {
	rows [controller.MaxLayers]controller.LayerMask
}

// NewLayerMatrix returns a matrix where every pair of layers collides.
func NewLayerMatrix() *LayerMatrix {
	m := &LayerMatrix{}
	m.Reset()
	return m
}

// Reset makes every pair collide again.
func (m *LayerMatrix) Reset() {
	for i := range m.rows {
		m.rows[i] = controller.AllLayers
	}
}

func validLayer(layer int) bool {
	return layer >= 0 && layer < controller.MaxLayers
}

// IgnoreLayerCollision sets whether layers a and b ignore each other.
// Out-of-range layers are ignored.
func (m *LayerMatrix) IgnoreLayerCollision(a, b int, ignore bool) {
	if m == nil || !validLayer(a) || !validLayer(b) {
		return
	}
	if ignore {
		m.rows[a] &^= controller.MaskOf(b)
		m.rows[b] &^= controller.MaskOf(a)
		return
	}
	m.rows[a] |= controller.MaskOf(b)
	m.rows[b] |= controller.MaskOf(a)
}

// LayersCollide reports whether a and b interact. A nil matrix lets everything collide.
func (m *LayerMatrix) LayersCollide(a, b int) bool {
	if !validLayer(a) || !validLayer(b) {
		return false
	}
	if m == nil {
		return true
	}
	return m.rows[a].Contains(b)
}

// Row returns the mask of layers that interact with layer.
func (m *LayerMatrix) Row(layer int) controller.LayerMask {
	if !validLayer(layer) {
		return 0
	}
	if m == nil {
		return controller.AllLayers
	}
	return m.rows[layer]
}
