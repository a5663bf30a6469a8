package controller

import "github.com/jakecoffman/cp"

// MaxLayers is the number of addressable collision layers.
const MaxLayers = 32

// LayerMask holds one bit per collision layer.
type LayerMask uint32

// AllLayers selects every layer.
const AllLayers LayerMask = ^LayerMask(0)

// MaskOf builds a mask from layer indices. Indices outside [0, MaxLayers) are ignored.
func MaskOf(layers ...int) LayerMask {
	var m LayerMask
	for _, l := range layers {
		if l < 0 || l >= MaxLayers {
			continue
		}
		m |= 1 << uint(l)
	}
	return m
}

func (m LayerMask) Contains(layer int) bool {
	if layer < 0 || layer >= MaxLayers {
		return false
	}
	return m&(1<<uint(layer)) != 0
}

// Layers returns the set layer indices in ascending order.
func (m LayerMask) Layers() []int {
	var out []int
	for i := 0; i < MaxLayers; i++ {
		if m.Contains(i) {
			out = append(out, i)
		}
	}
	return out
}

// Filter converts the mask into a chipmunk query filter that accepts shapes
// whose category is in the mask.
func (m LayerMask) Filter() cp.ShapeFilter {
	return cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: cp.ALL_CATEGORIES,
		Mask:       uint(m),
	}
}

// Category returns the chipmunk category bit for a single layer.
func Category(layer int) uint {
	return uint(MaskOf(layer))
}
