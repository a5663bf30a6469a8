package ecs

import (
	"errors"
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
	"github.com/milk9111/overhead/controller"
	"github.com/milk9111/overhead/levels"
)

var ErrShapeLayerOutOfRange = errors.New("physics: shape layer out of range")

const (
	boundsThickness = 1.0
	rayEndTolerance = 1e-9
)

// PhysicsWorld owns the Chipmunk space holding the static obstacle and trigger
// shapes, and the layer matrix deciding which layers interact.
type PhysicsWorld struct {
	level  *levels.Level
	space  *cp.Space
	layers *LayerMatrix
	shapes []*cp.Shape
}

// NewPhysicsWorld creates a physics world for a level. A nil level yields an
// empty world.
func NewPhysicsWorld(level *levels.Level) (*PhysicsWorld, error) {
	pw := &PhysicsWorld{
		level:  level,
		space:  cp.NewSpace(),
		layers: NewLayerMatrix(),
	}
	if err := pw.buildStaticShapes(); err != nil {
		return nil, fmt.Errorf("build level %q: %w", level.Name, err)
	}
	return pw, nil
}

// Space returns the underlying Chipmunk space.
func (pw *PhysicsWorld) Space() *cp.Space {
	if pw == nil {
		return nil
	}
	return pw.space
}

// Layers returns the layer interaction matrix.
func (pw *PhysicsWorld) Layers() *LayerMatrix {
	if pw == nil {
		return nil
	}
	return pw.layers
}

// Level returns the level the static shapes were built from, if any.
func (pw *PhysicsWorld) Level() *levels.Level {
	if pw == nil {
		return nil
	}
	return pw.level
}

// Shapes returns every shape added to the world, in insertion order.
func (pw *PhysicsWorld) Shapes() []*cp.Shape {
	if pw == nil {
		return nil
	}
	return append([]*cp.Shape(nil), pw.shapes...)
}

// AddObstacle adds a solid box on layer.
func (pw *PhysicsWorld) AddObstacle(bb cp.BB, layer int) (*cp.Shape, error) {
	return pw.addShape(cp.NewBox2(pw.space.StaticBody, bb, 0), layer, false)
}

// AddTrigger adds a sensor box on layer. Sensors never block raycasts.
func (pw *PhysicsWorld) AddTrigger(bb cp.BB, layer int) (*cp.Shape, error) {
	return pw.addShape(cp.NewBox2(pw.space.StaticBody, bb, 0), layer, true)
}

func (pw *PhysicsWorld) addShape(shape *cp.Shape, layer int, sensor bool) (*cp.Shape, error) {
	if !validLayer(layer) {
		return nil, fmt.Errorf("layer %d: %w", layer, ErrShapeLayerOutOfRange)
	}
	shape.SetSensor(sensor)
	shape.SetFilter(cp.ShapeFilter{
		Group:      cp.NO_GROUP,
		Categories: controller.Category(layer),
		Mask:       cp.ALL_CATEGORIES,
	})
	shape.UserData = layer
	pw.space.AddShape(shape)
	pw.shapes = append(pw.shapes, shape)
	return shape, nil
}

// RemoveShape removes a shape previously added to this world.
func (pw *PhysicsWorld) RemoveShape(shape *cp.Shape) {
	if pw == nil || shape == nil {
		return
	}
	for i, s := range pw.shapes {
		if s == shape {
			pw.shapes = append(pw.shapes[:i], pw.shapes[i+1:]...)
			pw.space.RemoveShape(shape)
			return
		}
	}
}

// LayerOf returns the layer a shape was added on.
func (pw *PhysicsWorld) LayerOf(shape *cp.Shape) (int, bool) {
	if shape == nil {
		return 0, false
	}
	layer, ok := shape.UserData.(int)
	return layer, ok
}

// Raycast returns the nearest non-sensor shape on a layer in mask crossed by
// the ray, including one lying exactly at distance. A ray that starts inside a
// shape hits it at its origin.
func (pw *PhysicsWorld) Raycast(origin, direction cp.Vector, distance float64, mask controller.LayerMask) (controller.RaycastHit, bool) {
	if pw == nil || distance <= 0 || mask == 0 {
		return controller.RaycastHit{}, false
	}
	// Chipmunk excludes hits exactly at the segment end; cast a hair further
	// so an obstacle at exactly distance still counts.
	length := distance + rayEndTolerance
	end := origin.Add(direction.Mult(length))
	info := pw.space.SegmentQueryFirst(origin, end, 0, mask.Filter())
	if info.Shape == nil {
		return controller.RaycastHit{}, false
	}
	hitDistance := length * info.Alpha
	return controller.RaycastHit{
		Point:    origin.Lerp(end, info.Alpha),
		Normal:   info.Normal,
		Distance: hitDistance,
		Fraction: math.Min(hitDistance/distance, 1),
		Shape:    info.Shape,
	}, true
}

// OverlappingTriggers returns the sensors strictly overlapping bb whose layer
// interacts with layer, ordered by shape hash id.
func (pw *PhysicsWorld) OverlappingTriggers(bb cp.BB, layer int) []*cp.Shape {
	if pw == nil || !validLayer(layer) {
		return nil
	}
	var out []*cp.Shape
	filter := cp.ShapeFilter{Group: cp.NO_GROUP, Categories: cp.ALL_CATEGORIES, Mask: cp.ALL_CATEGORIES}
	pw.space.BBQuery(bb, filter, func(shape *cp.Shape, _ interface{}) {
		if !shape.Sensor() {
			return
		}
		other, ok := pw.LayerOf(shape)
		if !ok || !pw.layers.LayersCollide(layer, other) {
			return
		}
		if !common.Overlaps(shape.BB(), bb) {
			return
		}
		out = append(out, shape)
	}, nil)
	sort.Slice(out, func(i, j int) bool { return out[i].HashId() < out[j].HashId() })
	return out
}

func (pw *PhysicsWorld) buildStaticShapes() error {
	if pw.level == nil {
		return nil
	}

	solids, triggers := 0, 0
	for idx, tiles := range pw.level.Layers {
		meta := pw.level.Meta(idx)
		var sensor bool
		switch meta.Kind {
		case levels.KindSolid:
		case levels.KindTrigger:
			sensor = true
		default:
			continue
		}
		for _, rect := range mergeTiles(tiles, pw.level.Width, pw.level.Height) {
			bb := pw.level.RegionRect(rect.x, rect.y, rect.w, rect.h)
			var err error
			if sensor {
				_, err = pw.AddTrigger(bb, meta.Layer)
				triggers++
			} else {
				_, err = pw.AddObstacle(bb, meta.Layer)
				solids++
			}
			if err != nil {
				return fmt.Errorf("tile layer %d: %w", idx, err)
			}
		}
	}

	if err := pw.addBounds(); err != nil {
		return err
	}
	log.Printf("PhysicsWorld: level %q built %d solid and %d trigger shapes", pw.level.Name, solids, triggers)
	return nil
}

func (pw *PhysicsWorld) addBounds() error {
	worldW := pw.level.WorldWidth()
	worldH := pw.level.WorldHeight()
	if worldW <= 0 || worldH <= 0 {
		return nil
	}
	segments := []struct {
		a cp.Vector
		b cp.Vector
	}{
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: worldW, Y: 0}},
		{a: cp.Vector{X: 0, Y: worldH}, b: cp.Vector{X: worldW, Y: worldH}},
		{a: cp.Vector{X: 0, Y: 0}, b: cp.Vector{X: 0, Y: worldH}},
		{a: cp.Vector{X: worldW, Y: 0}, b: cp.Vector{X: worldW, Y: worldH}},
	}
	for _, seg := range segments {
		shape := cp.NewSegment(pw.space.StaticBody, seg.a, seg.b, boundsThickness)
		if _, err := pw.addShape(shape, pw.level.BoundsLayer, false); err != nil {
			return fmt.Errorf("bounds: %w", err)
		}
	}
	return nil
}

type tileRect struct {
	x, y, w, h int
}

// mergeTiles greedily covers the non-zero cells of a row-major tile layer with
// rectangles: widest run first, then grown downward while every cell fits.
func mergeTiles(layer []int, width, height int) []tileRect {
	if len(layer) != width*height {
		return nil
	}
	var out []tileRect
	processed := make([]bool, width*height)
	filled := func(x, y int) bool {
		idx := y*width + x
		return !processed[idx] && layer[idx] != 0
	}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !filled(x, y) {
				continue
			}

			w := 1
			for x+w < width && filled(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < height {
				for xi := x; xi < x+w; xi++ {
					if !filled(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*width+xx] = true
				}
			}
			out = append(out, tileRect{x: x, y: y, w: w, h: h})
		}
	}
	return out
}
