// Package controller resolves kinematic movement of an axis-aligned box
// against static geometry by casting fans of parallel rays along each
// movement axis.
package controller

import (
	"fmt"
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
)

// RaycastHit is a single obstacle intersection.
type RaycastHit struct {
	Point    cp.Vector
	Normal   cp.Vector
	Distance float64
	// Fraction is Distance over the cast length, in [0, 1].
	Fraction float64
	Shape    *cp.Shape
}

// RayCast describes one ray fired by a sweep or probe. Direction is a unit vector.
type RayCast struct {
	Origin    cp.Vector
	Direction cp.Vector
	Distance  float64
	Probe     bool
}

// Raycaster finds the nearest obstacle in mask along a ray.
type Raycaster interface {
	Raycast(origin, direction cp.Vector, distance float64, mask LayerMask) (RaycastHit, bool)
}

// Body is the pose the controller reads and moves.
type Body interface {
	Bounds() cp.BB
	Translate(delta cp.Vector)
}

// Clock reports the elapsed time of the current step.
type Clock interface {
	DeltaTime() float64
}

// LayerCollisionTable is the shared table of which layer pairs interact.
type LayerCollisionTable interface {
	IgnoreLayerCollision(a, b int, ignore bool)
}

var (
	vecRight = cp.Vector{X: 1}
	vecLeft  = cp.Vector{X: -1}
	vecUp    = cp.Vector{Y: 1}
	vecDown  = cp.Vector{Y: -1}
)

// CharacterController2D moves a box through a Raycaster's obstacles. It is not
// safe for concurrent use; Move and Probe share scratch state.
type CharacterController2D struct {
	cfg   Config
	body  Body
	space Raycaster
	clock Clock

	collision CollisionState
	velocity  cp.Vector

	origins RaycastOrigins
	hits    []RaycastHit

	// verticalDistanceBetweenRays spaces the horizontal fan, horizontalDistanceBetweenRays the vertical one.
	verticalDistanceBetweenRays   float64
	horizontalDistanceBetweenRays float64
	spacingWidth                  float64
	spacingHeight                 float64

	collidedListeners []func(RaycastHit)
	enterListeners    []func(*cp.Shape)
	stayListeners     []func(*cp.Shape)
	exitListeners     []func(*cp.Shape)
	rayListeners      []func(RayCast)

	layerTable    LayerCollisionTable
	layer         int
	ignoredLayers []int
}

// New builds a controller for body. clock may be nil, in which case velocity is
// never derived.
func New(body Body, space Raycaster, clock Clock, cfg Config) (*CharacterController2D, error) {
	if body == nil {
		return nil, ErrNilBody
	}
	if space == nil {
		return nil, ErrNilRaycaster
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("controller: new: %w", err)
	}
	c := &CharacterController2D{
		cfg:   cfg,
		body:  body,
		space: space,
		clock: clock,
		hits:  make([]RaycastHit, 0, 2),
	}
	c.RecalculateDistanceBetweenRays()
	return c, nil
}

func (c *CharacterController2D) Config() Config {
	return c.cfg
}

func (c *CharacterController2D) SkinWidth() float64 {
	return c.cfg.SkinWidth
}

// SetSkinWidth changes the inset and recomputes ray spacing.
func (c *CharacterController2D) SetSkinWidth(w float64) error {
	if err := validateSkinWidth(w); err != nil {
		return err
	}
	c.cfg.SkinWidth = w
	c.RecalculateDistanceBetweenRays()
	return nil
}

func (c *CharacterController2D) RayCounts() (horizontal, vertical int) {
	return c.cfg.HorizontalRays, c.cfg.VerticalRays
}

// SetRayCounts changes how many rays each sweep casts and recomputes spacing.
func (c *CharacterController2D) SetRayCounts(horizontal, vertical int) error {
	if err := validateRayCounts(horizontal, vertical); err != nil {
		return err
	}
	c.cfg.HorizontalRays = horizontal
	c.cfg.VerticalRays = vertical
	c.RecalculateDistanceBetweenRays()
	return nil
}

func (c *CharacterController2D) ObstacleMask() LayerMask {
	return c.cfg.ObstacleMask
}

func (c *CharacterController2D) SetObstacleMask(m LayerMask) {
	c.cfg.ObstacleMask = m
}

func (c *CharacterController2D) TriggerMask() LayerMask {
	return c.cfg.TriggerMask
}

// SetTriggerMask replaces the trigger mask. Layers already bound with
// BindLayers keep their previous setting until rebound.
func (c *CharacterController2D) SetTriggerMask(m LayerMask) {
	c.cfg.TriggerMask = m
}

// RecalculateDistanceBetweenRays recomputes ray spacing from the body's current
// extents. Move and Probe call it on their own when the extents change; call it
// directly after resizing the body if spacing is read before the next move.
func (c *CharacterController2D) RecalculateDistanceBetweenRays() {
	c.recalculateSpacing(c.body.Bounds())
}

func (c *CharacterController2D) recalculateSpacing(bounds cp.BB) {
	c.spacingWidth = common.Width(bounds)
	c.spacingHeight = common.Height(bounds)

	// a body thinner than both skins fires every ray from its center line
	usableHeight := math.Max(0, c.spacingHeight-2*c.cfg.SkinWidth)
	c.verticalDistanceBetweenRays = usableHeight / float64(c.cfg.HorizontalRays-1)

	usableWidth := math.Max(0, c.spacingWidth-2*c.cfg.SkinWidth)
	c.horizontalDistanceBetweenRays = usableWidth / float64(c.cfg.VerticalRays-1)
}

func (c *CharacterController2D) refreshSpacing(bounds cp.BB) {
	if common.Width(bounds) != c.spacingWidth || common.Height(bounds) != c.spacingHeight {
		c.recalculateSpacing(bounds)
	}
}

// RaySpacing returns the gap between horizontal rays (vertical) and between
// vertical rays (horizontal).
func (c *CharacterController2D) RaySpacing() (vertical, horizontal float64) {
	return c.verticalDistanceBetweenRays, c.horizontalDistanceBetweenRays
}

// Collision returns the sides blocked during the last Move.
func (c *CharacterController2D) Collision() CollisionState {
	return c.collision
}

func (c *CharacterController2D) Velocity() cp.Vector {
	return c.velocity
}

func (c *CharacterController2D) SetVelocity(v cp.Vector) {
	c.velocity = v
}

// Origins returns the ray origins primed by the last Move.
func (c *CharacterController2D) Origins() RaycastOrigins {
	return c.origins
}

// HitsThisStep returns a copy of the hits recorded by the last Move.
func (c *CharacterController2D) HitsThisStep() []RaycastHit {
	out := make([]RaycastHit, len(c.hits))
	copy(out, c.hits)
	return out
}

// OnControllerCollided registers fn to run once per hit after each Move.
func (c *CharacterController2D) OnControllerCollided(fn func(RaycastHit)) {
	if fn == nil {
		return
	}
	c.collidedListeners = append(c.collidedListeners, fn)
}

func (c *CharacterController2D) OnTriggerEnter(fn func(*cp.Shape)) {
	if fn == nil {
		return
	}
	c.enterListeners = append(c.enterListeners, fn)
}

func (c *CharacterController2D) OnTriggerStay(fn func(*cp.Shape)) {
	if fn == nil {
		return
	}
	c.stayListeners = append(c.stayListeners, fn)
}

func (c *CharacterController2D) OnTriggerExit(fn func(*cp.Shape)) {
	if fn == nil {
		return
	}
	c.exitListeners = append(c.exitListeners, fn)
}

// OnRayCast registers a debug hook that sees every ray cast by Move and Probe.
func (c *CharacterController2D) OnRayCast(fn func(RayCast)) {
	if fn == nil {
		return
	}
	c.rayListeners = append(c.rayListeners, fn)
}

// TriggerEnter forwards an overlap notification from the spatial system.
func (c *CharacterController2D) TriggerEnter(shape *cp.Shape) {
	for _, fn := range c.enterListeners {
		fn(shape)
	}
}

func (c *CharacterController2D) TriggerStay(shape *cp.Shape) {
	for _, fn := range c.stayListeners {
		fn(shape)
	}
}

func (c *CharacterController2D) TriggerExit(shape *cp.Shape) {
	for _, fn := range c.exitListeners {
		fn(shape)
	}
}

func (c *CharacterController2D) emitRay(origin, dir cp.Vector, distance float64, probe bool) {
	if len(c.rayListeners) == 0 {
		return
	}
	rc := RayCast{Origin: origin, Direction: dir, Distance: distance, Probe: probe}
	for _, fn := range c.rayListeners {
		fn(rc)
	}
}

// BindLayers makes layer ignore every layer outside the trigger mask in table.
// It is a one-time setup; UnbindLayers undoes it.
func (c *CharacterController2D) BindLayers(table LayerCollisionTable, layer int) error {
	if table == nil {
		return nil
	}
	if layer < 0 || layer >= MaxLayers {
		return fmt.Errorf("%w: %d", ErrLayerOutOfRange, layer)
	}
	if c.layerTable != nil {
		return ErrLayersAlreadyBound
	}
	c.layerTable = table
	c.layer = layer
	c.ignoredLayers = c.ignoredLayers[:0]
	for i := 0; i < MaxLayers; i++ {
		if c.cfg.TriggerMask.Contains(i) {
			continue
		}
		table.IgnoreLayerCollision(layer, i, true)
		c.ignoredLayers = append(c.ignoredLayers, i)
	}
	return nil
}

// UnbindLayers restores the layer pairs ignored by BindLayers.
func (c *CharacterController2D) UnbindLayers() {
	if c.layerTable == nil {
		return
	}
	for _, i := range c.ignoredLayers {
		c.layerTable.IgnoreLayerCollision(c.layer, i, false)
	}
	c.ignoredLayers = c.ignoredLayers[:0]
	c.layerTable = nil
}

// Layer returns the layer passed to BindLayers.
func (c *CharacterController2D) Layer() (int, bool) {
	return c.layer, c.layerTable != nil
}
