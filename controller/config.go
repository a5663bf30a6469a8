package controller

import (
	"errors"
	"fmt"
)

const (
	DefaultSkinWidth      = 0.02
	MinSkinWidth          = 0.001
	MaxSkinWidth          = 0.3
	DefaultHorizontalRays = 8
	DefaultVerticalRays   = 4
	MinRays               = 2
	MaxRays               = 20

	// skinWidthFudge absorbs float error when deciding a hit is a direct impact.
	skinWidthFudge = 0.001
)

var (
	ErrSkinWidthOutOfRange = errors.New("controller: skin width out of range")
	ErrRayCountOutOfRange  = errors.New("controller: ray count out of range")
	ErrNilBody             = errors.New("controller: body is nil")
	ErrNilRaycaster        = errors.New("controller: raycaster is nil")
	ErrLayersAlreadyBound  = errors.New("controller: layers already bound")
	ErrLayerOutOfRange     = errors.New("controller: layer out of range")
)

// Config is the tunable surface of a CharacterController2D.
type Config struct {
	SkinWidth      float64
	HorizontalRays int
	VerticalRays   int
	ObstacleMask   LayerMask
	TriggerMask    LayerMask
}

func DefaultConfig() Config {
	return Config{
		SkinWidth:      DefaultSkinWidth,
		HorizontalRays: DefaultHorizontalRays,
		VerticalRays:   DefaultVerticalRays,
	}
}

// Validate reports the first configuration value that would make ray spacing
// degenerate.
func (c Config) Validate() error {
	if err := validateSkinWidth(c.SkinWidth); err != nil {
		return err
	}
	return validateRayCounts(c.HorizontalRays, c.VerticalRays)
}

func validateSkinWidth(w float64) error {
	// written so NaN fails too
	if !(w >= MinSkinWidth && w <= MaxSkinWidth) {
		return fmt.Errorf("%w: %v not in [%v, %v]", ErrSkinWidthOutOfRange, w, MinSkinWidth, MaxSkinWidth)
	}
	return nil
}

func validateRayCounts(horizontal, vertical int) error {
	if horizontal < MinRays || horizontal > MaxRays {
		return fmt.Errorf("%w: horizontal %d not in [%d, %d]", ErrRayCountOutOfRange, horizontal, MinRays, MaxRays)
	}
	if vertical < MinRays || vertical > MaxRays {
		return fmt.Errorf("%w: vertical %d not in [%d, %d]", ErrRayCountOutOfRange, vertical, MinRays, MaxRays)
	}
	return nil
}
