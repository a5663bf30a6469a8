package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/overhead/controller"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CharacterSpec describes a controllable character.
type CharacterSpec struct {
	Name       string         `yaml:"name"`
	MoveSpeed  float64        `yaml:"move_speed"`
	Layer      int            `yaml:"layer"`
	Collider   ColliderSpec   `yaml:"collider"`
	Controller ControllerSpec `yaml:"controller"`
	Sprite     SpriteSpec     `yaml:"sprite"`
}

func LoadCharacterSpec(filename string) (*CharacterSpec, error) {
	spec, err := LoadSpec[CharacterSpec](filename)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ColliderSpec struct {
	Width   float64 `yaml:"width"`
	Height  float64 `yaml:"height"`
	OffsetX float64 `yaml:"offset_x"`
	OffsetY float64 `yaml:"offset_y"`
	ScaleX  float64 `yaml:"scale_x"`
	ScaleY  float64 `yaml:"scale_y"`
}

type ControllerSpec struct {
	SkinWidth      float64   `yaml:"skin_width"`
	HorizontalRays int       `yaml:"horizontal_rays"`
	VerticalRays   int       `yaml:"vertical_rays"`
	ObstacleLayers LayerList `yaml:"obstacle_layers"`
	TriggerLayers  LayerList `yaml:"trigger_layers"`
}

// Config converts the spec into a validated controller config. Zero values
// take the controller defaults.
func (s ControllerSpec) Config() (controller.Config, error) {
	cfg := controller.DefaultConfig()
	if s.SkinWidth != 0 {
		cfg.SkinWidth = s.SkinWidth
	}
	if s.HorizontalRays != 0 {
		cfg.HorizontalRays = s.HorizontalRays
	}
	if s.VerticalRays != 0 {
		cfg.VerticalRays = s.VerticalRays
	}
	cfg.ObstacleMask = s.ObstacleLayers.Mask
	cfg.TriggerMask = s.TriggerLayers.Mask
	if err := cfg.Validate(); err != nil {
		return controller.Config{}, fmt.Errorf("prefabs: controller: %w", err)
	}
	return cfg, nil
}

// LayerList accepts either a sequence of layer indices or a raw bitmask.
type LayerList struct {
	Mask controller.LayerMask
}

func (l *LayerList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		v, err := strconv.ParseUint(value.Value, 0, 32)
		if err != nil {
			return fmt.Errorf("layer mask %q: %w", value.Value, err)
		}
		l.Mask = controller.LayerMask(v)
		return nil
	case yaml.SequenceNode:
		var layers []int
		if err := value.Decode(&layers); err != nil {
			return err
		}
		for _, layer := range layers {
			if layer < 0 || layer >= controller.MaxLayers {
				return fmt.Errorf("layer %d out of range at line %d", layer, value.Line)
			}
		}
		l.Mask = controller.MaskOf(layers...)
		return nil
	}
	return fmt.Errorf("layers must be a list or a bitmask at line %d", value.Line)
}

type SpriteSpec struct {
	Color *YAMLColor `yaml:"color"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
