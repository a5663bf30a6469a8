package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/overhead/common"
)

//go:embed *.json
var LevelsFS embed.FS

const (
	KindSolid   = "solid"
	KindTrigger = "trigger"
	KindDecor   = "decor"
)

var ErrMalformedLevel = errors.New("levels: malformed level")

// Level is a tile grid. Row 0 of every layer is the top row of the map.
type Level struct {
	Name        string      `json:"name"`
	Width       int         `json:"width"`
	Height      int         `json:"height"`
	TileSize    float64     `json:"tile_size,omitempty"`
	Layers      [][]int     `json:"layers"`
	LayerMeta   []LayerMeta `json:"layer_meta,omitempty"`
	Spawn       Tile        `json:"spawn"`
	BoundsLayer int         `json:"bounds_layer"`
}

// LayerMeta says how the tiles of one layer take part in physics.
type LayerMeta struct {
	// Layer is the collision layer the tiles are placed on.
	Layer int    `json:"layer"`
	Kind  string `json:"kind"`
}

type Tile struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Load reads a level from levels/ on disk when present, falling back to the
// embedded copy.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = LevelsFS.ReadFile(clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read %s: %w", clean, err)
		}
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal: %w", err)
	}
	if lvl.TileSize <= 0 {
		lvl.TileSize = common.TileSize
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrMalformedLevel, l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("%w: layer %d has %d tiles, want %d", ErrMalformedLevel, i, len(layer), l.Width*l.Height)
		}
	}
	if len(l.LayerMeta) > len(l.Layers) {
		return fmt.Errorf("%w: %d layer meta entries for %d layers", ErrMalformedLevel, len(l.LayerMeta), len(l.Layers))
	}
	return nil
}

// Meta returns the physics meta for layer idx; layers without meta are decor.
func (l *Level) Meta(idx int) LayerMeta {
	if idx < 0 || idx >= len(l.LayerMeta) {
		return LayerMeta{Kind: KindDecor}
	}
	return l.LayerMeta[idx]
}

func (l *Level) WorldWidth() float64 {
	return float64(l.Width) * l.TileSize
}

func (l *Level) WorldHeight() float64 {
	return float64(l.Height) * l.TileSize
}

// TileRect returns the world box of the tile in column x, row y.
func (l *Level) TileRect(x, y int) cp.BB {
	return l.RegionRect(x, y, 1, 1)
}

// RegionRect returns the world box covering w columns and h rows starting at
// column x, row y.
func (l *Level) RegionRect(x, y, w, h int) cp.BB {
	ts := l.TileSize
	left := float64(x) * ts
	top := float64(l.Height-y) * ts
	return cp.BB{L: left, B: top - float64(h)*ts, R: left + float64(w)*ts, T: top}
}

// SpawnPosition is the world center of the spawn tile.
func (l *Level) SpawnPosition() cp.Vector {
	return l.TileRect(l.Spawn.X, l.Spawn.Y).Center()
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
