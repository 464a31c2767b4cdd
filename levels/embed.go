package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jakecoffman/cp"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a tile grid plus entity spawns. Coordinates are in tiles with Y
// pointing down; a tile value of zero is empty.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Entity is a spawn point. Type selects the builder (player, enemy) and
// Prefab the YAML file it is built from.
type Entity struct {
	Type   string         `json:"type"`
	Prefab string         `json:"prefab,omitempty"`
	X      float64        `json:"x"`
	Y      float64        `json:"y"`
	Props  map[string]any `json:"props,omitempty"`
}

// LayerHasPhysics reports whether layer i takes part in collision. Levels
// without layer metadata treat every layer as solid.
func (l *Level) LayerHasPhysics(i int) bool {
	if l == nil || i < 0 {
		return false
	}
	if len(l.LayerMeta) == 0 {
		return true
	}
	return i < len(l.LayerMeta) && l.LayerMeta[i].Physics
}

// Solid reports whether any physics layer has a tile at (x, y).
func (l *Level) Solid(x, y int) bool {
	if l == nil || x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	for i, layer := range l.Layers {
		if !l.LayerHasPhysics(i) || len(layer) != l.Width*l.Height {
			continue
		}
		if layer[y*l.Width+x] != 0 {
			return true
		}
	}
	return false
}

// Position returns the spawn position.
func (e Entity) Position() cp.Vector {
	return cp.Vector{X: e.X, Y: e.Y}
}

// Waypoints reads the "waypoints" prop, a list of [x, y] pairs.
func (e Entity) Waypoints() []cp.Vector {
	raw, ok := e.Props["waypoints"].([]any)
	if !ok {
		return nil
	}
	out := make([]cp.Vector, 0, len(raw))
	for _, item := range raw {
		if v, ok := asVector(item); ok {
			out = append(out, v)
		}
	}
	return out
}

// RespawnPoint reads the "respawn" prop. It falls back to the spawn position.
func (e Entity) RespawnPoint() cp.Vector {
	if v, ok := asVector(e.Props["respawn"]); ok {
		return v
	}
	return e.Position()
}

func asVector(raw any) (cp.Vector, bool) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return cp.Vector{}, false
	}
	x, okX := pair[0].(float64)
	y, okY := pair[1].(float64)
	if !okX || !okY {
		return cp.Vector{}, false
	}
	return cp.Vector{X: x, Y: y}, true
}

// Parse decodes a level and checks its layer sizes.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level %q: invalid size %dx%d", lvl.Name, lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("level %q: layer %d has %d tiles, want %d", lvl.Name, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	return &lvl, nil
}

// LoadLevelFromFS loads an embedded level by file name.
func LoadLevelFromFS(name string) (*Level, error) {
	data, err := fs.ReadFile(LevelsFS, cleanLevelPath(name))
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

// Load prefers a level file on disk and falls back to the embedded copy.
func Load(name string) (*Level, error) {
	if data, err := os.ReadFile(name); err == nil {
		return Parse(data)
	}
	return LoadLevelFromFS(name)
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
