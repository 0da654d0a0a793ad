// Package level describes the declarative level data the game builds from.
package level

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Shape types understood by the builder
const (
	ShapeBox = "box"
)

// Obstacle types understood by the builder
const (
	ObstacleBlock       = "block"
	ObstacleToxicLiquid = "toxic_liquid"
)

// Point is a position in world units
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is a box region of liquid, centre plus half extents
type Shape struct {
	Type       string  `json:"type"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	HalfWidth  float64 `json:"halfWidth"`
	HalfHeight float64 `json:"halfHeight"`

	// CanGoThroughDirt keeps particles that spawn inside solid terrain
	CanGoThroughDirt bool `json:"canGoThroughDirt"`
}

// Obstacle is either a static block or a pool of toxic liquid
type Obstacle struct {
	Type       string  `json:"type"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	HalfWidth  float64 `json:"halfWidth"`
	HalfHeight float64 `json:"halfHeight"`

	// Shape overrides the obstacle's own box for toxic liquid
	Shape *Shape `json:"shape,omitempty"`

	// CanGoThroughDirt is only honoured for toxic liquid. Unset means the
	// liquid is left where it spawns.
	CanGoThroughDirt *bool `json:"canGoThroughDirt,omitempty"`
}

// LiquidShape returns the box the liquid fills
func (o Obstacle) LiquidShape() Shape {
	if o.Shape != nil {
		return *o.Shape
	}
	return Shape{
		Type:       ShapeBox,
		X:          o.X,
		Y:          o.Y,
		HalfWidth:  o.HalfWidth,
		HalfHeight: o.HalfHeight,
	}
}

// CarveAgainstTerrain reports whether particles spawning in dirt are removed
func (o Obstacle) CarveAgainstTerrain() bool {
	return o.CanGoThroughDirt != nil && !*o.CanGoThroughDirt
}

// Station is a treatment station, centre plus full size
type Station struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Capacity int     `json:"capacity"`
}

// Level is one playable level. It is never modified after loading.
type Level struct {
	Name string `json:"name,omitempty"`

	// Terrain rows; 'x' is solid ground
	Terrain []string `json:"terrain"`

	PipePosition      *Point     `json:"pipePosition,omitempty"`
	WaterShapes       []Shape    `json:"waterShapes,omitempty"`
	Obstacles         []Obstacle `json:"obstacles,omitempty"`
	TreatmentStations []Station  `json:"treatmentStations,omitempty"`

	// WaterAmount is the fraction of the initial water that must be collected
	WaterAmount float64 `json:"waterAmount"`
}

// Title returns the level name or a numbered fallback
func (l Level) Title(index int) string {
	if strings.TrimSpace(l.Name) != "" {
		return l.Name
	}
	return fmt.Sprintf("Level %d", index+1)
}

// ErrNoLevels is returned when a level set is empty
var ErrNoLevels = errors.New("level set is empty")

// Decode reads a JSON array of levels
func Decode(r io.Reader) ([]Level, error) {
	var levels []Level
	if err := json.NewDecoder(r).Decode(&levels); err != nil {
		return nil, fmt.Errorf("decode levels: %w", err)
	}
	if len(levels) == 0 {
		return nil, ErrNoLevels
	}
	return levels, nil
}

// LoadFile reads a level set from disk
func LoadFile(path string) ([]Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level file: %w", err)
	}
	defer f.Close()

	levels, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return levels, nil
}

//go:embed levels.json
var defaultLevels string

// Default returns the built-in level set
func Default() ([]Level, error) {
	return Decode(strings.NewReader(defaultLevels))
}
