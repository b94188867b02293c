package sim

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"tile-raycaster/internal/gamemap"
	"tile-raycaster/internal/generate"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the static construction parameters of a simulation.
type Config struct {
	// Map
	TileSize float64  `mapstructure:"tile_size" yaml:"tile_size"` // world units per cell
	Map      []string `mapstructure:"map" yaml:"map,omitempty"`   // ASCII rows; empty means the reference map
	Generate MapGen   `mapstructure:"generate" yaml:"generate,omitempty"`

	// Field of view
	FOVDegrees float64 `mapstructure:"fov_degrees" yaml:"fov_degrees"`
	RayCount   int     `mapstructure:"ray_count" yaml:"ray_count"`
	Workers    int     `mapstructure:"workers" yaml:"workers"` // goroutines per frame; 1 casts serially

	// Viewer
	MoveSpeed           float64 `mapstructure:"move_speed" yaml:"move_speed"`                 // world units per tick
	TurnSpeedDegrees    float64 `mapstructure:"turn_speed_degrees" yaml:"turn_speed_degrees"` // degrees per tick
	StartX              float64 `mapstructure:"start_x" yaml:"start_x"`                       // 0 means grid centre
	StartY              float64 `mapstructure:"start_y" yaml:"start_y"`
	StartHeadingDegrees float64 `mapstructure:"start_heading_degrees" yaml:"start_heading_degrees"`

	TicksPerSecond int `mapstructure:"ticks_per_second" yaml:"ticks_per_second"`
}

// MapGen asks for a generated map instead of a fixed layout. It is used
// when Rows and Cols are set and Map is empty.
type MapGen struct {
	Rows      int    `mapstructure:"rows" yaml:"rows,omitempty"`
	Cols      int    `mapstructure:"cols" yaml:"cols,omitempty"`
	Seed      int64  `mapstructure:"seed" yaml:"seed,omitempty"`
	Corridors string `mapstructure:"corridors" yaml:"corridors,omitempty"` // l, z or straight
}

func (m MapGen) enabled() bool { return m.Rows != 0 || m.Cols != 0 }

// DefaultConfig returns the reference setup: the 11×15 map at 32 units per
// tile, a 60° view of 480 rays and the viewer in the middle facing down.
func DefaultConfig() *Config {
	return &Config{
		TileSize:            gamemap.DefaultTileSize,
		FOVDegrees:          60,
		RayCount:            480,
		Workers:             1,
		MoveSpeed:           1.5,
		TurnSpeedDegrees:    2,
		StartHeadingDegrees: 90,
		TicksPerSecond:      60,
	}
}

// LoadConfig reads a JSON or YAML config, chosen by file extension, over
// the defaults. A missing file is not an error and yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}

	vp := viper.New()
	vp.SetConfigFile(path)
	if filepath.Ext(path) == "" {
		vp.SetConfigType("yaml")
	}
	if err := vp.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := vp.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config %s: %w", path, err)
	}
	return cfg, nil
}

// YAML encodes the config in the format LoadConfig reads.
func (c *Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Validate checks the parameters that do not need the map.
func (c *Config) Validate() error {
	switch {
	case !(c.TileSize > 0) || math.IsInf(c.TileSize, 0):
		return fmt.Errorf("%w: tile_size %v", ErrInvalidConfig, c.TileSize)
	case !(c.FOVDegrees > 0 && c.FOVDegrees <= 360):
		return fmt.Errorf("%w: fov_degrees %v not in (0, 360]", ErrInvalidConfig, c.FOVDegrees)
	case c.RayCount <= 0:
		return fmt.Errorf("%w: ray_count %d", ErrInvalidConfig, c.RayCount)
	case c.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidConfig, c.Workers)
	case !(c.MoveSpeed >= 0) || math.IsInf(c.MoveSpeed, 0):
		return fmt.Errorf("%w: move_speed %v", ErrInvalidConfig, c.MoveSpeed)
	case !(c.TurnSpeedDegrees >= 0) || math.IsInf(c.TurnSpeedDegrees, 0):
		return fmt.Errorf("%w: turn_speed_degrees %v", ErrInvalidConfig, c.TurnSpeedDegrees)
	case c.TicksPerSecond <= 0:
		return fmt.Errorf("%w: ticks_per_second %d", ErrInvalidConfig, c.TicksPerSecond)
	}
	if !c.Generate.enabled() {
		return nil
	}
	if len(c.Map) > 0 {
		return fmt.Errorf("%w: map and generate are mutually exclusive", ErrInvalidConfig)
	}
	if c.Generate.Rows < generate.MinSize || c.Generate.Cols < generate.MinSize {
		return fmt.Errorf("%w: generate %d×%d, minimum %d×%d", ErrInvalidConfig,
			c.Generate.Rows, c.Generate.Cols, generate.MinSize, generate.MinSize)
	}
	if _, err := generate.ParseCorridorStyle(c.Generate.Corridors); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Grid builds the configured map.
func (c *Config) Grid() (*gamemap.Grid, error) {
	g, _, _, err := c.buildGrid()
	return g, err
}

// buildGrid builds the map and picks the default start: the grid centre
// for a fixed layout, the centre of the first room for a generated one.
func (c *Config) buildGrid() (g *gamemap.Grid, startX, startY float64, err error) {
	layout := c.Map
	startRow, startCol := -1, -1
	switch {
	case len(layout) > 0:
	case c.Generate.enabled():
		style, err := generate.ParseCorridorStyle(c.Generate.Corridors)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("generate: %w", err)
		}
		gc := generate.DefaultConfig(c.Generate.Rows, c.Generate.Cols, c.Generate.Seed)
		gc.CorridorStyle = style
		res, err := generate.Generate(gc)
		if err != nil {
			return nil, 0, 0, fmt.Errorf("generate: %w", err)
		}
		layout, startRow, startCol = res.Layout, res.StartRow, res.StartCol
	default:
		layout = gamemap.DefaultLayout()
	}
	g, err = gamemap.ParseLayout(layout, c.TileSize)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("map: %w", err)
	}
	if startRow < 0 {
		return g, g.Width() / 2, g.Height() / 2, nil
	}
	x, y := g.CellOrigin(startRow, startCol)
	return g, x + g.TileSize()/2, y + g.TileSize()/2, nil
}

// FOV returns the field of view in radians.
func (c Config) FOV() float64 { return c.FOVDegrees * math.Pi / 180 }

// TurnSpeed returns the turn speed in radians per tick.
func (c Config) TurnSpeed() float64 { return c.TurnSpeedDegrees * math.Pi / 180 }

// StartHeading returns the start heading in radians.
func (c Config) StartHeading() float64 { return c.StartHeadingDegrees * math.Pi / 180 }

// TickInterval returns the wall-clock duration of one tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TicksPerSecond)
}
