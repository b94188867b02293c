// Package sim runs the per-tick loop: move the viewer, then cast the field
// of view from the new pose.
package sim

import (
	"fmt"
	"math"

	"tile-raycaster/internal/gamemap"
	"tile-raycaster/internal/raycast"
	"tile-raycaster/internal/viewer"
)

// Stats accumulates what the viewer did over a session.
type Stats struct {
	Ticks     uint64  `json:"ticks"`
	Distance  float64 `json:"distance"` // world units walked
	Slides    int     `json:"slides"`   // ticks that slid along a wall
	Blocked   int     `json:"blocked"`  // ticks a move was fully blocked
	TurnTicks int     `json:"turn_ticks"`
	MapRows   int     `json:"map_rows"`
	MapCols   int     `json:"map_cols"`
	RayCount  int     `json:"ray_count"`
}

// Sim owns one grid, one viewer and one ray field. It is not safe for
// concurrent use.
type Sim struct {
	cfg    Config
	grid   *gamemap.Grid
	viewer *viewer.Viewer
	field  *raycast.Field
	stats  Stats
}

// New validates cfg and builds a simulation from it.
func New(cfg *Config) (*Sim, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid, cx, cy, err := cfg.buildGrid()
	if err != nil {
		return nil, err
	}
	x, y := cfg.StartX, cfg.StartY
	if x == 0 && y == 0 {
		x, y = cx, cy
	}
	v, err := viewer.New(grid, x, y, cfg.StartHeading(), cfg.MoveSpeed, cfg.TurnSpeed())
	if err != nil {
		return nil, fmt.Errorf("viewer: %w", err)
	}
	s := &Sim{cfg: *cfg, grid: grid, viewer: v}
	if err := s.SetRayCount(cfg.RayCount); err != nil {
		return nil, err
	}
	s.stats.MapRows, s.stats.MapCols = grid.Rows(), grid.Cols()
	return s, nil
}

// Config returns the configuration the simulation was built from.
func (s *Sim) Config() Config { return s.cfg }

// Grid returns the map.
func (s *Sim) Grid() *gamemap.Grid { return s.grid }

// Pose returns the viewer's current pose.
func (s *Sim) Pose() viewer.Pose { return s.viewer.Pose() }

// Field returns the ray field.
func (s *Sim) Field() *raycast.Field { return s.field }

// Stats returns the session statistics so far.
func (s *Sim) Stats() Stats { return s.stats }

// SetRayCount rebuilds the ray field with n rays, e.g. after a resize.
func (s *Sim) SetRayCount(n int) error {
	if s.field != nil && s.field.RayCount() == n {
		return nil
	}
	f, err := raycast.NewField(s.grid, s.cfg.FOV(), n, raycast.WithWorkers(s.cfg.Workers))
	if err != nil {
		return fmt.Errorf("ray field: %w", err)
	}
	s.field = f
	s.cfg.RayCount = n
	s.stats.RayCount = n
	return nil
}

// SetIntents sets the viewer's turn and move intents for the next tick.
func (s *Sim) SetIntents(turn, move int) { s.viewer.SetIntents(turn, move) }

// Apply latches controls onto the viewer.
func (s *Sim) Apply(c *viewer.Controls) { c.Apply(s.viewer) }

// Tick advances one step. The returned frame's rays alias the field's
// buffer; Clone the frame to keep it past the next Tick.
func (s *Sim) Tick() Frame {
	before := s.viewer.Pose()
	res := s.viewer.Update(s.grid)
	pose := s.viewer.Pose()

	s.stats.Ticks++
	s.stats.Distance += math.Hypot(pose.X-before.X, pose.Y-before.Y)
	switch res {
	case viewer.MoveSlideX, viewer.MoveSlideY:
		s.stats.Slides++
	case viewer.MoveBlocked:
		s.stats.Blocked++
	}
	if s.viewer.TurnIntent != 0 {
		s.stats.TurnTicks++
	}

	return Frame{
		Tick: s.stats.Ticks,
		Pose: pose,
		FOV:  s.field.FOV(),
		Move: res,
		Rays: s.field.Generate(pose),
	}
}
