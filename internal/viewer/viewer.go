// Package viewer holds the moving point of view: its pose, the per-tick
// kinematic update and collision sliding against the grid.
package viewer

import (
	"errors"
	"fmt"
	"math"
)

// Walls is the occupancy query the viewer collides against.
type Walls interface {
	HasWallAt(x, y float64) bool
}

// ErrStartInWall is returned when a viewer would be created inside a wall.
var ErrStartInWall = errors.New("start position is not walkable")

// Pose is a snapshot of the viewer's position and heading.
type Pose struct {
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Heading float64 `json:"heading"`
}

// MoveResult describes what Update did with the candidate displacement.
type MoveResult uint8

const (
	MoveIdle    MoveResult = iota // no move intent
	MoveOK                        // full displacement committed
	MoveSlideX                    // only the x component committed
	MoveSlideY                    // only the y component committed
	MoveBlocked                   // nothing committed
)

func (r MoveResult) String() string {
	switch r {
	case MoveIdle:
		return "idle"
	case MoveOK:
		return "ok"
	case MoveSlideX:
		return "slide-x"
	case MoveSlideY:
		return "slide-y"
	case MoveBlocked:
		return "blocked"
	}
	return fmt.Sprintf("MoveResult(%d)", uint8(r))
}

// Viewer is the mutable point of view. MoveSpeed is in world units per tick,
// TurnSpeed in radians per tick.
type Viewer struct {
	X, Y    float64
	Heading float64

	TurnIntent int // -1 = counter-clockwise, +1 = clockwise
	MoveIntent int // -1 = back, +1 = forward

	MoveSpeed float64
	TurnSpeed float64
}

// New places a viewer at (x, y), refusing positions inside walls.
func New(walls Walls, x, y, heading, moveSpeed, turnSpeed float64) (*Viewer, error) {
	if walls.HasWallAt(x, y) {
		return nil, fmt.Errorf("(%.2f, %.2f): %w", x, y, ErrStartInWall)
	}
	return &Viewer{
		X:         x,
		Y:         y,
		Heading:   NormalizeAngle(heading),
		MoveSpeed: moveSpeed,
		TurnSpeed: turnSpeed,
	}, nil
}

// Pose returns the current pose.
func (v *Viewer) Pose() Pose {
	return Pose{X: v.X, Y: v.Y, Heading: v.Heading}
}

// SetIntents sets both intents, clamped to {-1, 0, 1}.
func (v *Viewer) SetIntents(turn, move int) {
	v.TurnIntent = clampIntent(turn)
	v.MoveIntent = clampIntent(move)
}

// Update advances the viewer one tick: turn, then move with axis-separated
// sliding so a diagonal push into a wall keeps the free component.
func (v *Viewer) Update(walls Walls) MoveResult {
	turn, move := clampIntent(v.TurnIntent), clampIntent(v.MoveIntent)
	v.Heading = NormalizeAngle(v.Heading + float64(turn)*v.TurnSpeed)

	if move == 0 {
		return MoveIdle
	}
	step := float64(move) * v.MoveSpeed
	dx := math.Cos(v.Heading) * step
	dy := math.Sin(v.Heading) * step
	nx, ny := v.X+dx, v.Y+dy

	// A slide that leaves the coordinate unchanged commits nothing and
	// counts as blocked.
	switch {
	case !walls.HasWallAt(nx, ny):
		v.X, v.Y = nx, ny
		return MoveOK
	case nx != v.X && !walls.HasWallAt(nx, v.Y):
		v.X = nx
		return MoveSlideX
	case ny != v.Y && !walls.HasWallAt(v.X, ny):
		v.Y = ny
		return MoveSlideY
	}
	return MoveBlocked
}

func clampIntent(i int) int {
	switch {
	case i > 0:
		return 1
	case i < 0:
		return -1
	}
	return 0
}
