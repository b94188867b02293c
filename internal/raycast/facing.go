package raycast

import "math"

// Facing is the quadrant a ray points into: one vertical half (up/down)
// and one horizontal half (left/right). Screen coordinates, so y grows down.
type Facing uint8

const (
	DownRight Facing = iota
	DownLeft
	UpLeft
	UpRight
)

// stepSigns holds the x and y step direction for each facing.
var stepSigns = [4][2]float64{
	DownRight: {1, 1},
	DownLeft:  {-1, 1},
	UpLeft:    {-1, -1},
	UpRight:   {1, -1},
}

// FacingOf classifies a normalized angle. Down is (0, π); right is
// [0, π/2) ∪ (3π/2, 2π).
func FacingOf(angle float64) Facing {
	down := angle > 0 && angle < math.Pi
	right := angle < math.Pi/2 || angle > 3*math.Pi/2
	switch {
	case down && right:
		return DownRight
	case down:
		return DownLeft
	case right:
		return UpRight
	}
	return UpLeft
}

// Down reports whether the ray points toward increasing y.
func (f Facing) Down() bool { return stepSigns[f][1] > 0 }

// Left reports whether the ray points toward decreasing x.
func (f Facing) Left() bool { return stepSigns[f][0] < 0 }

func (f Facing) signs() (sx, sy float64) { return stepSigns[f][0], stepSigns[f][1] }

func (f Facing) String() string {
	switch f {
	case DownRight:
		return "down-right"
	case DownLeft:
		return "down-left"
	case UpLeft:
		return "up-left"
	case UpRight:
		return "up-right"
	}
	return "facing(?)"
}
