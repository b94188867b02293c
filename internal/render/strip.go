package render

import (
	"math"

	"tile-raycaster/internal/raycast"
)

// cellAspect is the height of a terminal cell over its width.
const cellAspect = 2.0

// shadeTiles is the corrected distance, in tiles, at which a wall reaches
// the faintest shade.
const shadeTiles = 8.0

// Strip is one projected wall column: rows [Top, Bottom) are wall.
type Strip struct {
	Top, Bottom int
	Shade       rune
	Vertical    bool
	Wall        bool
}

// Projector turns rays into wall strips for a view of a fixed size.
type Projector struct {
	Cols, Rows int
	FOV        float64
	TileSize   float64
}

// PlaneDistance returns the distance from the eye to the projection plane
// in columns.
func (p Projector) PlaneDistance() float64 {
	return float64(p.Cols) / 2 / math.Tan(p.FOV/2)
}

// Correct removes the fisheye by projecting the ray distance onto the
// view direction.
func Correct(r raycast.Ray, heading float64) float64 {
	return r.Distance * math.Cos(r.Angle-heading)
}

// Project returns the strip for one ray seen from heading.
func (p Projector) Project(r raycast.Ray, heading float64) Strip {
	mid := p.Rows / 2
	if !r.Hit || math.IsInf(r.Distance, 0) {
		return Strip{Top: mid, Bottom: mid}
	}
	d := Correct(r, heading)
	if d < 1e-9 {
		return Strip{Top: 0, Bottom: p.Rows, Shade: shades[0], Vertical: r.Vertical, Wall: true}
	}

	// Columns are half as tall as they are wide.
	h := p.TileSize / d * p.PlaneDistance() / cellAspect
	top := int(math.Round(float64(p.Rows)/2 - h/2))
	bottom := int(math.Round(float64(p.Rows)/2 + h/2))

	level := int(d / (p.TileSize * shadeTiles) * float64(len(shades)))
	if !r.Vertical {
		level++
	}
	level = min(max(level, 0), len(shades)-1)

	return Strip{
		Top:      max(top, 0),
		Bottom:   min(bottom, p.Rows),
		Shade:    shades[level],
		Vertical: r.Vertical,
		Wall:     true,
	}
}
