// Package raycast finds, for each ray of a field of view, the first wall
// it meets on a tile grid. Each cast walks the horizontal grid lines and the
// vertical grid lines separately (a DDA traversal) and keeps the nearer hit.
package raycast

import (
	"math"

	"tile-raycaster/internal/viewer"
)

// Grid is the read-only map a ray is cast against.
type Grid interface {
	HasWallAt(x, y float64) bool
	TileSize() float64
	Width() float64
	Height() float64
	Rows() int
	Cols() int
}

// axisEpsilon is the |sin| or |cos| below which a ray is treated as moving
// exactly along one axis.
const axisEpsilon = 1e-12

// nudgeFraction of a tile is how far past a grid line the cell on the far
// side is sampled when the ray moves toward decreasing coordinates.
const nudgeFraction = 1e-6

// Ray is the result of one cast. Distance is +Inf and Hit false when
// neither phase found a wall before leaving the grid.
type Ray struct {
	Angle    float64
	Facing   Facing
	HitX     float64
	HitY     float64
	Distance float64
	Vertical bool // nearest hit lies on a vertical grid line
	Hit      bool
}

type phaseHit struct {
	x, y, dist float64
	ok         bool
}

var miss = phaseHit{dist: math.Inf(1)}

// Cast casts one ray from pose at angle and returns the nearest wall hit.
func Cast(angle float64, pose viewer.Pose, g Grid) Ray {
	angle = viewer.NormalizeAngle(angle)
	f := FacingOf(angle)
	sin, cos := math.Sincos(angle)

	h := castHorizontal(f, sin, cos, pose, g)
	v := castVertical(f, sin, cos, pose, g)

	ray := Ray{Angle: angle, Facing: f, Distance: math.Inf(1)}
	best, vertical := nearest(h, v)
	if best.ok {
		ray.HitX, ray.HitY = best.x, best.y
		ray.Distance = best.dist
		ray.Vertical = vertical
		ray.Hit = true
	}
	return ray
}

// nearest picks the closer phase hit. Exact ties go to the horizontal phase.
func nearest(h, v phaseHit) (phaseHit, bool) {
	if h.ok && (!v.ok || h.dist <= v.dist) {
		return h, false
	}
	return v, v.ok
}

// castHorizontal walks the horizontal grid lines (y = k·tileSize).
func castHorizontal(f Facing, sin, cos float64, pose viewer.Pose, g Grid) phaseHit {
	ts := g.TileSize()
	if math.Abs(sin) < axisEpsilon {
		// Parallel to the lines it would test, except for a line through
		// the pose when the ray leans up across it.
		if f.Down() || !(sin < 0) || !onLine(pose.Y, ts) {
			return miss
		}
		return walk(g, pose, pose.X, pose.Y, 0, 0, 0, -ts*nudgeFraction, 1)
	}
	sx, sy := f.signs()

	y := math.Floor(pose.Y/ts) * ts
	if f.Down() {
		y += ts
	}
	x, xStep := pose.X, 0.0
	if math.Abs(cos) >= axisEpsilon {
		tan := sin / cos
		x = pose.X + (y-pose.Y)/tan
		xStep = math.Abs(ts/tan) * sx
	}
	yStep := ts * sy

	nudge := 0.0
	if !f.Down() {
		nudge = -ts * nudgeFraction
	}
	return walk(g, pose, x, y, xStep, yStep, 0, nudge, g.Rows()+1)
}

// castVertical walks the vertical grid lines (x = k·tileSize).
func castVertical(f Facing, sin, cos float64, pose viewer.Pose, g Grid) phaseHit {
	ts := g.TileSize()
	if math.Abs(cos) < axisEpsilon {
		if !f.Left() || !(cos < 0) || !onLine(pose.X, ts) {
			return miss
		}
		return walk(g, pose, pose.X, pose.Y, 0, 0, -ts*nudgeFraction, 0, 1)
	}
	sx, sy := f.signs()

	x := math.Floor(pose.X/ts) * ts
	if !f.Left() {
		x += ts
	}
	y, yStep := pose.Y, 0.0
	if math.Abs(sin) >= axisEpsilon {
		tan := sin / cos
		y = pose.Y + (x-pose.X)*tan
		yStep = math.Abs(ts*tan) * sy
	}
	xStep := ts * sx

	nudge := 0.0
	if f.Left() {
		nudge = -ts * nudgeFraction
	}
	return walk(g, pose, x, y, xStep, yStep, nudge, 0, g.Cols()+1)
}

// onLine reports whether coordinate v lies exactly on a grid line.
func onLine(v, ts float64) bool {
	return math.Floor(v/ts)*ts == v
}

// walk steps from (x, y) until a wall is found, the point leaves the grid's
// closed extent, or maxSteps intersections have been tested.
func walk(g Grid, pose viewer.Pose, x, y, xStep, yStep, nudgeX, nudgeY float64, maxSteps int) phaseHit {
	w, h := g.Width(), g.Height()
	for range maxSteps {
		if x < 0 || x > w || y < 0 || y > h {
			break
		}
		if g.HasWallAt(x+nudgeX, y+nudgeY) {
			return phaseHit{x: x, y: y, dist: math.Hypot(x-pose.X, y-pose.Y), ok: true}
		}
		x += xStep
		y += yStep
	}
	return miss
}
