package viewer

import "math"

// Tau is a full turn in radians.
const Tau = 2 * math.Pi

// NormalizeAngle maps a into [0, 2π).
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, Tau)
	if a < 0 {
		a += Tau
	}
	// Mod of a tiny negative value can land exactly on Tau after the add.
	if a >= Tau {
		a = 0
	}
	return a
}

// AngleDiff returns the signed smallest difference b - a in (-π, π].
func AngleDiff(a, b float64) float64 {
	d := NormalizeAngle(b - a)
	if d > math.Pi {
		d -= Tau
	}
	return d
}
