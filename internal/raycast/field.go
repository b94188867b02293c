package raycast

import (
	"errors"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"tile-raycaster/internal/viewer"
)

var (
	ErrRayCount = errors.New("ray count must be positive")
	ErrFOV      = errors.New("field of view must be in (0, 2π]")
)

// Field casts a fan of rays across a field of view. It owns a ray buffer
// that is overwritten by every Generate call.
type Field struct {
	grid    Grid
	fov     float64
	workers int
	rays    []Ray
}

// Option configures a Field.
type Option func(*Field)

// WithWorkers casts rays on up to n goroutines per Generate call. Results
// are identical to a serial cast.
func WithWorkers(n int) Option {
	return func(f *Field) {
		if n > 0 {
			f.workers = n
		}
	}
}

// NewField builds a field of rayCount rays spanning fov radians.
func NewField(grid Grid, fov float64, rayCount int, opts ...Option) (*Field, error) {
	if rayCount <= 0 {
		return nil, fmt.Errorf("%d rays: %w", rayCount, ErrRayCount)
	}
	if !(fov > 0 && fov <= viewer.Tau) {
		return nil, fmt.Errorf("fov %v: %w", fov, ErrFOV)
	}
	f := &Field{grid: grid, fov: fov, workers: 1, rays: make([]Ray, rayCount)}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// RayCount returns the number of rays per Generate.
func (f *Field) RayCount() int { return len(f.rays) }

// FOV returns the angular span in radians.
func (f *Field) FOV() float64 { return f.fov }

// Step returns the angle between neighbouring rays.
func (f *Field) Step() float64 { return f.fov / float64(len(f.rays)) }

// Angle returns the unnormalized angle of ray i for heading.
func (f *Field) Angle(heading float64, i int) float64 {
	return heading - f.fov/2 + float64(i)*f.Step()
}

// Generate casts every ray from pose, leftmost (heading - fov/2) first.
// The returned slice is the field's buffer and is only valid until the
// next call; use Snapshot to keep a copy.
func (f *Field) Generate(pose viewer.Pose) []Ray {
	n := len(f.rays)
	if f.workers <= 1 || n < 2*f.workers {
		f.castRange(pose, 0, n)
		return f.rays
	}

	var eg errgroup.Group
	eg.SetLimit(f.workers)
	chunk := int(math.Ceil(float64(n) / float64(f.workers)))
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		eg.Go(func() error {
			f.castRange(pose, lo, hi)
			return nil
		})
	}
	_ = eg.Wait() // workers never fail
	return f.rays
}

func (f *Field) castRange(pose viewer.Pose, lo, hi int) {
	for i := lo; i < hi; i++ {
		f.rays[i] = Cast(f.Angle(pose.Heading, i), pose, f.grid)
	}
}

// Snapshot returns a copy of the rays from the last Generate.
func (f *Field) Snapshot() []Ray {
	return append([]Ray(nil), f.rays...)
}
