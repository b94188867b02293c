package sim

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"tile-raycaster/internal/raycast"
	"tile-raycaster/internal/viewer"
)

// Frame is the output of one tick: where the viewer stands and what each
// column of the view sees.
type Frame struct {
	Tick uint64
	Pose viewer.Pose
	FOV  float64
	Move viewer.MoveResult
	Rays []raycast.Ray
}

// Clone returns a frame that owns its rays.
func (f Frame) Clone() Frame {
	f.Rays = append([]raycast.Ray(nil), f.Rays...)
	return f
}

type wireRay struct {
	Angle    float64  `json:"angle"`
	HitX     *float64 `json:"hit_x"`
	HitY     *float64 `json:"hit_y"`
	Distance *float64 `json:"distance"` // null when nothing was hit
	Vertical bool     `json:"vertical"`
	Hit      bool     `json:"hit"`
}

type wireFrame struct {
	Tick uint64      `json:"tick"`
	Pose viewer.Pose `json:"pose"`
	FOV  float64     `json:"fov"`
	Move string      `json:"move"`
	Rays []wireRay   `json:"rays"`
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// MarshalJSON encodes the frame for the render boundary. JSON has no
// infinity, so a miss encodes its distance and hit point as null.
func (f Frame) MarshalJSON() ([]byte, error) {
	w := wireFrame{
		Tick: f.Tick,
		Pose: f.Pose,
		FOV:  f.FOV,
		Move: f.Move.String(),
		Rays: make([]wireRay, len(f.Rays)),
	}
	for i, r := range f.Rays {
		wr := wireRay{Angle: r.Angle, Vertical: r.Vertical, Hit: r.Hit}
		if r.Hit {
			wr.HitX, wr.HitY, wr.Distance = finite(r.HitX), finite(r.HitY), finite(r.Distance)
		}
		w.Rays[i] = wr
	}
	return json.Marshal(w)
}

// Nearest returns the closest hit in the frame, or false if every ray
// missed.
func (f Frame) Nearest() (raycast.Ray, bool) {
	best, found := raycast.Ray{Distance: math.Inf(1)}, false
	for _, r := range f.Rays {
		if r.Hit && r.Distance < best.Distance {
			best, found = r, true
		}
	}
	return best, found
}

// Report renders a short plain-text summary of the frame.
func (f Frame) Report() string {
	var b strings.Builder
	fmt.Fprintf(&b, "tick %d  pose (%.1f, %.1f)  heading %.1f°  %s\n",
		f.Tick, f.Pose.X, f.Pose.Y, f.Pose.Heading*180/math.Pi, f.Move)

	hits, vertical := 0, 0
	far := 0.0
	for _, r := range f.Rays {
		if !r.Hit {
			continue
		}
		hits++
		if r.Vertical {
			vertical++
		}
		far = max(far, r.Distance)
	}
	fmt.Fprintf(&b, "rays %d  hits %d  vertical %d", len(f.Rays), hits, vertical)
	if n, ok := f.Nearest(); ok {
		fmt.Fprintf(&b, "  nearest %.1f  farthest %.1f", n.Distance, far)
	}
	b.WriteByte('\n')
	return b.String()
}
