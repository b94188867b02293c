package render

import (
	"math"
	"slices"
	"strings"
	"testing"

	"tile-raycaster/internal/raycast"
	"tile-raycaster/internal/sim"

	"github.com/gdamore/tcell/v2"
)

func newSimScreen(t *testing.T) tcell.Screen {
	t.Helper()
	ss := tcell.NewSimulationScreen("UTF-8")
	// Init resets the simulated size, so resize afterwards.
	if err := ss.Init(); err != nil {
		t.Fatalf("SimulationScreen.Init: %v", err)
	}
	t.Cleanup(ss.Fini)
	ss.SetSize(80, 24)
	if w, h := ss.Size(); w != 80 || h != 24 {
		t.Fatalf("screen size = %d×%d; want 80×24", w, h)
	}
	return ss
}

func rowText(s tcell.Screen, y, from, to int) string {
	var b strings.Builder
	for x := from; x < to; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

var testProjector = Projector{Cols: 80, Rows: 22, FOV: math.Pi / 3, TileSize: 32}

func TestProjectNearerIsTaller(t *testing.T) {
	near := testProjector.Project(raycast.Ray{Angle: 0, Distance: 64, Hit: true, Vertical: true}, 0)
	far := testProjector.Project(raycast.Ray{Angle: 0, Distance: 128, Hit: true, Vertical: true}, 0)
	if near.Bottom-near.Top <= far.Bottom-far.Top {
		t.Errorf("near strip %+v should be taller than far strip %+v", near, far)
	}
	if slices.Index(shades, near.Shade) > slices.Index(shades, far.Shade) {
		t.Errorf("near shade %q darker than far shade %q", near.Shade, far.Shade)
	}
	// Strips are centred on the horizon.
	if near.Top+near.Bottom != testProjector.Rows && near.Top+near.Bottom != testProjector.Rows+1 {
		t.Errorf("strip %+v not centred", near)
	}
}

func TestProjectMiss(t *testing.T) {
	s := testProjector.Project(raycast.Ray{Distance: math.Inf(1)}, 0)
	if s.Wall || s.Top != s.Bottom {
		t.Errorf("miss projected as %+v", s)
	}
}

func TestProjectTouchingWallFillsColumn(t *testing.T) {
	s := testProjector.Project(raycast.Ray{Distance: 0, Hit: true}, 0)
	if s.Top != 0 || s.Bottom != testProjector.Rows {
		t.Errorf("zero-distance strip = %+v", s)
	}
}

func TestFisheyeCorrection(t *testing.T) {
	const off = 0.3
	centre := testProjector.Project(raycast.Ray{Angle: 1, Distance: 100, Hit: true}, 1)
	side := testProjector.Project(raycast.Ray{Angle: 1 + off, Distance: 100 / math.Cos(off), Hit: true}, 1)
	if centre.Top != side.Top || centre.Bottom != side.Bottom {
		t.Errorf("flat wall bends: centre %+v side %+v", centre, side)
	}
	if got := Correct(raycast.Ray{Angle: off, Distance: 10}, 0); math.Abs(got-10*math.Cos(off)) > 1e-12 {
		t.Errorf("Correct = %v", got)
	}
}

func TestVerticalHitsAreBrighter(t *testing.T) {
	v := testProjector.Project(raycast.Ray{Distance: 40, Hit: true, Vertical: true}, 0)
	h := testProjector.Project(raycast.Ray{Distance: 40, Hit: true}, 0)
	if slices.Index(shades, v.Shade) >= slices.Index(shades, h.Shade) {
		t.Errorf("vertical shade %q not brighter than horizontal %q", v.Shade, h.Shade)
	}
}

func TestCamera(t *testing.T) {
	c := NewCamera(32, 0, 0, 20, 10)
	c.Clamp(5, 5)
	if c.OffsetX != 0 || c.OffsetY != 0 {
		t.Fatalf("small map not pinned: %+v", c)
	}
	sx, sy, ok := c.WorldToScreen(3*32+1, 2*32+1)
	if !ok || sx != 6 || sy != 2 {
		t.Errorf("WorldToScreen = (%d,%d,%v); want (6,2,true)", sx, sy, ok)
	}
	wx, wy := c.ScreenToWorld(6, 2)
	if wx != 96 || wy != 64 {
		t.Errorf("ScreenToWorld = (%v,%v)", wx, wy)
	}
	if _, _, ok := c.WorldToScreen(-1, 0); ok {
		t.Error("negative world position reported visible")
	}

	big := NewCamera(32, 50*32, 50*32, 20, 10)
	big.Clamp(100, 100)
	if big.OffsetX != 50-5 || big.OffsetY != 50-5 {
		t.Errorf("centred offsets = (%v,%v)", big.OffsetX, big.OffsetY)
	}
	big.Center(99*32, 99*32)
	big.Clamp(100, 100)
	if big.OffsetX != 90 || big.OffsetY != 90 {
		t.Errorf("clamped offsets = (%v,%v)", big.OffsetX, big.OffsetY)
	}
}

func TestHeadingArrow(t *testing.T) {
	cases := map[float64]string{0: "→", math.Pi / 2: "↓", math.Pi: "←", 3 * math.Pi / 2: "↑", -0.1: "→"}
	for h, want := range cases {
		if got := headingArrow(h); got != want {
			t.Errorf("headingArrow(%v) = %q; want %q", h, got, want)
		}
	}
}

func TestDrawFrame(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen)
	cols, rows := r.ViewSize()
	if cols != 80 || rows != 22 {
		t.Fatalf("ViewSize = %d×%d", cols, rows)
	}

	cfg := sim.DefaultConfig()
	cfg.RayCount = cols
	s, err := sim.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	f := s.Tick()
	r.DrawFrame(f, s.Grid())
	r.DrawHUD(f, "")

	// Straight ahead is the bottom wall, 144 units away.
	mid, _, _, _ := screen.GetContent(40, rows/2)
	if !slices.Contains(shades, mid) {
		t.Errorf("centre cell = %q; want a wall shade", mid)
	}
	if top, _, _, _ := screen.GetContent(40, 0); top != ' ' {
		t.Errorf("ceiling cell = %q", top)
	}
	// The minimap's top row is the map's outer wall.
	if corner, _, _, _ := screen.GetContent(0, 0); corner != '█' {
		t.Errorf("minimap corner = %q", corner)
	}
	_, h := screen.Size()
	if hud := rowText(screen, h-1, 0, 30); !strings.HasPrefix(hud, "(240, 176)  90.0°") {
		t.Errorf("HUD = %q", hud)
	}

	r.ToggleMap()
	r.DrawFrame(f, s.Grid())
	if corner, _, _, _ := screen.GetContent(0, 0); corner == '█' {
		t.Error("minimap still drawn after toggle")
	}
}

func TestDrawHUDTruncates(t *testing.T) {
	screen := newSimScreen(t)
	r := NewRenderer(screen)
	r.DrawHUD(sim.Frame{}, strings.Repeat("x", 200))
	w, h := screen.Size()
	if last, _, _, _ := screen.GetContent(w-1, h-1); last != '…' {
		t.Errorf("last HUD cell = %q; want ellipsis", last)
	}
}

func TestCycleTheme(t *testing.T) {
	r := NewRenderer(newSimScreen(t))
	seen := map[string]bool{r.Theme().Name: true}
	for range Themes {
		seen[r.CycleTheme()] = true
	}
	if len(seen) != len(Themes) || r.Theme().Name != Themes[0].Name {
		t.Errorf("cycled through %v", seen)
	}
}
