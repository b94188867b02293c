package render

import (
	"math"

	"tile-raycaster/internal/gamemap"
	"tile-raycaster/internal/sim"
	"tile-raycaster/internal/viewer"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// hudRows is the number of rows reserved below the view.
const hudRows = 2

// arrows point along the eight compass headings starting at +x, clockwise
// in screen space.
var arrows = []string{"→", "↘", "↓", "↙", "←", "↖", "↑", "↗"}

// Renderer draws frames onto a tcell screen: one wall strip per column,
// an optional minimap in the top-left corner and a HUD line at the bottom.
type Renderer struct {
	screen  tcell.Screen
	theme   int
	showMap bool
}

// NewRenderer creates a Renderer for the given screen.
func NewRenderer(screen tcell.Screen) *Renderer {
	return &Renderer{screen: screen, showMap: true}
}

// ViewSize returns the size of the 3D view in cells. The column count is
// the number of rays a frame should carry.
func (r *Renderer) ViewSize() (cols, rows int) {
	w, h := r.screen.Size()
	return max(w, 1), max(h-hudRows, 1)
}

// Theme returns the active theme.
func (r *Renderer) Theme() Theme { return Themes[r.theme] }

// CycleTheme switches to the next theme and returns its name.
func (r *Renderer) CycleTheme() string {
	r.theme = (r.theme + 1) % len(Themes)
	return Themes[r.theme].Name
}

// ToggleMap shows or hides the minimap and reports the new state.
func (r *Renderer) ToggleMap() bool {
	r.showMap = !r.showMap
	return r.showMap
}

// DrawFrame renders the wall strips and the minimap. When the frame carries
// a different number of rays than there are columns, columns sample the
// nearest ray.
func (r *Renderer) DrawFrame(f sim.Frame, g *gamemap.Grid) {
	r.screen.Clear()
	cols, rows := r.ViewSize()
	th := r.Theme()
	p := Projector{Cols: cols, Rows: rows, FOV: f.FOV, TileSize: g.TileSize()}

	ceiling := tcell.StyleDefault.Background(th.Ceiling)
	floor := tcell.StyleDefault.Background(th.Floor)
	for x := 0; x < cols; x++ {
		var s Strip
		if n := len(f.Rays); n > 0 {
			s = p.Project(f.Rays[x*n/cols], f.Pose.Heading)
		}
		wall := tcell.StyleDefault.Foreground(th.Horizontal).Background(th.Ceiling)
		if s.Vertical {
			wall = wall.Foreground(th.Vertical)
		}
		for y := 0; y < rows; y++ {
			switch {
			case s.Wall && y >= s.Top && y < s.Bottom:
				r.screen.SetContent(x, y, s.Shade, nil, wall)
			case y < rows/2:
				r.screen.SetContent(x, y, ' ', nil, ceiling)
			default:
				r.screen.SetContent(x, y, ' ', nil, floor)
			}
		}
	}

	if r.showMap {
		r.drawMinimap(f, g, cols, rows)
	}
}

// drawMinimap renders the grid, the ray endpoints and the viewer in the
// top-left corner, scrolled to keep the viewer in sight.
func (r *Renderer) drawMinimap(f sim.Frame, g *gamemap.Grid, cols, rows int) {
	th := r.Theme()
	viewW := min(2*g.Cols(), cols/3)
	viewH := min(g.Rows(), rows/2)
	if viewW < 2 || viewH < 1 {
		return
	}
	ts := g.TileSize()
	cam := NewCamera(ts, f.Pose.X, f.Pose.Y, viewW, viewH)
	cam.Clamp(g.Rows(), g.Cols())

	wall := tcell.StyleDefault.Foreground(th.MapWall).Background(tcell.ColorBlack)
	open := tcell.StyleDefault.Background(tcell.ColorBlack)
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			ox, oy := g.CellOrigin(row, col)
			sx, sy, ok := cam.WorldToScreen(ox, oy)
			if !ok {
				continue
			}
			glyph, style := ' ', open
			if g.At(row, col) == gamemap.Wall {
				glyph, style = '█', wall
			}
			r.screen.SetContent(sx, sy, glyph, nil, style)
			if sx+1 < viewW {
				r.screen.SetContent(sx+1, sy, glyph, nil, style)
			}
		}
	}

	ray := tcell.StyleDefault.Foreground(th.MapRay).Background(tcell.ColorBlack)
	every := max(len(f.Rays)/16, 1)
	for i := 0; i < len(f.Rays); i += every {
		rr := f.Rays[i]
		if !rr.Hit {
			continue
		}
		// Step back off the boundary so the dot lands in the open cell.
		sin, cos := math.Sincos(rr.Angle)
		back := ts / 4
		if sx, sy, ok := cam.WorldToScreen(rr.HitX-cos*back, rr.HitY-sin*back); ok {
			r.screen.SetContent(sx, sy, '·', nil, ray)
		}
	}

	if sx, sy, ok := cam.WorldToScreen(f.Pose.X, f.Pose.Y); ok {
		r.putGlyph(sx, sy, headingArrow(f.Pose.Heading), ray.Bold(true))
	}
}

func headingArrow(heading float64) string {
	i := int(math.Round(viewer.NormalizeAngle(heading)/(math.Pi/4))) % len(arrows)
	return arrows[i]
}

// putGlyph draws a single glyph (ASCII or multi-rune) at screen position (x, y).
func (r *Renderer) putGlyph(x, y int, glyph string, style tcell.Style) {
	runes := []rune(glyph)
	if len(runes) == 0 {
		return
	}
	var combc []rune
	if len(runes) > 1 {
		combc = runes[1:]
	}
	r.screen.SetContent(x, y, runes[0], combc, style)
	if runewidth.StringWidth(glyph) == 2 {
		r.screen.SetContent(x+1, y, ' ', nil, style)
	}
}
